package foodsafety

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"nutrihub/config"
)

var (
	// Kurzer Timeout für die Count-Sonde, längerer für die Batch-Abfragen.
	countClient = &http.Client{Timeout: 10 * time.Second}
	batchClient = &http.Client{Timeout: 30 * time.Second}
)

// Client kapselt die Interaktion mit der Rohstoff-Registry.
type Client struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewClient erstellt einen neuen Registry-Client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{Config: cfg, Logger: logger}
}

// TotalCount fragt die Gesamtzahl der Datensätze ab (Sonde mit Range 1/1).
// Fehler werden hier nicht eskaliert: der Sync-Service behandelt 0 als
// "nichts zu tun".
func (c *Client) TotalCount() (int, error) {
	env, err := c.fetch(countClient, 1, 1)
	if err != nil {
		return 0, err
	}
	total, err := strconv.Atoi(env.TotalCount)
	if err != nil {
		return 0, fmt.Errorf("total_count nicht lesbar: %w", err)
	}
	return total, nil
}

// FetchRange holt die Datensätze des Index-Bereichs [start, end] (inklusiv).
func (c *Client) FetchRange(start, end int) ([]Record, error) {
	env, err := c.fetch(batchClient, start, end)
	if err != nil {
		return nil, err
	}
	return env.Row, nil
}

func (c *Client) fetch(client *http.Client, start, end int) (*serviceEnvelope, error) {
	url := fmt.Sprintf("%s/%s/%s/json/%d/%d",
		c.Config.FoodSafetyBaseURL, c.Config.FoodSafetyAPIKey, c.Config.FoodSafetyServiceID, start, end)
	c.Logger.Debug("Rufe Rohstoff-Registry auf",
		zap.Int("start", start), zap.Int("end", end))

	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry lieferte Status %d", resp.StatusCode)
	}

	// Die Antwort liegt unter dem Service-ID-Schlüssel, der konfigurierbar ist.
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("antwort ist kein JSON: %w", err)
	}

	raw, ok := payload[c.Config.FoodSafetyServiceID]
	if !ok {
		return nil, fmt.Errorf("antwort enthält keinen Schlüssel %q", c.Config.FoodSafetyServiceID)
	}

	var env serviceEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("service-envelope nicht lesbar: %w", err)
	}
	return &env, nil
}
