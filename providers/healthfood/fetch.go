package healthfood

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"nutrihub/config"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Client kapselt die Interaktion mit der Produkt-Registry.
type Client struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewClient erstellt einen neuen Registry-Client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{Config: cfg, Logger: logger}
}

// FetchPage holt eine Seite der Produkt-Registry. Auch Seiten mit
// Nicht-Erfolgs-Code im Header kommen als Page zurück; der Aufrufer
// entscheidet anhand von ResultCode, ob die Schleife abbricht.
func (c *Client) FetchPage(pageNo, numOfRows int) (*Page, error) {
	params := url.Values{}
	params.Set("ServiceKey", c.Config.HealthFoodAPIKey)
	params.Set("pageNo", fmt.Sprintf("%d", pageNo))
	params.Set("numOfRows", fmt.Sprintf("%d", numOfRows))
	params.Set("type", "json")

	requestURL := c.Config.HealthFoodBaseURL + "?" + params.Encode()
	c.Logger.Debug("Rufe Produkt-Registry auf", zap.Int("page", pageNo))

	resp, err := httpClient.Get(requestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry lieferte Status %d", resp.StatusCode)
	}

	var payload pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("antwort ist kein JSON: %w", err)
	}

	page := &Page{
		ResultCode: payload.Header.ResultCode,
		ResultMsg:  payload.Header.ResultMsg,
		TotalCount: payload.Body.TotalCount,
	}
	for _, wrapper := range payload.Body.Items {
		page.Items = append(page.Items, wrapper.Item)
	}
	return page, nil
}
