package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nutrihub/config"
	"nutrihub/providers/foodsafety"
)

// IngredientSource ist die Schnittstelle zur Rohstoff-Registry.
// In Tests wird sie durch einen Fake mit httptest-Backend ersetzt.
type IngredientSource interface {
	TotalCount() (int, error)
	FetchRange(start, end int) ([]foodsafety.Record, error)
}

// IngredientSyncResult fasst einen Sync-Lauf zusammen.
type IngredientSyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// IngredientSyncService synchronisiert die Rohstoff-Registry in die Datenbank:
// Count-Sonde, feste Index-Bereiche, pro Datensatz ein idempotenter Upsert
// über den Namen.
type IngredientSyncService struct {
	Config *config.Config
	DB     *gorm.DB
	Source IngredientSource
	Logger *zap.Logger
}

// NewIngredientSyncService erstellt eine neue Instanz des Sync-Service.
func NewIngredientSyncService(cfg *config.Config, db *gorm.DB, source IngredientSource, logger *zap.Logger) *IngredientSyncService {
	return &IngredientSyncService{Config: cfg, DB: db, Source: source, Logger: logger}
}

// Run führt einen vollständigen Sync-Lauf aus. Eine fehlgeschlagene
// Count-Sonde ist kein Fehler: der Lauf meldet dann 0/0. Fehlgeschlagene
// Batches zählen als leer, der Lauf geht mit dem nächsten Bereich weiter.
func (s *IngredientSyncService) Run(ctx context.Context) (IngredientSyncResult, error) {
	log := s.Logger.With(zap.String("sync", "ingredients"))
	log.Info("Starte Rohstoff-Synchronisation.")

	var result IngredientSyncResult

	total, err := s.Source.TotalCount()
	if err != nil {
		log.Error("Count-Sonde fehlgeschlagen, nichts zu synchronisieren", zap.Error(err))
		return result, nil
	}
	if total == 0 {
		log.Info("Registry meldet keine Datensätze.")
		return result, nil
	}
	log.Info("Registry-Umfang ermittelt", zap.Int("total_count", total))

	batchSize := s.Config.IngredientBatchSize
	for start := 1; start <= total; start += batchSize {
		end := start + batchSize - 1
		if end > total {
			end = total
		}

		created, updated := s.processBatch(log, start, end)
		result.Created += created
		result.Updated += updated

		if end < total {
			// Pause zwischen den Batches, um die Registry nicht zu überlasten.
			select {
			case <-time.After(s.Config.IngredientBatchWait):
			case <-ctx.Done():
				log.Warn("Sync abgebrochen", zap.Error(ctx.Err()))
				return result, ctx.Err()
			}
		}
	}

	log.Info("Rohstoff-Synchronisation abgeschlossen",
		zap.Int("created", result.Created), zap.Int("updated", result.Updated))
	return result, nil
}

// processBatch holt einen Index-Bereich und führt die Upserts aus.
// Transport- und Parse-Fehler degradieren zu einem leeren Batch.
func (s *IngredientSyncService) processBatch(log *zap.Logger, start, end int) (int, int) {
	log.Info("Verarbeite Batch", zap.Int("start", start), zap.Int("end", end))

	records, err := s.Source.FetchRange(start, end)
	if err != nil {
		log.Error("Batch-Abruf fehlgeschlagen, Bereich wird übersprungen",
			zap.Int("start", start), zap.Int("end", end), zap.Error(err))
		return 0, 0
	}

	var created, updated int
	for _, rec := range records {
		normalized, ok := normalizeIngredient(rec)
		if !ok {
			// Datensatz ohne Namen: weder created noch updated.
			continue
		}

		wasCreated, err := upsertIngredient(s.DB, normalized)
		if err != nil {
			log.Error("Upsert fehlgeschlagen", zap.String("name", normalized.Name), zap.Error(err))
			continue
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}
	return created, updated
}
