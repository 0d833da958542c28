package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nutrihub/config"
	"nutrihub/models"
	"nutrihub/providers/healthfood"
)

// SupplementSource ist die Schnittstelle zur Produkt-Registry.
type SupplementSource interface {
	FetchPage(pageNo, numOfRows int) (*healthfood.Page, error)
}

// SupplementSyncResult fasst einen Sync-Lauf zusammen.
type SupplementSyncResult struct {
	Created      int `json:"created"`
	Updated      int `json:"updated"`
	LinksCreated int `json:"links_created"`
	Pages        int `json:"pages"`
}

// SupplementSyncService synchronisiert die Produkt-Registry: seitenweiser
// Abruf bis zur ersten leeren Seite, Upsert über die Meldenummer,
// Hersteller per get-or-create, danach Spezifikations-Parsing und
// Verknüpfung der Rohstoffe.
type SupplementSyncService struct {
	Config *config.Config
	DB     *gorm.DB
	Source SupplementSource
	Parser *SpecificationParser
	Logger *zap.Logger
}

// NewSupplementSyncService erstellt eine neue Instanz des Sync-Service.
func NewSupplementSyncService(cfg *config.Config, db *gorm.DB, source SupplementSource, logger *zap.Logger) *SupplementSyncService {
	return &SupplementSyncService{
		Config: cfg,
		DB:     db,
		Source: source,
		Parser: NewSpecificationParser(logger),
		Logger: logger,
	}
}

// Run führt einen vollständigen Sync-Lauf aus. maxPages > 0 begrenzt die
// Zahl der verarbeiteten Seiten (für Tests und manuelle Läufe). Die
// Seitenschleife endet bei Transportfehler, Nicht-Erfolgs-Code im Header
// oder der ersten leeren Seite; bis dahin gezählte Ergebnisse bleiben
// in der Zusammenfassung erhalten.
func (s *SupplementSyncService) Run(ctx context.Context, maxPages int) (SupplementSyncResult, error) {
	log := s.Logger.With(zap.String("sync", "supplements"))
	log.Info("Starte Produkt-Synchronisation.")

	var result SupplementSyncResult
	pageSize := s.Config.SupplementPageSize

	for pageNo := 1; ; pageNo++ {
		if err := ctx.Err(); err != nil {
			log.Warn("Sync abgebrochen", zap.Error(err))
			return result, err
		}

		page, err := s.Source.FetchPage(pageNo, pageSize)
		if err != nil {
			log.Error("Seitenabruf fehlgeschlagen, Schleife endet",
				zap.Int("page", pageNo), zap.Error(err))
			break
		}
		if page.ResultCode != healthfood.ResultCodeOK {
			log.Warn("Registry meldet Nicht-Erfolg, Schleife endet",
				zap.Int("page", pageNo),
				zap.String("result_code", page.ResultCode),
				zap.String("result_msg", page.ResultMsg))
			break
		}
		if len(page.Items) == 0 {
			log.Info("Leere Seite erreicht", zap.Int("page", pageNo))
			break
		}

		result.Pages++
		for _, rec := range page.Items {
			created, updated, links := s.processRecord(log, rec)
			result.Created += created
			result.Updated += updated
			result.LinksCreated += links
		}

		if maxPages > 0 && pageNo >= maxPages {
			log.Info("Seitenlimit erreicht", zap.Int("max_pages", maxPages))
			break
		}
	}

	log.Info("Produkt-Synchronisation abgeschlossen",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("links_created", result.LinksCreated),
		zap.Int("pages", result.Pages))
	return result, nil
}

// processRecord verarbeitet einen Produkt-Datensatz: Hersteller auflösen,
// Produkt upserten, Spezifikationstext parsen und Rohstoffe verknüpfen.
func (s *SupplementSyncService) processRecord(log *zap.Logger, rec healthfood.Record) (created, updated, links int) {
	normalized, ok := normalizeSupplement(rec)
	if !ok {
		// Ohne Meldenummer kein Upsert.
		return 0, 0, 0
	}

	manufacturerName := strings.TrimSpace(rec.Manufacturer)
	if manufacturerName != "" {
		manufacturer, err := getOrCreateManufacturer(s.DB, manufacturerName)
		if err != nil {
			log.Error("Hersteller-Auflösung fehlgeschlagen",
				zap.String("manufacturer", manufacturerName), zap.Error(err))
			return 0, 0, 0
		}
		normalized.ManufacturerID = manufacturer.ID
	}

	saved, wasCreated, err := upsertSupplement(s.DB, normalized)
	if err != nil {
		log.Error("Upsert fehlgeschlagen",
			zap.String("report_number", normalized.ReportNumber), zap.Error(err))
		return 0, 0, 0
	}
	if wasCreated {
		created = 1
	} else {
		updated = 1
	}

	newLinks, err := s.processRelations(saved)
	if err != nil {
		log.Error("Rohstoff-Verknüpfung fehlgeschlagen",
			zap.String("report_number", saved.ReportNumber), zap.Error(err))
	}
	return created, updated, newLinks
}

// processRelations parst den Spezifikationstext eines Produkts und legt die
// fehlenden Verknüpfungen an. Die bekannten Rohstoffnamen werden pro Aufruf
// frisch geladen, damit im selben Lauf synchronisierte Rohstoffe sichtbar sind.
func (s *SupplementSyncService) processRelations(supplement *models.Supplement) (int, error) {
	if strings.TrimSpace(supplement.StandardsAndSpecifications) == "" {
		return 0, nil
	}

	var ingredients []models.Ingredient
	if err := s.DB.Select("id", "name").Find(&ingredients).Error; err != nil {
		return 0, err
	}
	if len(ingredients) == 0 {
		return 0, nil
	}

	knownNames := make([]string, 0, len(ingredients))
	ingredientIDs := make(map[string]uuid.UUID, len(ingredients))
	for _, ing := range ingredients {
		knownNames = append(knownNames, ing.Name)
		ingredientIDs[ing.Name] = ing.ID
	}

	candidates := s.Parser.Parse(supplement.StandardsAndSpecifications, knownNames)
	return linkSupplementIngredients(s.DB, supplement.ID, candidates, ingredientIDs)
}
