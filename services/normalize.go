package services

import (
	"strconv"
	"strings"
	"time"

	"nutrihub/models"
	"nutrihub/providers/foodsafety"
	"nutrihub/providers/healthfood"
)

// parseDecimal liest einen numerischen String. Bei leerem oder nicht
// parsebarem Wert kommt nil zurück — niemals 0, damit fehlende Werte
// von echten Nullwerten unterscheidbar bleiben.
func parseDecimal(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseDate liest ein 8-stelliges YYYYMMDD-Datum; nil bei Fehlern.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	t, err := time.Parse("20060102", s)
	if err != nil {
		return nil
	}
	return &t
}

// normalizeIngredient bildet einen rohen Registry-Datensatz auf das
// Ingredient-Modell ab. Liefert false, wenn der natürliche Schlüssel
// (Name) fehlt — solche Datensätze werden komplett übersprungen.
func normalizeIngredient(rec foodsafety.Record) (*models.Ingredient, bool) {
	name := strings.TrimSpace(rec.ProductName)
	if name == "" {
		return nil, false
	}
	return &models.Ingredient{
		Name:             name,
		Functionality:    rec.Functionality,
		Precautions:      rec.Precautions,
		Unit:             rec.IntakeUnit,
		Remark:           rec.Remark,
		DailyIntakeLow:   parseDecimal(rec.DailyIntakeLow),
		DailyIntakeHigh:  parseDecimal(rec.DailyIntakeHigh),
		RegistrationDate: parseDate(rec.CreatedDate),
		LastModifiedDate: parseDate(rec.LastUpdatedDate),
	}, true
}

// normalizeSupplement bildet einen rohen Produkt-Datensatz auf das
// Supplement-Modell ab. Liefert false, wenn die Meldenummer fehlt.
// Die Manufacturer-Zuordnung passiert im Sync-Service.
func normalizeSupplement(rec healthfood.Record) (*models.Supplement, bool) {
	reportNumber := strings.TrimSpace(rec.ReportNumber)
	if reportNumber == "" {
		return nil, false
	}
	return &models.Supplement{
		ReportNumber:               reportNumber,
		Name:                       rec.ProductName,
		RegistrationDate:           parseDate(rec.RegistrationDate),
		Appearance:                 rec.Appearance,
		UsageInstructions:          rec.Usage,
		ServingSize:                rec.ServingSize,
		ServingMethod:              rec.ServingMethod,
		ShelfLife:                  rec.ShelfLife,
		StorageMethod:              rec.StorageMethod,
		Precautions:                rec.Precautions,
		MainFunctionality:          rec.MainFunction,
		StandardsAndSpecifications: rec.Standards,
	}, true
}
