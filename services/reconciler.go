package services

import (
	"errors"

	"gorm.io/gorm"

	"nutrihub/models"
)

// upsertIngredient legt einen Rohstoff an oder überschreibt alle Felder
// der bestehenden Zeile, gesucht über den natürlichen Schlüssel Name.
// Läuft in einer eigenen Transaktion, damit nie eine halb geschriebene
// Zeile zurückbleibt. Liefert true, wenn neu angelegt wurde.
func upsertIngredient(db *gorm.DB, normalized *models.Ingredient) (bool, error) {
	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		err := tx.Where("name = ?", normalized.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(normalized).Error
		}
		if err != nil {
			return err
		}

		existing.Functionality = normalized.Functionality
		existing.Precautions = normalized.Precautions
		existing.Unit = normalized.Unit
		existing.Remark = normalized.Remark
		existing.DailyIntakeLow = normalized.DailyIntakeLow
		existing.DailyIntakeHigh = normalized.DailyIntakeHigh
		existing.RegistrationDate = normalized.RegistrationDate
		existing.LastModifiedDate = normalized.LastModifiedDate
		return tx.Save(&existing).Error
	})
	return created, err
}

// upsertSupplement legt ein Produkt an oder überschreibt die Felder der
// bestehenden Zeile, gesucht über die Meldenummer. Liefert die gespeicherte
// Zeile (mit ID) und true bei Neuanlage.
func upsertSupplement(db *gorm.DB, normalized *models.Supplement) (*models.Supplement, bool, error) {
	created := false
	var saved *models.Supplement
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Supplement
		err := tx.Where("report_number = ?", normalized.ReportNumber).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			saved = normalized
			return tx.Create(normalized).Error
		}
		if err != nil {
			return err
		}

		existing.Name = normalized.Name
		existing.ManufacturerID = normalized.ManufacturerID
		existing.RegistrationDate = normalized.RegistrationDate
		existing.Appearance = normalized.Appearance
		existing.UsageInstructions = normalized.UsageInstructions
		existing.ServingSize = normalized.ServingSize
		existing.ServingMethod = normalized.ServingMethod
		existing.ShelfLife = normalized.ShelfLife
		existing.StorageMethod = normalized.StorageMethod
		existing.Precautions = normalized.Precautions
		existing.MainFunctionality = normalized.MainFunctionality
		existing.StandardsAndSpecifications = normalized.StandardsAndSpecifications
		saved = &existing
		return tx.Save(&existing).Error
	})
	return saved, created, err
}

// getOrCreateManufacturer sucht einen Hersteller über den Namen und legt
// ihn bei Bedarf an. Bestehende Hersteller werden nie verändert.
func getOrCreateManufacturer(db *gorm.DB, name string) (*models.Manufacturer, error) {
	var m models.Manufacturer
	err := db.Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.Manufacturer{Name: name}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
