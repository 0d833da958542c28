package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplement repräsentiert ein registriertes Gesundheitsprodukt.
// Natürlicher Schlüssel ist die Meldenummer (ReportNumber).
type Supplement struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReportNumber string `json:"report_number" gorm:"uniqueIndex;size:255;not null"`
	Name         string `json:"name" gorm:"size:255"`

	ManufacturerID uuid.UUID     `json:"manufacturer_id" gorm:"type:uuid;index"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID"`

	RegistrationDate *time.Time `json:"registration_date,omitempty"`

	Appearance        string `json:"appearance,omitempty" gorm:"type:text"`
	UsageInstructions string `json:"usage_instructions,omitempty" gorm:"type:text"`
	ServingSize       string `json:"serving_size,omitempty" gorm:"size:100"`
	ServingMethod     string `json:"serving_method,omitempty" gorm:"type:text"`
	ShelfLife         string `json:"shelf_life,omitempty" gorm:"size:255"`
	StorageMethod     string `json:"storage_method,omitempty" gorm:"type:text"`
	Precautions       string `json:"precautions,omitempty" gorm:"type:text"`
	MainFunctionality string `json:"main_functionality,omitempty" gorm:"type:text"`

	// Freitextfeld "Normen und Spezifikationen" — Eingabe des Spezifikations-Parsers.
	StandardsAndSpecifications string `json:"standards_and_specifications,omitempty" gorm:"type:text"`

	Links []SupplementIngredient `json:"links,omitempty" gorm:"foreignKey:SupplementID"`
}

func (Supplement) TableName() string {
	return "dietary_supplements"
}

func (s *Supplement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
