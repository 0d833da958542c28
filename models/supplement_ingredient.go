package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplementIngredient verknüpft ein Produkt mit einem Rohstoff samt Gehalt.
// Das Paar (SupplementID, IngredientID) ist eindeutig; Zeilen werden nur
// angelegt, nie aktualisiert oder gelöscht (append-only).
type SupplementIngredient struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SupplementID uuid.UUID `json:"supplement_id" gorm:"type:uuid;index:idx_supplement_ingredient_pair,unique;not null"`
	IngredientID uuid.UUID `json:"ingredient_id" gorm:"type:uuid;index:idx_supplement_ingredient_pair,unique;not null"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`

	// Gehalt laut Spezifikationstext des Produkts.
	Content float64 `json:"content" gorm:"type:decimal(20,2);not null"`
}

func (SupplementIngredient) TableName() string {
	return "dietary_supplements_ingredient"
}

func (l *SupplementIngredient) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
