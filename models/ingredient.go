package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient repräsentiert einen funktionellen Rohstoff aus der MFDS-Registry.
// Der Name ist der natürliche Schlüssel: er identifiziert den Rohstoff über
// Sync-Läufe hinweg, alle anderen Felder werden beim Sync überschrieben.
type Ingredient struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name          string `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Functionality string `json:"functionality" gorm:"type:text"`
	Precautions   string `json:"precautions,omitempty" gorm:"type:text"`

	// Tagesdosis: nil, wenn die Quelle keinen oder keinen parsebaren Wert liefert.
	DailyIntakeLow  *float64 `json:"daily_intake_low,omitempty" gorm:"type:decimal(20,2)"`
	DailyIntakeHigh *float64 `json:"daily_intake_high,omitempty" gorm:"type:decimal(20,2)"`
	Unit            string   `json:"unit,omitempty" gorm:"size:50"`

	Remark           string     `json:"remark,omitempty" gorm:"type:text"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	LastModifiedDate *time.Time `json:"last_modified_date,omitempty"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
