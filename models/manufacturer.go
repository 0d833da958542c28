package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manufacturer repräsentiert einen Hersteller. Wird beim ersten Auftreten
// angelegt und danach nur noch wiederverwendet (get-or-create, kein Update).
type Manufacturer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `json:"name" gorm:"uniqueIndex;size:255;not null"`
}

func (Manufacturer) TableName() string {
	return "manufacturers"
}

func (m *Manufacturer) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
