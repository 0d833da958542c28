package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSupplementIntake hält fest, welches Produkt ein Benutzer in welcher
// Menge einnimmt. Pro Benutzer und Produkt existiert höchstens ein Eintrag.
type UserSupplementIntake struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;index:idx_user_supplement_pair,unique;not null"`
	SupplementID uuid.UUID `json:"supplement_id" gorm:"type:uuid;index:idx_user_supplement_pair,unique;not null"`

	Supplement *Supplement `json:"supplement,omitempty" gorm:"foreignKey:SupplementID"`

	IntakeAmount float64 `json:"intake_amount" gorm:"type:decimal(10,2);not null"`
}

func (UserSupplementIntake) TableName() string {
	return "user_supplement_intake"
}

func (u *UserSupplementIntake) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
