package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrihub/models"
)

// openTestDB öffnet eine In-Memory-SQLite-Datenbank mit migriertem Schema.
// Jeder Test bekommt über den Namen eine eigene Datenbank.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Ingredient{},
		&models.Manufacturer{},
		&models.Supplement{},
		&models.SupplementIngredient{},
		&models.UserSupplementIntake{},
	)
	if err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedIngredient(t *testing.T, db *gorm.DB, name string) *models.Ingredient {
	t.Helper()

	ing := &models.Ingredient{Name: name}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("seed ingredient %q: %v", name, err)
	}
	return ing
}
