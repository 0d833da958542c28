package main

import (
	"context"
	"log"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrihub/config"
	"nutrihub/models"
	"nutrihub/providers/foodsafety"
	"nutrihub/services"
)

// Einmaliger Sync der Rohstoff-Registry, für Cron-Jobs außerhalb des
// Servers oder manuelle Läufe.
func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Ingredient{}); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	sync := services.NewIngredientSyncService(cfg, db, foodsafety.NewClient(cfg, logging), logging)
	result, err := sync.Run(context.Background())
	if err != nil {
		logging.Fatal("Ingredient sync failed", zap.Error(err))
	}
	logging.Info("Ingredient sync finished",
		zap.Int("created", result.Created), zap.Int("updated", result.Updated))
}
