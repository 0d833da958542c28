package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrihub/config"
	"nutrihub/models"
	"nutrihub/providers/healthfood"
	"nutrihub/services"
)

// Einmaliger Sync der Produkt-Registry. Mit -pages lässt sich die Zahl
// der verarbeiteten Seiten begrenzen (0 = alle).
func main() {
	pages := flag.Int("pages", 0, "maximale Anzahl an Seiten (0 = alle)")
	flag.Parse()

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
	if err := db.AutoMigrate(
		&models.Manufacturer{},
		&models.Supplement{},
		&models.SupplementIngredient{},
	); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	sync := services.NewSupplementSyncService(cfg, db, healthfood.NewClient(cfg, logging), logging)
	result, err := sync.Run(context.Background(), *pages)
	if err != nil {
		logging.Fatal("Supplement sync failed", zap.Error(err))
	}
	logging.Info("Supplement sync finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("links_created", result.LinksCreated),
		zap.Int("pages", result.Pages))
}
