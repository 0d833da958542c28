package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Registry der funktionellen Rohstoffe (MFDS open data)
	FoodSafetyBaseURL   string `envconfig:"FOODSAFETY_BASE_URL" default:"http://openapi.foodsafetykorea.go.kr/api"`
	FoodSafetyAPIKey    string `envconfig:"FOODSAFETY_API_KEY" required:"true"`
	FoodSafetyServiceID string `envconfig:"FOODSAFETY_SERVICE_ID" default:"I2710"`

	// Produkt-Registry für Gesundheitsprodukte
	HealthFoodBaseURL string `envconfig:"HEALTHFOOD_BASE_URL" default:"http://apis.data.go.kr/1471000/HtfsInfoService03/getHtfsItem01"`
	HealthFoodAPIKey  string `envconfig:"HEALTHFOOD_API_KEY" required:"true"`

	IngredientBatchSize int           `envconfig:"INGREDIENT_BATCH_SIZE" default:"100"`
	IngredientBatchWait time.Duration `envconfig:"INGREDIENT_BATCH_WAIT" default:"500ms"`
	SupplementPageSize  int           `envconfig:"SUPPLEMENT_PAGE_SIZE" default:"100"`

	IngredientCronSchedule string `envconfig:"INGREDIENT_CRON_SCHEDULE" default:"0 3 * * *"`
	SupplementCronSchedule string `envconfig:"SUPPLEMENT_CRON_SCHEDULE" default:"30 3 * * *"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
