package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrihub/config"
	"nutrihub/models"
	"nutrihub/providers/foodsafety"
	"nutrihub/providers/healthfood"
	"nutrihub/services"
)

var (
	ingredientsSyncedCounter *prometheus.CounterVec
	supplementsSyncedCounter *prometheus.CounterVec
	linksCreatedCounter      prometheus.Counter
)

func init() {
	ingredientsSyncedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingredients_synced_total",
			Help: "Total number of ingredient rows written by the sync, by outcome.",
		},
		[]string{"outcome"},
	)
	supplementsSyncedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplements_synced_total",
			Help: "Total number of supplement rows written by the sync, by outcome.",
		},
		[]string{"outcome"},
	)
	linksCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "supplement_ingredient_links_created_total",
			Help: "Total number of supplement-ingredient links created.",
		},
	)
	prometheus.MustRegister(ingredientsSyncedCounter, supplementsSyncedCounter, linksCreatedCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

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

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to database.")

	logging.Info("Running database auto-migration...")
	if err := db.AutoMigrate(
		&models.Ingredient{},
		&models.Manufacturer{},
		&models.Supplement{},
		&models.SupplementIngredient{},
		&models.UserSupplementIntake{},
	); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Setup Services
	ingredientSync := services.NewIngredientSyncService(cfg, db, foodsafety.NewClient(cfg, logging), logging)
	supplementSync := services.NewSupplementSyncService(cfg, db, healthfood.NewClient(cfg, logging), logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupIngredientRoutes(router, db, logging)
	setupSupplementRoutes(router, db, logging)
	setupManufacturerRoutes(router, db, logging)
	setupIntakeRoutes(router, db, logging)
	setupSyncRoutes(router, ingredientSync, supplementSync)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.IngredientCronSchedule, func() {
		logging.Info("Running scheduled ingredient sync...")
		result, err := ingredientSync.Run(context.Background())
		if err != nil {
			logging.Error("Ingredient sync job failed", zap.Error(err))
			return
		}
		ingredientsSyncedCounter.WithLabelValues("created").Add(float64(result.Created))
		ingredientsSyncedCounter.WithLabelValues("updated").Add(float64(result.Updated))
	})
	cronScheduler.AddFunc(cfg.SupplementCronSchedule, func() {
		logging.Info("Running scheduled supplement sync...")
		result, err := supplementSync.Run(context.Background(), 0)
		if err != nil {
			logging.Error("Supplement sync job failed", zap.Error(err))
			return
		}
		supplementsSyncedCounter.WithLabelValues("created").Add(float64(result.Created))
		supplementsSyncedCounter.WithLabelValues("updated").Add(float64(result.Updated))
		linksCreatedCounter.Add(float64(result.LinksCreated))
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupIngredientRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	rg := router.Group("/ingredients")

	rg.GET("/", func(c *gin.Context) {
		var ingredients []models.Ingredient
		query := db.Order("name")
		if name := c.Query("name"); name != "" {
			query = query.Where("name LIKE ?", "%"+name+"%")
		}
		if err := query.Find(&ingredients).Error; err != nil {
			log.Error("Database query for ingredients failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, ingredients)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var ingredient models.Ingredient
		if err := db.First(&ingredient, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
				return
			}
			log.Error("Database query for ingredient failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, ingredient)
	})
}

func setupSupplementRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	rg := router.Group("/supplements")

	rg.GET("/", func(c *gin.Context) {
		var supplements []models.Supplement
		query := db.Order("created_at DESC")
		if reportNumber := c.Query("report_number"); reportNumber != "" {
			query = query.Where("report_number = ?", reportNumber)
		}
		if name := c.Query("name"); name != "" {
			query = query.Where("name LIKE ?", "%"+name+"%")
		}
		if err := query.Find(&supplements).Error; err != nil {
			log.Error("Database query for supplements failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, supplements)
	})

	// Detailansicht inklusive Hersteller und Rohstoff-Verknüpfungen.
	rg.GET("/:id", func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var supplement models.Supplement
		err = db.Preload("Manufacturer").Preload("Links.Ingredient").
			First(&supplement, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "supplement not found"})
				return
			}
			log.Error("Database query for supplement failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, supplement)
	})
}

func setupManufacturerRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	rg := router.Group("/manufacturers")

	rg.GET("/", func(c *gin.Context) {
		var manufacturers []models.Manufacturer
		if err := db.Order("name").Find(&manufacturers).Error; err != nil {
			log.Error("Database query for manufacturers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, manufacturers)
	})
}

func setupIntakeRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	rg := router.Group("/intakes")

	rg.GET("/", func(c *gin.Context) {
		userID, err := uuid.Parse(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		var intakes []models.UserSupplementIntake
		if err := db.Preload("Supplement").Where("user_id = ?", userID).Find(&intakes).Error; err != nil {
			log.Error("Database query for intakes failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, intakes)
	})

	rg.POST("/", func(c *gin.Context) {
		type IntakeRequest struct {
			UserID       uuid.UUID `json:"user_id" binding:"required"`
			SupplementID uuid.UUID `json:"supplement_id" binding:"required"`
			IntakeAmount float64   `json:"intake_amount" binding:"required"`
		}
		var req IntakeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Pro Benutzer und Produkt höchstens ein Eintrag; die Menge darf
		// aktualisiert werden.
		var intake models.UserSupplementIntake
		err := db.Where("user_id = ? AND supplement_id = ?", req.UserID, req.SupplementID).
			First(&intake).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			intake = models.UserSupplementIntake{
				UserID:       req.UserID,
				SupplementID: req.SupplementID,
				IntakeAmount: req.IntakeAmount,
			}
			if err := db.Create(&intake).Error; err != nil {
				log.Error("Creating intake failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
				return
			}
			c.JSON(http.StatusCreated, intake)
			return
		}
		if err != nil {
			log.Error("Database query for intake failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		intake.IntakeAmount = req.IntakeAmount
		if err := db.Save(&intake).Error; err != nil {
			log.Error("Updating intake failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, intake)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		if err := db.Delete(&models.UserSupplementIntake{}, "id = ?", id).Error; err != nil {
			log.Error("Deleting intake failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func setupSyncRoutes(router *gin.Engine, ingredientSync *services.IngredientSyncService, supplementSync *services.SupplementSyncService) {
	rg := router.Group("/sync")

	rg.POST("/ingredients", func(c *gin.Context) {
		result, err := ingredientSync.Run(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ingredientsSyncedCounter.WithLabelValues("created").Add(float64(result.Created))
		ingredientsSyncedCounter.WithLabelValues("updated").Add(float64(result.Updated))
		c.JSON(http.StatusOK, result)
	})

	rg.POST("/supplements", func(c *gin.Context) {
		maxPages := 0
		if raw := c.Query("pages"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "pages must be a non-negative integer"})
				return
			}
			maxPages = parsed
		}
		result, err := supplementSync.Run(c.Request.Context(), maxPages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		supplementsSyncedCounter.WithLabelValues("created").Add(float64(result.Created))
		supplementsSyncedCounter.WithLabelValues("updated").Add(float64(result.Updated))
		linksCreatedCounter.Add(float64(result.LinksCreated))
		c.JSON(http.StatusOK, result)
	})
}
