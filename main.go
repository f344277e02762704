package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-booking/config"
	"github.com/yeremiapane/cafe-booking/middlewares"
	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/router"
	"github.com/yeremiapane/cafe-booking/services"
	"github.com/yeremiapane/cafe-booking/utils"
)

func main() {
	if err := godotenv.Load(); err == nil {
		utils.InitLogger()
		utils.InfoLogger.Println("Loaded .env file")
	} else {
		utils.InitLogger()
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := buildStore()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	if err := config.EnsureDefaultSettings(store); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed settings: %v", err)
	}
	if err := config.EnsureSampleTables(store); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed tables: %v", err)
	}

	var publisher services.EventPublisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		publisher = services.NewAMQPPublisher(url)
		utils.InfoLogger.Println("Booking events will be published to RabbitMQ")
	}

	bookingService := services.NewBookingService(store, publisher)

	rdb := config.NewRedisClient()
	if rdb != nil {
		utils.InfoLogger.Println("Redis response cache enabled")
	}

	r := router.SetupRouter(store, bookingService, rdb)

	// 50 requests per second per IP across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// buildStore selects the persistence backend: gorm over MySQL/SQLite,
// or the in-memory store when DB_DRIVER=memory.
func buildStore() (repositories.EntityStore, error) {
	if os.Getenv("DB_DRIVER") == "memory" {
		utils.InfoLogger.Println("Using in-memory entity store")
		return repositories.NewMemoryStore(), nil
	}

	db, err := config.InitDB()
	if err != nil {
		return nil, err
	}
	if err := autoMigrate(db); err != nil {
		return nil, err
	}
	return repositories.NewGormStore(db), nil
}

func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.Booking{},
		&models.CafeSettings{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
