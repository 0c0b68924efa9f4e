package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gamestore/internal/handlers"
	"gamestore/internal/middleware"
	"gamestore/internal/models"
	"gamestore/internal/repositories"
	"gamestore/internal/services"
	"gamestore/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "") // empty: sqlite file
	viper.SetDefault("SQLITE_PATH", "gamestore.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("RABBITMQ_URL", "")   // empty: order events disabled
	viper.SetDefault("REDIS_ADDR", "")     // empty: logout blacklist disabled
	viper.SetDefault("CLOUDINARY_URL", "") // empty: image uploads disabled
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Optional RabbitMQ client for order events ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; order event publishing disabled")
	}

	// --- Optional redis token blacklist for logout ---
	var blacklist repositories.TokenBlacklist
	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		tokenRepo := repositories.NewRedisTokenRepository(addr)
		defer tokenRepo.Close()
		blacklist = tokenRepo
	} else {
		log.Println("REDIS_ADDR not set; logout token revocation disabled")
	}

	// --- Optional cloudinary uploader for game images ---
	var imageUploader services.ImageUploader
	if cloudURL := viper.GetString("CLOUDINARY_URL"); cloudURL != "" {
		uploader, err := services.NewCloudinaryUploader(cloudURL)
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
		imageUploader = uploader
	} else {
		log.Println("CLOUDINARY_URL not set; image uploads disabled")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	gameRepo := repositories.NewGORMGameRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	gameService := services.NewGameService(gameRepo)
	orderService := services.NewOrderService(orderRepo, gameRepo, mqClient)
	cartService := services.NewCartService(cartRepo, gameRepo, orderService)
	commentService := services.NewCommentService(commentRepo, gameRepo, userRepo)
	uploadService := services.NewUploadService(imageUploader, gameService)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, blacklist)
	gameHandler := handlers.NewGameHandler(gameService, uploadService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	gameHandler.RegisterRoutes(apiV1)
	commentHandler.RegisterRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(authService, blacklist))
	authHandler.RegisterProtectedRoutes(protected)
	gameHandler.RegisterProtectedRoutes(protected)
	commentHandler.RegisterProtectedRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for order events published by the order service; downstream
	// processing (receipts, analytics) hangs off this queue.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Order Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects to PostgreSQL when DATABASE_URL is set and falls
// back to a local sqlite file otherwise.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}
