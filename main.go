package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"soxutil/internal/config"
	"soxutil/internal/database"
	"soxutil/internal/datadir"
	"soxutil/internal/handlers"
	"soxutil/internal/repositories"
	"soxutil/internal/services"
	"soxutil/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Data directories ---
	dirs, err := datadir.Ensure(cfg.DataDir)
	if err != nil {
		log.Printf("Error initializing data directories: %v", err)
		dirs = &datadir.Dirs{}
	} else {
		log.Printf("Data directories initialized at %s", dirs.Base)
	}

	// --- Store connections ---
	// Connectivity failures are logged and swallowed: the process keeps
	// serving and defers each store's failure to first use. /health
	// reflects the live state.
	var db *gorm.DB
	db, err = database.ConnectPostgres(cfg)
	if err != nil {
		log.Printf("PostgreSQL connection error: %v", err)
		db = nil
	} else {
		log.Println("PostgreSQL connected, users table migrated")
	}

	var mongoDB *mongo.Database
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	mongoDB, err = database.ConnectMongo(ctx, cfg)
	cancel()
	if err != nil {
		log.Printf("MongoDB connection error: %v", err)
		mongoDB = nil
	} else {
		log.Println("MongoDB connection successful")
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ connection error, continuing without event publication: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	logRepo := repositories.NewMongoLogEntryRepository(mongoDB)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	var publisher services.LogEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	logService := services.NewLogEntryService(logRepo, publisher)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	logHandler := handlers.NewLogHandler(logService)
	csvHandler := handlers.NewCSVHandler(dirs.Uploads)
	healthHandler := handlers.NewHealthHandler(db, mongoDB)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	if len(cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
			AllowCredentials: true,
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the compliance records API.",
		})
	})
	healthHandler.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	userHandler.RegisterRoutes(apiV1)
	logHandler.RegisterRoutes(apiV1)
	csvHandler.RegisterRoutes(apiV1)

	// --- Log event consumer ---
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received log event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeLogEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start log event consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
