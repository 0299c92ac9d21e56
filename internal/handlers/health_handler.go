package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"soxutil/internal/database"
)

// HealthHandler reports live connectivity of both stores so an external
// orchestrator gets current status, not the result of the startup checks.
type HealthHandler struct {
	db    *gorm.DB
	mongo *mongo.Database
}

// NewHealthHandler creates a new HealthHandler. Either store may be nil
// when it was unreachable at startup.
func NewHealthHandler(db *gorm.DB, mongoDB *mongo.Database) *HealthHandler {
	return &HealthHandler{
		db:    db,
		mongo: mongoDB,
	}
}

// RegisterRoutes registers the health route with the Fiber app.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth pings both stores and returns 200 only when both respond.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	postgresStatus := "ok"
	mongoStatus := "ok"

	if err := database.PingPostgres(h.db); err != nil {
		postgresStatus = "unavailable: " + err.Error()
		status = fiber.StatusServiceUnavailable
	}
	if err := database.PingMongo(c.Context(), h.mongo); err != nil {
		mongoStatus = "unavailable: " + err.Error()
		status = fiber.StatusServiceUnavailable
	}

	overall := "healthy"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   overall,
		"time":     time.Now().Format(time.RFC3339),
		"postgres": postgresStatus,
		"mongodb":  mongoStatus,
	})
}
