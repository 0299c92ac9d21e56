package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"soxutil/internal/models"
	"soxutil/internal/services"
)

// LogHandler handles HTTP requests for log entries.
type LogHandler struct {
	service  *services.LogEntryService
	validate *validator.Validate
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service *services.LogEntryService) *LogHandler {
	return &LogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the log routes with the Fiber app.
func (h *LogHandler) RegisterRoutes(router fiber.Router) {
	logRoutes := router.Group("/logs")
	logRoutes.Get("/", h.HandleGetLogs)
	logRoutes.Post("/", h.HandleCreateLog)
	logRoutes.Get("/:id", h.HandleGetLogByID)
	logRoutes.Put("/:id", h.HandleUpdateLog)
	logRoutes.Delete("/:id", h.HandleDeleteLog)
}

// HandleGetLogs lists log entries in the requested range.
func (h *LogHandler) HandleGetLogs(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	logs, err := h.service.GetAll(c.Context(), skip, limit)
	if err != nil {
		log.Printf("Error getting all logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve logs",
			"error":   err.Error(),
		})
	}
	return c.JSON(logs)
}

// HandleCreateLog creates a new log entry. No uniqueness precondition
// applies to log entries.
func (h *LogHandler) HandleCreateLog(c *fiber.Ctx) error {
	var input models.LogEntryCreate
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create log request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	entry, err := h.service.Create(c.Context(), &input)
	if err != nil {
		log.Printf("Error creating log entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create log",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleGetLogByID retrieves a single log entry. An unparseable id
// behaves like a missing document.
func (h *LogHandler) HandleGetLogByID(c *fiber.Ctx) error {
	id := c.Params("id")

	entry, err := h.service.Get(c.Context(), id)
	if err != nil {
		log.Printf("Error getting log %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve log",
			"error":   err.Error(),
		})
	}
	if entry == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Log not found",
		})
	}
	return c.JSON(entry)
}

// HandleUpdateLog applies a partial field merge after an existence probe.
// A nil result after the probe succeeded means the store reported nothing
// modified and is treated as a failed update.
func (h *LogHandler) HandleUpdateLog(c *fiber.Ctx) error {
	id := c.Params("id")

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		log.Printf("Error parsing update log request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	entry, err := h.service.Get(c.Context(), id)
	if err != nil {
		log.Printf("Error loading log %s for update: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update log",
			"error":   err.Error(),
		})
	}
	if entry == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Log not found",
		})
	}

	updated, err := h.service.Update(c.Context(), id, fields)
	if err != nil {
		log.Printf("Error updating log %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update log",
			"error":   err.Error(),
		})
	}
	if updated == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update log",
		})
	}
	return c.JSON(updated)
}

// HandleDeleteLog removes a log entry. Unlike user deletion, a deletion
// the store did not confirm after a successful probe is an internal error.
func (h *LogHandler) HandleDeleteLog(c *fiber.Ctx) error {
	id := c.Params("id")

	entry, err := h.service.Get(c.Context(), id)
	if err != nil {
		log.Printf("Error loading log %s for deletion: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete log",
			"error":   err.Error(),
		})
	}
	if entry == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Log not found",
		})
	}

	deleted, err := h.service.Delete(c.Context(), id)
	if err != nil {
		log.Printf("Error deleting log %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete log",
			"error":   err.Error(),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete log",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
