package handlers

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"soxutil/internal/analysis"
)

// CSVHandler handles CSV statistics uploads. When uploadsDir is set,
// accepted files are archived there under a generated name.
type CSVHandler struct {
	uploadsDir string
}

// NewCSVHandler creates a new CSVHandler.
func NewCSVHandler(uploadsDir string) *CSVHandler {
	return &CSVHandler{
		uploadsDir: uploadsDir,
	}
}

// RegisterRoutes registers the CSV routes with the Fiber app.
func (h *CSVHandler) RegisterRoutes(router fiber.Router) {
	csvRoutes := router.Group("/csv")
	csvRoutes.Post("/upload", h.HandleUpload)
}

// HandleUpload accepts a CSV file and returns its summary statistics:
// row/column counts, inferred column types, a bounded head sample, and
// per-numeric-column summary stats.
func (h *CSVHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A file upload is required",
			"error":   err.Error(),
		})
	}

	if !strings.HasSuffix(fileHeader.Filename, ".csv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Only CSV files are allowed",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error processing file",
			"error":   err.Error(),
		})
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error processing file",
			"error":   err.Error(),
		})
	}

	table, err := analysis.ReadTable(bytes.NewReader(contents))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error processing file",
			"error":   err.Error(),
		})
	}

	table.DropDuplicates()
	table.FillMissing("0")
	summary := table.Summarize()

	h.archive(contents)

	return c.JSON(summary)
}

// archive keeps a copy of the accepted upload. Failures are logged only;
// archiving is not part of the response contract.
func (h *CSVHandler) archive(contents []byte) {
	if h.uploadsDir == "" {
		return
	}
	name := filepath.Join(h.uploadsDir, uuid.New().String()+".csv")
	if err := os.WriteFile(name, contents, 0o644); err != nil {
		log.Printf("Warning: failed to archive upload to %s: %v", name, err)
	}
}
