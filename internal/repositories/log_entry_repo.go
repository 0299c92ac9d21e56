package repositories

import (
	"context"

	"soxutil/internal/models"
)

// LogEntryRepository defines the interface for log entry data access.
// As with UserRepository, absent documents come back as (nil, nil) and an
// unparseable identifier behaves like a missing document.
type LogEntryRepository interface {
	Get(ctx context.Context, id string) (*models.LogEntry, error)
	GetAll(ctx context.Context, skip, limit int) ([]models.LogEntry, error)
	Create(ctx context.Context, input *models.LogEntryCreate) (*models.LogEntry, error)
	// Update applies the given field/value pairs as a partial merge and
	// returns the re-fetched document, or nil when the store reports no
	// modified fields. A no-op update and a missing document are not
	// distinguished here; callers that care must probe first.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.LogEntry, error)
	Delete(ctx context.Context, id string) (bool, error)
}
