package services

import (
	"context"
	"log"
	"time"

	"soxutil/internal/models"
	"soxutil/internal/repositories"
)

// LogEventPublisher publishes log-entry lifecycle events to a message
// queue. A nil publisher disables publication.
type LogEventPublisher interface {
	PublishLogCreated(event map[string]interface{}) error
}

// LogEntryService handles business logic for log entries.
type LogEntryService struct {
	repo      repositories.LogEntryRepository
	publisher LogEventPublisher
}

// NewLogEntryService creates a new LogEntryService.
func NewLogEntryService(repo repositories.LogEntryRepository, publisher LogEventPublisher) *LogEntryService {
	return &LogEntryService{
		repo:      repo,
		publisher: publisher,
	}
}

// Get retrieves a log entry by ID.
func (s *LogEntryService) Get(ctx context.Context, id string) (*models.LogEntry, error) {
	return s.repo.Get(ctx, id)
}

// GetAll retrieves log entries with paging.
func (s *LogEntryService) GetAll(ctx context.Context, skip, limit int) ([]models.LogEntry, error) {
	return s.repo.GetAll(ctx, skip, limit)
}

// Create stores a new log entry and publishes a created event when a
// publisher is configured. Publication is best-effort: a broker failure
// is logged, never surfaced to the caller.
func (s *LogEntryService) Create(ctx context.Context, input *models.LogEntryCreate) (*models.LogEntry, error) {
	entry, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"id":      entry.ID.Hex(),
			"level":   entry.Level,
			"service": entry.Service,
			"message": entry.Message,
		}
		if err := s.publisher.PublishLogCreated(event); err != nil {
			log.Printf("Warning: failed to publish log created event for %s: %v", entry.ID.Hex(), err)
		}
	}

	return entry, nil
}

// Update forces the update timestamp to now before delegating, so callers
// cannot back-date it. A nil field map (a JSON `null` body parses to one)
// is treated as an empty partial update.
func (s *LogEntryService) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.LogEntry, error) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["updated_at"] = time.Now().UTC()
	return s.repo.Update(ctx, id, fields)
}

// Delete removes a log entry by ID.
func (s *LogEntryService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
