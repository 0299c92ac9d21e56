package repositories

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"soxutil/internal/models"
)

// MockLogEntryRepository is an in-memory implementation of
// LogEntryRepository. It preserves insertion order so paging behaves like
// a natural collection cursor.
type MockLogEntryRepository struct {
	entries map[string]models.LogEntry
	order   []string
	mu      sync.RWMutex
}

// NewMockLogEntryRepository creates a new instance of MockLogEntryRepository.
func NewMockLogEntryRepository() *MockLogEntryRepository {
	return &MockLogEntryRepository{
		entries: make(map[string]models.LogEntry),
	}
}

// Get returns a log entry by its hex ID.
func (r *MockLogEntryRepository) Get(_ context.Context, id string) (*models.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// GetAll returns entries in insertion order with skip/limit paging.
// A zero limit means no bound, matching the document store's cursor.
func (r *MockLogEntryRepository) GetAll(_ context.Context, skip, limit int) ([]models.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.LogEntry{}
	for i := skip; i < len(r.order); i++ {
		if limit > 0 && len(result) >= limit {
			break
		}
		result = append(result, r.entries[r.order[i]])
	}
	return result, nil
}

// Create stores a new entry with a generated ObjectID and timestamps.
func (r *MockLogEntryRepository) Create(_ context.Context, input *models.LogEntryCreate) (*models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	entry := models.LogEntry{
		ID:        primitive.NewObjectID(),
		Level:     input.Level,
		Message:   input.Message,
		Service:   input.Service,
		Metadata:  input.Metadata,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]interface{}{}
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	id := entry.ID.Hex()
	r.entries[id] = entry
	r.order = append(r.order, id)
	return &entry, nil
}

// Update applies the known field keys to an existing entry.
func (r *MockLogEntryRepository) Update(_ context.Context, id string, fields map[string]interface{}) (*models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, nil
	}

	for key, value := range fields {
		switch key {
		case "level":
			if s, ok := value.(string); ok {
				entry.Level = s
			}
		case "message":
			if s, ok := value.(string); ok {
				entry.Message = s
			}
		case "service":
			if s, ok := value.(string); ok {
				entry.Service = s
			}
		case "metadata":
			if m, ok := value.(map[string]interface{}); ok {
				entry.Metadata = m
			}
		case "tags":
			switch v := value.(type) {
			case []string:
				entry.Tags = v
			case []interface{}:
				tags := make([]string, 0, len(v))
				for _, item := range v {
					if s, ok := item.(string); ok {
						tags = append(tags, s)
					}
				}
				entry.Tags = tags
			}
		case "updated_at":
			if ts, ok := value.(time.Time); ok {
				entry.UpdatedAt = ts
			}
		}
	}

	r.entries[id] = entry
	return &entry, nil
}

// Delete removes an entry and reports whether it existed.
func (r *MockLogEntryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false, nil
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
