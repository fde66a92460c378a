package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/usm-dti/event-tracker-api/internal/models"
)

// BlobEventStore owns the ordered event collection. It serves reads from
// memory and rewrites the whole persisted blob after every mutation. A failed
// write is logged and the store keeps operating in-memory for the rest of the
// session; a failed or corrupt read at startup falls back to the seed dataset.
type BlobEventStore struct {
	blob   Blob
	logger *zap.Logger

	mu     sync.RWMutex
	events []models.Event
}

// NewBlobEventStore loads the persisted collection, falling back to seed on
// absence or parse failure. Load problems are never fatal.
func NewBlobEventStore(ctx context.Context, blob Blob, seed []models.Event, logger *zap.Logger) *BlobEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BlobEventStore{blob: blob, logger: logger}
	s.events = s.load(ctx, seed)
	return s
}

func (s *BlobEventStore) load(ctx context.Context, seed []models.Event) []models.Event {
	data, err := s.blob.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrBlobNotFound) {
			s.logger.Warn("failed to read persisted events, using seed dataset", zap.Error(err))
		}
		return append([]models.Event(nil), seed...)
	}

	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.logger.Warn("failed to parse persisted events, using seed dataset", zap.Error(err))
		return append([]models.Event(nil), seed...)
	}
	return events
}

// List returns the collection in store order, newest first.
func (s *BlobEventStore) List(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.events...), nil
}

// GetByID returns the event with the given id, or nil when absent.
func (s *BlobEventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.events {
		if s.events[i].ID == id {
			event := s.events[i]
			return &event, nil
		}
	}
	return nil, nil
}

// Create prepends the event and persists the collection.
func (s *BlobEventStore) Create(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]models.Event{*event}, s.events...)
	s.persistLocked(ctx)
	return nil
}

// Update replaces the record matching the event's id, preserving position.
// Returns false without touching anything when the id is unknown.
func (s *BlobEventStore) Update(ctx context.Context, event *models.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == event.ID {
			s.events[i] = *event
			s.persistLocked(ctx)
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the record matching id. Returns false when the id is unknown.
func (s *BlobEventStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			s.persistLocked(ctx)
			return true, nil
		}
	}
	return false, nil
}

// persistLocked serializes the full collection and overwrites the blob.
// Write failures degrade to in-memory-only operation for the session.
func (s *BlobEventStore) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.events)
	if err != nil {
		s.logger.Warn("failed to serialize events, skipping persist", zap.Error(err))
		return
	}
	if err := s.blob.Write(ctx, data); err != nil {
		s.logger.Warn("failed to persist events, continuing in-memory", zap.Error(err))
	}
}
