package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Save stores a copy of the record, replacing any earlier one.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	rec.Snapshot = append([]byte(nil), rec.Snapshot...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Load returns a copy of the record stored under id.
func (s *MemoryStore) Load(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("load %s: %w", id, errors.ErrGameNotFound)
	}
	rec.Snapshot = append([]byte(nil), rec.Snapshot...)
	return rec, nil
}

// Delete removes the record stored under id. Deleting an unknown id is
// not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close does nothing; it satisfies Store.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
