package archive

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/wolfarena/core"
)

// InMemoryStore is a trivial in-process Store implementation useful for
// tests, examples and single-process runs. Records are copied on save and
// retrieval so callers can never mutate stored state through shared
// slices. Nothing survives a process restart; prefer the sqlite
// implementation for durable archives.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string // insertion order, oldest first
}

// Compile-time check that InMemoryStore satisfies Store.
var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore returns an empty in-memory archive.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

// Save stores (or overwrites) the record under its id.
func (s *InMemoryStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ID == "" {
		return fmt.Errorf("archive: record id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = copyRecord(rec)
	return nil
}

// Get returns a copy of the stored record or ErrNotFound.
func (s *InMemoryStore) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return copyRecord(rec), nil
}

// List returns the archived game ids, newest first.
func (s *InMemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		ids = append(ids, s.order[i])
	}
	return ids, nil
}

// Len reports the number of archived games.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func copyRecord(rec Record) Record {
	cp := rec
	if rec.Reveals != nil {
		cp.Reveals = append([]core.RoleReveal(nil), rec.Reveals...)
	}
	if rec.Events != nil {
		cp.Events = append([]core.PublicEvent(nil), rec.Events...)
	}
	return cp
}
