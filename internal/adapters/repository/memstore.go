package repository

import (
	"context"
	"fmt"
	"iter"

	"github.com/rosterpay/rosterpay/internal/domain/model"
)

// MemStore is the in-memory Catalog implementation. It is bulk-loaded
// once and never written afterwards; both the index and the ordered
// slice are private, so readers cannot alias internal state.
type MemStore struct {
	byName  map[string]model.Record
	ordered []model.Record
}

// NewMemStore builds a catalog from records, preserving their order.
// A repeated name aborts construction with ErrDuplicate: the name is the
// unique key, and silently keeping either record would hide bad data.
func NewMemStore(_ context.Context, records []model.Record) (*MemStore, error) {
	s := &MemStore{
		byName:  make(map[string]model.Record, len(records)),
		ordered: make([]model.Record, 0, len(records)),
	}
	for _, r := range records {
		if _, ok := s.byName[r.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, r.Name)
		}
		s.byName[r.Name] = r
		s.ordered = append(s.ordered, r)
	}
	return s, nil
}

// Get returns the record stored under name, or ErrNotFound.
func (s *MemStore) Get(_ context.Context, name string) (model.Record, error) {
	r, ok := s.byName[name]
	if !ok {
		return model.Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, nil
}

// All returns a restartable sequence over the records in insertion order.
func (s *MemStore) All() iter.Seq[model.Record] {
	return func(yield func(model.Record) bool) {
		for _, r := range s.ordered {
			if !yield(r) {
				return
			}
		}
	}
}

// FilterByCompetition returns a fresh mapping of the records playing in
// competition, keyed by name. An unknown competition yields an empty map.
func (s *MemStore) FilterByCompetition(_ context.Context, competition string) map[string]model.Record {
	out := make(map[string]model.Record)
	for _, r := range s.ordered {
		if r.Competition == competition {
			out[r.Name] = r
		}
	}
	return out
}

// Count returns the number of records in the catalog.
func (s *MemStore) Count(_ context.Context) int {
	return len(s.ordered)
}
