// Package repository defines the read-only catalog store and its errors.
package repository

import (
	"context"
	"iter"

	"github.com/rosterpay/rosterpay/internal/domain/model"
)

// Catalog provides read access to the full record set. Implementations
// are immutable after construction, so any number of concurrent readers
// is safe without locking.
type Catalog interface {
	// Get returns the record stored under name.
	// Returns ErrNotFound when the name is unknown; never a zero default.
	Get(ctx context.Context, name string) (model.Record, error)

	// All returns a restartable sequence of every record in insertion
	// order. Each range over the sequence starts from the beginning.
	All() iter.Seq[model.Record]

	// FilterByCompetition returns a fresh name->record mapping of the
	// records in the given competition. The result never aliases store
	// state.
	FilterByCompetition(ctx context.Context, competition string) map[string]model.Record

	// Count returns the number of records in the catalog.
	Count(ctx context.Context) int
}
