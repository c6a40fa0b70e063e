// Package grouping partitions record sequences into buckets under a
// caller-supplied key function.
package grouping

import (
	"fmt"
	"iter"

	"github.com/rosterpay/rosterpay/internal/domain/model"
)

// Age buckets are five years wide: 15-19, 20-24, ...
const ageBucketWidth = 5

// KeyFunc derives the bucket key for a record.
type KeyFunc func(model.Record) string

// Groups holds the result of a GroupBy: disjoint buckets whose union is
// the input sequence. Key order follows first occurrence in the input,
// not sort order, so repeated runs over the same catalog compare equal.
type Groups struct {
	keys    []string
	buckets map[string][]model.Record
}

// GroupBy partitions records into buckets. An empty input yields empty
// Groups, not an error.
func GroupBy(records iter.Seq[model.Record], keyFn KeyFunc) *Groups {
	g := &Groups{buckets: make(map[string][]model.Record)}
	for r := range records {
		key := keyFn(r)
		if _, ok := g.buckets[key]; !ok {
			g.keys = append(g.keys, key)
		}
		g.buckets[key] = append(g.buckets[key], r)
	}
	return g
}

// Keys returns bucket keys in first-occurrence order. The slice is a
// copy; mutating it does not affect the Groups.
func (g *Groups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Bucket returns the records grouped under key, in input order.
// Unknown keys yield nil.
func (g *Groups) Bucket(key string) []model.Record {
	return g.buckets[key]
}

// Len returns the number of buckets.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Size returns the total number of records across all buckets.
func (g *Groups) Size() int {
	var n int
	for _, b := range g.buckets {
		n += len(b)
	}
	return n
}

// All iterates buckets in first-occurrence key order.
func (g *Groups) All() iter.Seq2[string, []model.Record] {
	return func(yield func(string, []model.Record) bool) {
		for _, key := range g.keys {
			if !yield(key, g.buckets[key]) {
				return
			}
		}
	}
}

// CompetitionKey buckets records by competition name.
func CompetitionKey(r model.Record) string {
	return r.Competition
}

// AgeBucketKey buckets records into five-year age bands rendered as
// "lower-upper", e.g. age 17 -> "15-19", age 20 -> "20-24".
func AgeBucketKey(r model.Record) string {
	lower := (r.Age / ageBucketWidth) * ageBucketWidth
	return fmt.Sprintf("%d-%d", lower, lower+ageBucketWidth-1)
}
