// Package stats computes descriptive statistics over numeric sequences
// derived from catalog records.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// Summary holds single-pass descriptive statistics for a non-empty
// sequence of values.
type Summary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Describe computes count, sum, mean, min, max and the population
// standard deviation (divide by N, not N-1). Statistics over zero
// elements are undefined, so an empty input fails with ErrEmptyInput
// rather than returning zeros that look like data.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("%w: describe", ErrEmptyInput)
	}

	s := Summary{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}
	for _, v := range values {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Sum / float64(s.Count)

	var sumsq float64
	for _, v := range values {
		d := v - s.Mean
		sumsq += d * d
	}
	s.StdDev = math.Sqrt(sumsq / float64(s.Count))

	return s, nil
}

// Median returns the lower-middle element of the sorted sequence: the
// value at index (n-1)/2 of a zero-based ascending sort. For odd n this
// is the ordinary median; for even n it is the lower of the two middle
// elements, not their average. [10,20,30,40] -> 20.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: median", ErrEmptyInput)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2], nil
}

// SumField accumulates fieldFn over records. An empty input sums to zero.
func SumField[T any](records []T, fieldFn func(T) float64) float64 {
	var sum float64
	for _, r := range records {
		sum += fieldFn(r)
	}
	return sum
}

// AverageField computes the mean of fieldFn over records, failing with
// ErrEmptyInput when there is nothing to average.
func AverageField[T any](records []T, fieldFn func(T) float64) (float64, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: average", ErrEmptyInput)
	}
	return SumField(records, fieldFn) / float64(len(records)), nil
}

// Extract maps records to the chosen numeric field, preserving order.
func Extract[T any](records []T, fieldFn func(T) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = fieldFn(r)
	}
	return out
}
