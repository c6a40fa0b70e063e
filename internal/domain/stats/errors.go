package stats

import "errors"

// Sentinel kinds for statistics errors.
var (
	ErrEmptyInput = errors.New("empty input")
)
