package source

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrLoad = errors.New("dataset load failed")
)
