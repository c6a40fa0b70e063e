package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrEmptyCatalog = errors.New("empty catalog")
)
