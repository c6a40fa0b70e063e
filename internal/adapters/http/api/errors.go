package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrMissingCompetition = errors.New("missing competition parameter")
	ErrBadYear            = errors.New("year must be a number between 2000 and 2100")
)
