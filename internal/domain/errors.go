package domain

import "errors"

// The ledger surfaces exactly three failure kinds. Every error returned by
// the core wraps one of these sentinels with a human-readable detail; the
// HTTP layer maps them to 400, 404 and 409.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
