package repository

import "errors"

// ErrNotFound is returned when no booking journal entry matches a lookup.
var ErrNotFound = errors.New("journal entry not found")
