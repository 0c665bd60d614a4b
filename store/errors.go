package store

import "errors"

// Predefined errors
var (
	// ErrOpen is returned when the database file cannot be opened or created
	ErrOpen = errors.New("store: cannot open database")

	// ErrClosed is returned when a closed store is used
	ErrClosed = errors.New("store: already closed")
)
