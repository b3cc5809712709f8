package board

import "errors"

// Common mutation errors
var (
	// ErrNoActiveBoard is returned when no board view is mounted
	ErrNoActiveBoard = errors.New("no active board")

	// ErrColumnNotFound is returned when the column is not on the active board
	ErrColumnNotFound = errors.New("column not found on active board")

	// ErrCardNotFound is returned when the card is not on the active board
	ErrCardNotFound = errors.New("card not found on active board")
)
