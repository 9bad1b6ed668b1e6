package instance

import "errors"

var (
	// ErrNegativeBudget is returned when an instance declares a budget below zero.
	ErrNegativeBudget = errors.New("instance: negative budget")

	// ErrNegativeCost is returned when an item has a cost below zero.
	ErrNegativeCost = errors.New("instance: negative item cost")

	// ErrNegativeValue is returned when an item has a value below zero.
	ErrNegativeValue = errors.New("instance: negative item value")

	// ErrMalformed indicates unreadable or truncated text input.
	// Parsers wrap it with the offending line and token.
	ErrMalformed = errors.New("instance: malformed input")

	// ErrCountMismatch indicates that a counted format declared more items
	// than the input actually contains.
	ErrCountMismatch = errors.New("instance: item count mismatch")

	// ErrUnknownFormat is returned for an unsupported format name or extension.
	ErrUnknownFormat = errors.New("instance: unknown format")
)
