package bot

import "errors"

var (
	// ErrEngineRequired is returned when a recommendation engine is not provided.
	ErrEngineRequired = errors.New("recommendation engine required")

	// ErrResponderRequired is returned when a responder is not provided.
	ErrResponderRequired = errors.New("responder required")

	// ErrMessengerRequired is returned when a messenger is not provided.
	ErrMessengerRequired = errors.New("messenger required")
)
