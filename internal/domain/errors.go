package domain

import "errors"

// ErrNotFound is returned when a referenced itinerary, item, or experience
// does not exist. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown occasion, malformed start time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMalformedState is returned by a state repo when the persisted payload
// exists but cannot be decoded. The store recovers by starting empty.
var ErrMalformedState = errors.New("malformed persisted state")
