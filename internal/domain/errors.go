package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database or is not visible to the
// requesting user. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state, such as
// registering a username that is already taken.
// Handlers should map this to HTTP 400.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned by the auth service when credentials do not
// match a known user. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
