package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation,
// including malformed venue hours or timezone configuration.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates a transport-level failure talking to an
// external collaborator, unrelated to a business rejection.
var ErrUnavailable = errors.New("unavailable")
