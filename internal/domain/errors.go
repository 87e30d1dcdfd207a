package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingCity is returned when an activity is added to a day without
// a selected city. Callers recover by prompting for one.
var ErrMissingCity = errors.New("city is required")

// ErrBackendUnavailable wraps any transport or server failure while talking
// to the itinerary backend. Prior state stays intact; callers may retry.
var ErrBackendUnavailable = errors.New("backend unavailable")

// ErrMalformedEntry is reported for a legacy entry whose notes cannot be read
// as an activity. The entry is dropped from the projection.
var ErrMalformedEntry = errors.New("malformed itinerary entry")

// ErrSaveFailed is returned by planner mutations that the backend rejected
// or could not complete. It is joined with the underlying cause.
var ErrSaveFailed = errors.New("failed to save")
