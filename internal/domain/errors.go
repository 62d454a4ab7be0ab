package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (unknown roster index, unknown date key).
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule: missing name,
// malformed color or date, inverted date range, duplicate assignment, or an
// out-of-bounds removal index. Handlers map this to HTTP 400, matching the
// wire contract of the original planning API.
var ErrValidation = errors.New("validation error")
