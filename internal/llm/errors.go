package llm

import "errors"

// Provider failures are classified into three buckets at the boundary so the
// rest of the application never inspects provider-specific status codes.
var (
	// ErrAuth marks a missing or rejected credential.
	ErrAuth = errors.New("llm auth failed")
	// ErrRateLimited marks a provider quota rejection.
	ErrRateLimited = errors.New("llm rate limited")
	// ErrUnavailable marks a transient provider failure such as a 5xx,
	// timeout, or connection error.
	ErrUnavailable = errors.New("llm unavailable")
)
