package medstat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery marks caller mistakes: bad codes, inverted period
	// ranges, unsupported parameter combinations. Not retryable.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrMissingParameter marks an encoding bug: a required portal field
	// was absent when composing the url. Should never surface to a
	// correct caller.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrNetwork marks transport failures (dns, refused connections,
	// timeouts). The caller may retry manually.
	ErrNetwork = errors.New("network failure")
	// ErrMalformedResponse marks payloads whose shape does not match
	// what the portal is expected to return.
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.StatusCode)
}

// DuplicateKeyError reports two records claiming the same
// (period, category) cell during strict assembly.
type DuplicateKeyError struct {
	Period   Period
	Category string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf(
		"duplicate record for period %s, category %q",
		e.Period, e.Category,
	)
}
