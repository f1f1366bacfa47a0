package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the API endpoint could not be reached
	// (DNS failure, refused or reset connection).
	ErrUnavailable = errors.New("generative api unreachable")

	// ErrTimeout indicates a request attempt exceeded the configured timeout.
	ErrTimeout = errors.New("generative api request timed out")

	// ErrAPIStatus indicates the API returned a non-retryable HTTP error
	// status (4xx).
	ErrAPIStatus = errors.New("generative api rejected the request")

	// ErrInvalidResponse indicates the response body could not be decoded
	// or did not carry the expected candidate text.
	ErrInvalidResponse = errors.New("unexpected api response structure")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("api retry attempts exhausted")
)

// statusError carries an HTTP error status from the API. Statuses >= 500
// are transient and eligible for retry; everything else is terminal.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code >= 500
}

// FailureMessage renders a client error as the human-readable string shown
// in the dashboard. Every message contains "error" or "fail" so callers
// that still sniff for those substrings keep working.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRetryExhausted):
		return fmt.Sprintf("Failed to get a summary after multiple retries: %v", err)
	case errors.Is(err, ErrInvalidResponse):
		return fmt.Sprintf("Error: %v", err)
	default:
		return fmt.Sprintf("Error connecting to the Gemini API: %v", err)
	}
}
