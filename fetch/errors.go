package fetch

import (
	"context"
	"errors"
	"fmt"
)

// TransportError reports a non-2xx response from an upstream
type TransportError struct {
	Status int
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Status, e.URL)
}

// ParseError reports a response body that was not valid JSON. Snippet
// holds a truncated prefix of the raw body as a diagnostic aid; it is
// not meant to be machine-parsed.
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response: %s", e.Snippet)
}

// snippetLimit bounds how much of a bad response body is kept around
const snippetLimit = 160

func newParseError(body []byte) *ParseError {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return &ParseError{Snippet: string(body)}
}

// IsAborted reports whether err represents caller-initiated
// cancellation rather than an upstream failure. Aborted requests are
// never retried and never fall back to stale cache.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
