package careapi

import (
	"errors"
	"fmt"
	"time"

	ai "github.com/m-rashid-2024/careagent"
)

var (
	// ErrClientNotFound means no client matched the given first and last name.
	ErrClientNotFound = errors.New("careapi: client not found")
	// ErrDocumentNotFound means the client has no document of the requested type.
	ErrDocumentNotFound = errors.New("careapi: document not found")
	// ErrDocumentStatus means documents of the type exist but none is in an accepted state.
	ErrDocumentStatus = errors.New("careapi: no document with accepted status")
	// ErrUnknownDocumentType means there is no detail endpoint for the type.
	ErrUnknownDocumentType = errors.New("careapi: unknown document type")
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	Path  string
	Code  int
	Body  string
	Delay time.Duration
}

// Error returns a message with path and status.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("careapi: GET %s: status %d: %s", e.Path, e.Code, e.Body)
	}
	return fmt.Sprintf("careapi: GET %s: status %d", e.Path, e.Code)
}

// Category classifies the failure by status code.
func (e *StatusError) Category() ai.ErrorCategory { return ai.CategorizeStatusCode(e.Code) }

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool { return e.Category() == ai.ErrorTransient }

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int { return e.Code }

// RetryAfter returns the server's Retry-After hint.
func (e *StatusError) RetryAfter() time.Duration { return e.Delay }

var _ ai.CategorizedError = (*StatusError)(nil)
