package caretools

import (
	"errors"

	"github.com/m-rashid-2024/careagent/careapi"
)

// Texts the model receives when a lookup fails.
const (
	SentinelAPIError         = "error at api call"
	SentinelClientNotFound   = "Client not found"
	SentinelDocumentNotFound = "document not found"
	SentinelDocumentStatus   = "document status not found"
)

// Failure is returned by tool handlers. Its message is the sentinel the
// model sees; the cause stays available through errors.Is and errors.As.
type Failure struct {
	Text string
	Err  error
}

// Error returns the sentinel text.
func (f *Failure) Error() string { return f.Text }

// Unwrap returns the cause.
func (f *Failure) Unwrap() error { return f.Err }

// sentinelFor maps a lookup error to the text shown to the model.
// Anything that is not a resolution miss counts as an API failure.
func sentinelFor(err error) string {
	switch {
	case errors.Is(err, careapi.ErrClientNotFound):
		return SentinelClientNotFound
	case errors.Is(err, careapi.ErrDocumentNotFound):
		return SentinelDocumentNotFound
	case errors.Is(err, careapi.ErrDocumentStatus):
		return SentinelDocumentStatus
	default:
		return SentinelAPIError
	}
}
