package anthropic

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/m-rashid-2024/careagent"
)

// wrapError attaches a category, status code and Retry-After delay to SDK errors.
func wrapError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewStatusError(err.Error(), apiErr.StatusCode, ai.ParseRetryAfter(apiErr.Response), err)
}
