package openai

import (
	"errors"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/openai/openai-go"
)

// wrapError attaches a category, status code and Retry-After delay to SDK errors.
// Anything that is not an API error is returned unchanged.
func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewStatusError(err.Error(), apiErr.StatusCode, ai.ParseRetryAfter(apiErr.Response), err)
}
