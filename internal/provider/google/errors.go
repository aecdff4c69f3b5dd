package google

import (
	"errors"

	ai "github.com/m-rashid-2024/careagent"
	"google.golang.org/genai"
)

// wrapError attaches a category and status code to SDK errors.
// genai.APIError does not expose headers, so no Retry-After is carried.
func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.NewStatusError(err.Error(), apiErr.Code, 0, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return ai.NewStatusError(err.Error(), apiErrPtr.Code, 0, err)
	}
	return err
}
