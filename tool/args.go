package tool

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeArguments unmarshals tool-call arguments into v.
//
// Local models regularly emit arguments that are not quite JSON (single
// quotes, trailing commas, a missing brace) or a JSON object encoded as a
// string. Syntax errors are repaired with jsonrepair, and a string payload
// is unwrapped once. Empty arguments decode as an empty object.
func DecodeArguments(raw string, v any) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}

	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		fixed, rerr := jsonrepair.JSONRepair(raw)
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Value == "string" {
		var inner string
		if json.Unmarshal([]byte(raw), &inner) == nil {
			return DecodeArguments(inner, v)
		}
	}

	return err
}
