package caretools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/tidwall/gjson"
)

// unknown stands in for a template field the payload does not carry.
const unknown = "unbekannt"

var errInvalidPayload = errors.New("caretools: payload is not valid JSON")

// projection is a compiled jq program whose outputs are the records to render.
type projection struct {
	expr string
	code *gojq.Code
}

func mustProjection(expr string) *projection {
	query, err := gojq.Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("caretools: invalid jq expression %q: %v", expr, err))
	}
	code, err := gojq.Compile(query)
	if err != nil {
		panic(fmt.Sprintf("caretools: compile jq expression %q: %v", expr, err))
	}
	return &projection{expr: expr, code: code}
}

// records runs the program over payload and collects every output.
func (p *projection) records(payload []byte) ([]any, error) {
	var input any
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	var out []any
	iter := p.code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("caretools: jq %q: %w", p.expr, err)
		}
		out = append(out, v)
	}
}

var (
	reportEntries    = mustProjection(`.[]? | .content.bericht? | select(. != null)`)
	subEntryContents = mustProjection(`.[]? | .subEintraege[]? | .content? | select(type == "object")`)
	entryContents    = mustProjection(`.[]? | .content? | select(type == "object")`)
	measureTexts     = mustProjection(`.[]? | .massnahmen[]? | .content.text? | select(. != null)`)
)

// text renders a decoded JSON value for a sentence template.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return unknown
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// field renders rec[key], or unknown if rec has no such key.
func field(rec any, key string) string {
	m, ok := rec.(map[string]any)
	if !ok {
		return unknown
	}
	return text(m[key])
}

// scalar renders a gjson value: strings unquoted, everything else as compact JSON.
func scalar(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw
	default:
		return compact([]byte(r.Raw))
	}
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}

// eachSectionField visits, in document order, every non-null field of every
// top-level object in payload. Top-level values that are not objects are skipped.
func eachSectionField(payload []byte, visit func(key string, value gjson.Result)) error {
	if !gjson.ValidBytes(payload) {
		return errInvalidPayload
	}
	gjson.ParseBytes(payload).ForEach(func(_, section gjson.Result) bool {
		if !section.IsObject() {
			return true
		}
		section.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.Null {
				visit(key.String(), value)
			}
			return true
		})
		return true
	})
	return nil
}

// formatReports renders report sheet entries.
func formatReports(payload []byte, _ PersonArgs) (string, error) {
	recs, err := reportEntries.records(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range recs {
		b.WriteString("\n " + text(r) + ". ")
	}
	return b.String(), nil
}

// formatVitals returns the first vital-sign entry as compact JSON.
func formatVitals(payload []byte, _ PersonArgs) (string, error) {
	if !gjson.ValidBytes(payload) {
		return "", errInvalidPayload
	}
	first := gjson.GetBytes(payload, "vitalwerteintraege.0")
	if !first.Exists() || first.Type == gjson.Null {
		return "", nil
	}
	return scalar(first), nil
}

func formatFluidBalance(payload []byte, who PersonArgs) (string, error) {
	recs, err := subEntryContents.records(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range recs {
		fluid := field(r, "fluessigkeit")
		fmt.Fprintf(&b, "\n%s %s hat %s ml %s getrunken. Er hat %s ml %s ausgeschieden.",
			who.FirstName, who.LastName, field(r, "einfuhrmenge"), fluid, field(r, "ausfuhrmenge"), fluid)
	}
	return b.String(), nil
}

func formatNutrition(payload []byte, who PersonArgs) (string, error) {
	recs, err := subEntryContents.records(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "\n%s %s hat %s als %s gegessen. Er hat dadurch %s Kalorie/n zu sich genommen.",
			who.FirstName, who.LastName, field(r, "mahlzeit"), field(r, "lebensmittel"), field(r, "kcal"))
	}
	return b.String(), nil
}

func formatMedication(payload []byte, who PersonArgs) (string, error) {
	recs, err := entryContents.records(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "\n%s %s bekommt %s als Medikamente %s täglich. Die Medikamente nimmt %s als %s.",
			who.FirstName, who.LastName, field(r, "handelsname"), field(r, "einheit"), who.FirstName, field(r, "typ"))
	}
	return b.String(), nil
}

func formatMeasures(payload []byte, _ PersonArgs) (string, error) {
	recs, err := measureTexts.records(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range recs {
		b.WriteString(" \n" + text(r) + ". ")
	}
	return b.String(), nil
}

// formatBiography renders every non-null section field, empty strings included.
func formatBiography(payload []byte, _ PersonArgs) (string, error) {
	var b strings.Builder
	err := eachSectionField(payload, func(_ string, v gjson.Result) {
		b.WriteString(" \n" + scalar(v) + ". ")
	})
	return b.String(), err
}

func formatAccidentReport(payload []byte, _ PersonArgs) (string, error) {
	var b strings.Builder
	err := eachSectionField(payload, func(_ string, v gjson.Result) {
		b.WriteString("\n" + scalar(v) + ".")
	})
	return b.String(), err
}

// lifeDomain renders the last non-null occurrence of key among the
// top-level sections of an SIS payload.
func lifeDomain(key string) Formatter {
	return func(payload []byte, _ PersonArgs) (string, error) {
		var found string
		err := eachSectionField(payload, func(k string, v gjson.Result) {
			if k == key {
				found = scalar(v)
			}
		})
		return found, err
	}
}

// formatRaw returns the payload as compact JSON.
func formatRaw(payload []byte, _ PersonArgs) (string, error) {
	if !json.Valid(payload) {
		return "", errInvalidPayload
	}
	return compact(payload), nil
}
