package caretools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lukas = PersonArgs{FirstName: "Lukas", LastName: "Meister"}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name    string
		format  Formatter
		payload string
		want    string
	}{
		{
			name:    "report sheet",
			format:  formatReports,
			payload: `[{"content":{"bericht":"Klient war gut gelaunt"}},{"content":{"bericht":"Verband gewechselt"}}]`,
			want:    "\n Klient war gut gelaunt. \n Verband gewechselt. ",
		},
		{
			name:    "report sheet skips entries without text",
			format:  formatReports,
			payload: `[{"content":{}},{"content":null},{"content":{"bericht":"Ruhige Nacht"}}]`,
			want:    "\n Ruhige Nacht. ",
		},
		{
			name:    "vital values return first entry",
			format:  formatVitals,
			payload: `{"vitalwerteintraege":[{"puls":72,"blutdruck":"120/80"},{"puls":90}]}`,
			want:    `{"puls":72,"blutdruck":"120/80"}`,
		},
		{
			name:    "vital values null",
			format:  formatVitals,
			payload: `{"vitalwerteintraege":null}`,
			want:    "",
		},
		{
			name:    "vital values empty",
			format:  formatVitals,
			payload: `{"vitalwerteintraege":[]}`,
			want:    "",
		},
		{
			name:   "fluid balance covers every entry",
			format: formatFluidBalance,
			payload: `[
				{"subEintraege":[{"content":{"einfuhrmenge":200,"fluessigkeit":"Wasser","ausfuhrmenge":150}}]},
				{"subEintraege":[{"content":{"einfuhrmenge":250.5,"fluessigkeit":"Tee","ausfuhrmenge":null}}]}
			]`,
			want: "\nLukas Meister hat 200 ml Wasser getrunken. Er hat 150 ml Wasser ausgeschieden." +
				"\nLukas Meister hat 250.5 ml Tee getrunken. Er hat unbekannt ml Tee ausgeschieden.",
		},
		{
			name:    "nutrition",
			format:  formatNutrition,
			payload: `[{"subEintraege":[{"content":{"mahlzeit":"Frühstück","lebensmittel":"Brot","kcal":320}},{"content":{"mahlzeit":"Mittag","lebensmittel":"Suppe","kcal":180}}]}]`,
			want: "\nLukas Meister hat Frühstück als Brot gegessen. Er hat dadurch 320 Kalorie/n zu sich genommen." +
				"\nLukas Meister hat Mittag als Suppe gegessen. Er hat dadurch 180 Kalorie/n zu sich genommen.",
		},
		{
			name:    "nutrition without sub entries",
			format:  formatNutrition,
			payload: `[{"subEintraege":null},{}]`,
			want:    "",
		},
		{
			name:    "medication plan",
			format:  formatMedication,
			payload: `[{"content":{"handelsname":"Ibuprofen 400","einheit":"2 Stück","typ":"Tablette"}}]`,
			want:    "\nLukas Meister bekommt Ibuprofen 400 als Medikamente 2 Stück täglich. Die Medikamente nimmt Lukas als Tablette.",
		},
		{
			name:    "measures plan",
			format:  formatMeasures,
			payload: `[{"massnahmen":[{"content":{"text":"Lagerung alle 2 Stunden"}},{"content":{"text":"Trinkprotokoll führen"}}]},{"massnahmen":[]}]`,
			want:    " \nLagerung alle 2 Stunden.  \nTrinkprotokoll führen. ",
		},
		{
			name:    "biography keeps document order and drops nulls",
			format:  formatBiography,
			payload: `{"id":"b-1","kindheit":{"geburtsort":"Kiel","geschwister":null,"schule":"Volksschule"},"beruf":{"taetigkeit":"Tischler"}}`,
			want:    " \nKiel.  \nVolksschule.  \nTischler. ",
		},
		{
			name:    "accident report",
			format:  formatAccidentReport,
			payload: `{"version":3,"hergang":{"ort":"Badezimmer","zeit":"nachts","verletzt":false},"folgen":{"arzt":null}}`,
			want:    "\nBadezimmer.\nnachts.\nfalse.",
		},
		{
			name:    "biography keeps empty strings",
			format:  formatBiography,
			payload: `{"kindheit":{"geburtsort":"","schule":"Volksschule"}}`,
			want:    " \n.  \nVolksschule. ",
		},
		{
			name:    "accident report keeps empty strings",
			format:  formatAccidentReport,
			payload: `{"hergang":{"ort":"","zeit":"nachts"}}`,
			want:    "\n.\nnachts.",
		},
		{
			name:    "raw payload is compacted",
			format:  formatRaw,
			payload: "{\n  \"a\": { \"b\": [1, 2] }\n}",
			want:    `{"a":{"b":[1,2]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.format([]byte(tt.payload), lukas)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLifeDomain(t *testing.T) {
	payload := []byte(`{
		"kopf": {"datum": "2024-01-01"},
		"standpunkt": {"momentanerStandpunkt": "Möchte zu Hause bleiben"},
		"felder": {"themenfeld1": "Orientiert", "themenfeld2": null},
		"nachtrag": {"themenfeld1": "Zeitweise desorientiert"}
	}`)

	t.Run("finds key in any section", func(t *testing.T) {
		got, err := lifeDomain(sisCurrentNeeds)(payload, lukas)
		require.NoError(t, err)
		assert.Equal(t, "Möchte zu Hause bleiben", got)
	})

	t.Run("last non-null occurrence wins", func(t *testing.T) {
		got, err := lifeDomain(sisCognition)(payload, lukas)
		require.NoError(t, err)
		assert.Equal(t, "Zeitweise desorientiert", got)
	})

	t.Run("null counts as missing", func(t *testing.T) {
		got, err := lifeDomain(sisMobility)(payload, lukas)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("structured values render as json", func(t *testing.T) {
		got, err := lifeDomain(sisSocial)([]byte(`{"f":{"themenfeld5":{"kontakte":["Tochter"]}}}`), lukas)
		require.NoError(t, err)
		assert.Equal(t, `{"kontakte":["Tochter"]}`, got)
	})
}

func TestFormattersRejectInvalidJSON(t *testing.T) {
	for name, f := range map[string]Formatter{
		"reports":   formatReports,
		"vitals":    formatVitals,
		"biography": formatBiography,
		"sis":       lifeDomain(sisCurrentNeeds),
		"raw":       formatRaw,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f([]byte(`{not json`), lukas)
			assert.Error(t, err)
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "unbekannt", text(nil))
	assert.Equal(t, "3", text(float64(3)))
	assert.Equal(t, "0.25", text(0.25))
	assert.Equal(t, "true", text(true))
	assert.Equal(t, `["a"]`, text([]any{"a"}))
	assert.Equal(t, "unbekannt", field("not a map", "x"))
}
