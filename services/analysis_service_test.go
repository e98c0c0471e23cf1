package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCompletePayload(t *testing.T) {
	payload := map[string]any{
		"alimentos_detectados": []any{"arroz", "pollo"},
		"totales": map[string]any{
			"energia":   450.0,
			"sodio":     800.0,
			"potasio":   600.0,
			"fosforo":   350.0,
			"proteinas": 30.0,
		},
		"recomendaciones":      "Consumir con moderación",
		"compatibilidad_renal": true,
		"texto_original":       "raw model text",
	}

	got := Normalize(payload)
	assert.Equal(t, []string{"arroz", "pollo"}, got.DetectedFoods)
	assert.Equal(t, 450.0, got.Totals.Energy)
	assert.Equal(t, 800.0, got.Totals.Sodium)
	assert.Equal(t, 30.0, got.Totals.Protein)
	assert.Equal(t, "Consumir con moderación", got.Recommendations)
	assert.True(t, got.RenalCompatible)
	assert.Equal(t, "raw model text", got.OriginalText)
}

func TestNormalizeEmptyPayloadDefaults(t *testing.T) {
	got := Normalize(map[string]any{})
	assert.Empty(t, got.DetectedFoods)
	assert.Zero(t, got.Totals.Energy)
	assert.Empty(t, got.Recommendations)
	assert.False(t, got.RenalCompatible)

	got = Normalize(nil)
	assert.False(t, got.RenalCompatible)
}

func TestNormalizeLiftsNestedPayload(t *testing.T) {
	// some responses wrap the actual payload inside texto_original
	payload := map[string]any{
		"texto_original": map[string]any{
			"alimentos_detectados": []any{"sopa"},
			"totales":              map[string]any{"sodio": 1200.0},
			"compatibilidad_renal": false,
		},
	}

	got := Normalize(payload)
	assert.Equal(t, []string{"sopa"}, got.DetectedFoods)
	assert.Equal(t, 1200.0, got.Totals.Sodium)
	assert.False(t, got.RenalCompatible)
	assert.NotEmpty(t, got.OriginalText, "nested payload is preserved as text")
}

func TestNormalizeLiftsNestedFieldsIndividually(t *testing.T) {
	// top level carries the foods and totals, recommendation and verdict
	// only live inside the nested object; each is recovered on its own
	payload := map[string]any{
		"alimentos_detectados": []any{"arroz"},
		"totales":              map[string]any{"sodio": 900.0},
		"texto_original": map[string]any{
			"recomendaciones":      "Evitar por alto sodio",
			"compatibilidad_renal": true,
		},
	}

	got := Normalize(payload)
	assert.Equal(t, []string{"arroz"}, got.DetectedFoods)
	assert.Equal(t, 900.0, got.Totals.Sodium)
	assert.Equal(t, "Evitar por alto sodio", got.Recommendations)
	assert.True(t, got.RenalCompatible)

	// a top-level field is never overridden by the nested one
	payload["recomendaciones"] = "Consumir con moderación"
	got = Normalize(payload)
	assert.Equal(t, "Consumir con moderación", got.Recommendations)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	nested := map[string]any{"recomendaciones": "Evitar"}
	payload := map[string]any{"texto_original": nested}

	Normalize(payload)

	_, polluted := nested["texto_original"]
	assert.False(t, polluted, "nested object left untouched")
	assert.IsType(t, map[string]any{}, payload["texto_original"],
		"caller's payload left untouched")
}

func TestNormalizeStringNumbers(t *testing.T) {
	payload := map[string]any{
		"totales": map[string]any{
			"sodio":   "350 mg",
			"energia": "450,5",
			"potasio": "n/a",
		},
	}

	got := Normalize(payload)
	assert.Equal(t, 350.0, got.Totals.Sodium)
	assert.Equal(t, 450.5, got.Totals.Energy)
	assert.Zero(t, got.Totals.Potassium)
}

func TestNormalizeSkipsBlankFoodNames(t *testing.T) {
	payload := map[string]any{
		"alimentos_detectados": []any{" arroz ", "", "  ", 42},
	}
	got := Normalize(payload)
	assert.Equal(t, []string{"arroz"}, got.DetectedFoods)
}

func TestSummaryName(t *testing.T) {
	assert.Equal(t, "Alimento no identificado", SummaryName(nil))
	assert.Equal(t, "arroz", SummaryName([]string{"arroz"}))
	assert.Equal(t, "arroz, pollo, ensalada", SummaryName([]string{"arroz", "pollo", "ensalada"}))
	assert.Equal(t, "arroz, pollo, ensalada +2 más",
		SummaryName([]string{"arroz", "pollo", "ensalada", "pan", "postre"}))
}

func TestFallbackAnalysis(t *testing.T) {
	got := FallbackAnalysis()
	assert.True(t, got.Failed)
	assert.False(t, got.RenalCompatible)
	assert.NotEmpty(t, got.Recommendations)
	assert.Empty(t, got.DetectedFoods)
}

func TestExtractJSON(t *testing.T) {
	bare, err := extractJSON(`{"compatibilidad_renal": true}`)
	assert.NoError(t, err)
	assert.Equal(t, true, bare["compatibilidad_renal"])

	fenced, err := extractJSON("Claro, aquí está:\n```json\n{\"sodio\": 5}\n```\ngracias")
	assert.NoError(t, err)
	assert.Equal(t, 5.0, fenced["sodio"])

	_, err = extractJSON("no hay json aquí")
	assert.Error(t, err)
}
