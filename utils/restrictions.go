package utils

// Bound binds one nutrient code to an optional inclusive minimum and/or
// maximum. Services flatten persisted restriction rows into this shape
// before evaluation.
type Bound struct {
	Code string   `json:"code"`
	Name string   `json:"name,omitempty"`
	Unit string   `json:"unit,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

// NutrientCheck is one bound compared against an observed total.
type NutrientCheck struct {
	Code         string   `json:"code"`
	Name         string   `json:"name,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Value        float64  `json:"value"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	WithinBounds bool     `json:"within_bounds"`
}

// ComplianceReport is the result of evaluating aggregated totals against a
// set of bounds. Compliant is the AND of every per-nutrient check; a report
// with no checks is vacuously compliant.
type ComplianceReport struct {
	Checks    []NutrientCheck `json:"checks"`
	Compliant bool            `json:"compliant"`
}

// EvaluateRestrictions compares totals (keyed by nutrient code) against the
// given bounds. Bounds are inclusive: a value exactly at min or max passes.
// Nutrients without a bound are not checked; a bounded nutrient missing
// from totals is checked as zero.
func EvaluateRestrictions(totals map[string]float64, bounds []Bound) ComplianceReport {
	report := ComplianceReport{Compliant: true}
	for _, b := range bounds {
		value := totals[b.Code]
		ok := true
		if b.Min != nil && value < *b.Min {
			ok = false
		}
		if b.Max != nil && value > *b.Max {
			ok = false
		}
		report.Checks = append(report.Checks, NutrientCheck{
			Code:         b.Code,
			Name:         b.Name,
			Unit:         b.Unit,
			Value:        value,
			Min:          b.Min,
			Max:          b.Max,
			WithinBounds: ok,
		})
		if !ok {
			report.Compliant = false
		}
	}
	return report
}
