package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

// ErrInvalidQuantity rejects malformed consumption input. Unlike the
// graceful-degradation paths elsewhere, this one is surfaced to the caller:
// a negative or non-numeric quantity is a bad request, not bad catalog data.
var ErrInvalidQuantity = errors.New("quantity must be a non-negative number")

// Nutrient codes used in totals maps and restriction bounds.
const (
	NutrientEnergy     = "energy"
	NutrientProtein    = "protein"
	NutrientCarbs      = "carbs"
	NutrientSugar      = "sugar"
	NutrientFiber      = "fiber"
	NutrientTotalFat   = "total_fat"
	NutrientSatFat     = "sat_fat"
	NutrientSodium     = "sodium"
	NutrientPotassium  = "potassium"
	NutrientPhosphorus = "phosphorus"
	NutrientCalcium    = "calcium"
)

// NutrientTotals maps nutrient codes to amounts. Macros are rounded to two
// decimals when scaled; sodium/potassium/phosphorus stay unrounded so
// repeated aggregation does not accumulate rounding drift — they are
// presented as whole milligrams only at the end (Rounded).
type NutrientTotals map[string]float64

func (t NutrientTotals) Add(other NutrientTotals) {
	for code, v := range other {
		t[code] += v
	}
}

// Rounded returns a presentation copy: minerals to whole mg, the rest 2dp.
func (t NutrientTotals) Rounded() NutrientTotals {
	out := make(NutrientTotals, len(t))
	for code, v := range t {
		switch code {
		case NutrientSodium, NutrientPotassium, NutrientPhosphorus:
			out[code] = math.Round(v)
		default:
			out[code] = utils.Round2(v)
		}
	}
	return out
}

// TotalsForQuantity scales a food's per-100g/ml profile to the consumed
// quantity. The unit's equivalence converts household measures ("cup",
// "tablespoon") into the reference denomination; a nil unit or one without
// the needed equivalence falls back to treating the raw quantity as
// hundredths of the reference unit (see MeasurementUnit.ScalingFactor).
// Missing micronutrients contribute zero — they never poison the totals.
func TotalsForQuantity(food *models.FoodItem, quantity float64, unit *models.MeasurementUnit) (NutrientTotals, error) {
	if quantity < 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuantity, quantity)
	}
	if food == nil {
		return NutrientTotals{}, nil
	}

	forVolume := unit != nil && unit.IsVolume
	factor := quantity * unit.ScalingFactor(forVolume)

	return NutrientTotals{
		NutrientEnergy:     utils.Round2(food.Energy * factor),
		NutrientProtein:    utils.Round2(food.Protein * factor),
		NutrientCarbs:      utils.Round2(food.Carbs * factor),
		NutrientSugar:      utils.Round2(food.Sugar * factor),
		NutrientFiber:      utils.Round2(food.Fiber * factor),
		NutrientTotalFat:   utils.Round2(food.TotalFat * factor),
		NutrientSatFat:     utils.Round2(food.SatFat * factor),
		NutrientSodium:     food.Sodium * factor,
		NutrientPotassium:  food.Potassium * factor,
		NutrientPhosphorus: food.Phosphorus * factor,
		NutrientCalcium:    utils.Round2(food.Calcium * factor),
	}, nil
}

// AccumulateIngredients folds a recipe's ingredient list into totals.
// Incomplete ingredients (no food, no unit, or non-positive quantity) are
// skipped with a recorded warning; partial catalog data must not abort an
// aggregation.
func AccumulateIngredients(totals NutrientTotals, ingredients []models.RecipeIngredient, recipeName string) []string {
	var warnings []string
	for _, ing := range ingredients {
		if ing.FoodItem == nil {
			warnings = append(warnings, fmt.Sprintf("%s: ingredient %d has no food reference, skipped", recipeName, ing.ID))
			continue
		}
		if ing.Unit == nil {
			warnings = append(warnings, fmt.Sprintf("%s: ingredient %q has no measurement unit, skipped", recipeName, ing.FoodItem.Name))
			continue
		}
		if ing.Quantity <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: ingredient %q has no quantity, skipped", recipeName, ing.FoodItem.Name))
			continue
		}
		scaled, err := TotalsForQuantity(ing.FoodItem, ing.Quantity, ing.Unit)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: ingredient %q: %v, skipped", recipeName, ing.FoodItem.Name, err))
			continue
		}
		totals.Add(scaled)
	}
	return warnings
}
