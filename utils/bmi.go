package utils

import (
	"errors"
	"math"
)

// ErrInvalidMeasurement flags anthropometric input the formulas cannot use
// (non-positive or non-finite height/weight). Callers log it and substitute
// a null/zero sentinel instead of failing the request.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// CalculateBMI expects weight in kilograms and height in meters, and
// returns the body-mass index rounded to two decimals.
func CalculateBMI(weightKg, heightM float64) (float64, error) {
	if heightM <= 0 || weightKg <= 0 ||
		!isFinite(weightKg) || !isFinite(heightM) {
		return 0, ErrInvalidMeasurement
	}
	return Round2(weightKg / (heightM * heightM)), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obesity"
	}
}

// Activity multipliers for the Harris-Benedict estimate. Unknown levels get
// the sedentary factor.
var activityFactors = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"high":      1.725,
	"very_high": 1.9,
}

// CalorieTiers are the standard meal-plan buckets patients are matched to.
// Kept ascending: tie-breaks during snapping resolve to the lower tier.
var CalorieTiers = []int{1400, 1600, 1800, 2000}

// CalculateDailyCalories estimates daily caloric need via the revised
// Harris-Benedict equation. Height is meters (converted to cm inside the
// formula), sex "male" selects the male branch and anything else the female
// one, age <= 0 defaults to 30. renalAdjustment applies the flat 10%
// reduction used for dialysis patients. With categorize the result is
// snapped to the nearest value in CalorieTiers, ties toward the lower tier.
// Unusable input yields 0 rather than an error.
func CalculateDailyCalories(
	weightKg, heightM float64,
	ageYears int,
	sex, activityLevel string,
	renalAdjustment, categorize bool,
) int {
	if !isFinite(weightKg) || !isFinite(heightM) {
		return 0
	}
	if ageYears <= 0 {
		ageYears = 30
	}
	heightCm := heightM * 100

	var bmr float64
	if sex == "male" {
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(ageYears)
	} else {
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(ageYears)
	}

	factor, ok := activityFactors[activityLevel]
	if !ok {
		factor = 1.2
	}
	calories := bmr * factor

	if renalAdjustment {
		calories *= 0.9
	}
	if !isFinite(calories) {
		return 0
	}
	rounded := int(math.Round(calories))

	if categorize {
		return nearestTier(rounded)
	}
	return rounded
}

func nearestTier(calories int) int {
	best := CalorieTiers[0]
	bestDiff := absInt(calories - best)
	for _, tier := range CalorieTiers[1:] {
		if d := absInt(calories - tier); d < bestDiff {
			best, bestDiff = tier, d
		}
	}
	return best
}

func Round2(v float64) float64 { return math.Round(v*100) / 100 }

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
