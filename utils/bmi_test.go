package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(65, 1.60)
	require.NoError(t, err)
	assert.Equal(t, 25.39, bmi)

	bmi, err = CalculateBMI(70, 1.75)
	require.NoError(t, err)
	assert.Equal(t, 22.86, bmi)
}

func TestCalculateBMIInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		height float64
	}{
		{"zero height", 70, 0},
		{"negative height", 70, -1.6},
		{"zero weight", 0, 1.75},
		{"negative weight", -5, 1.75},
		{"NaN weight", math.NaN(), 1.75},
		{"infinite height", 70, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateBMI(tc.weight, tc.height)
			assert.ErrorIs(t, err, ErrInvalidMeasurement)
		})
	}
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "underweight", BMICategory(18.49))
	assert.Equal(t, "normal", BMICategory(18.5))
	assert.Equal(t, "normal", BMICategory(24.99))
	assert.Equal(t, "overweight", BMICategory(25.0))
	assert.Equal(t, "obesity", BMICategory(30.0))
}

func TestCalculateDailyCaloriesMale(t *testing.T) {
	// 88.362 + 13.397*70 + 4.799*175 - 5.677*30 = 1695.667
	// sedentary 1.2 -> 2034.80, no renal adjustment
	got := CalculateDailyCalories(70, 1.75, 30, "male", "sedentary", false, false)
	assert.Equal(t, 2035, got)
}

func TestCalculateDailyCaloriesFemaleRenal(t *testing.T) {
	// 447.593 + 9.247*65 + 3.098*160 - 4.330*45 = 1349.478
	// moderate 1.55 -> 2091.69, renal *0.9 -> 1882.52
	got := CalculateDailyCalories(65, 1.60, 45, "female", "moderate", true, false)
	assert.Equal(t, 1883, got)
}

func TestCalculateDailyCaloriesCategorized(t *testing.T) {
	// 1883 snaps to the 1800 tier (closer than 2000)
	got := CalculateDailyCalories(65, 1.60, 45, "female", "moderate", true, true)
	assert.Equal(t, 1800, got)
}

func TestCalculateDailyCaloriesDefaults(t *testing.T) {
	// age <= 0 falls back to 30, unknown activity to sedentary
	withDefaults := CalculateDailyCalories(70, 1.75, 0, "male", "unknown", false, false)
	explicit := CalculateDailyCalories(70, 1.75, 30, "male", "sedentary", false, false)
	assert.Equal(t, explicit, withDefaults)

	// unusable measurements give zero, not an error
	assert.Equal(t, 0, CalculateDailyCalories(math.NaN(), 1.75, 30, "male", "sedentary", false, false))
}

func TestCalculateDailyCaloriesMonotonicInActivity(t *testing.T) {
	levels := []string{"sedentary", "light", "moderate", "high", "very_high"}
	prev := 0
	for _, level := range levels {
		got := CalculateDailyCalories(65, 1.60, 45, "female", level, false, false)
		assert.Greater(t, got, prev, "activity %s should raise the estimate", level)
		prev = got
	}
}

func TestNearestTierTiesGoLower(t *testing.T) {
	// 1500 is equidistant from 1400 and 1600
	assert.Equal(t, 1400, nearestTier(1500))
	assert.Equal(t, 1600, nearestTier(1501))
	assert.Equal(t, 1400, nearestTier(900))
	assert.Equal(t, 2000, nearestTier(2600))
}
