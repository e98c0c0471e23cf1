package models

import "gorm.io/gorm"

// MeasurementUnit describes a household measure ("cup", "tablespoon") and
// its equivalence in ml or g. At most one equivalence is authoritative,
// indicated by IsVolume.
type MeasurementUnit struct {
	gorm.Model
	Name          string  `gorm:"size:50;uniqueIndex;not null" json:"name"`
	MlEquivalence float64 `json:"ml_equivalence"`
	GEquivalence  float64 `json:"g_equivalence"`
	IsVolume      bool    `json:"is_volume"`
}

// ScalingFactor converts a quantity expressed in this unit into the factor
// to apply to a per-100 nutrient profile. A unit without the requested
// equivalence falls back to 1/100 so totals stay computable for
// incompletely catalogued units; callers must not treat that as an error.
func (u *MeasurementUnit) ScalingFactor(forVolume bool) float64 {
	if u == nil {
		return 0.01
	}
	if forVolume && u.MlEquivalence > 0 {
		return u.MlEquivalence / 100
	}
	if !forVolume && u.GEquivalence > 0 {
		return u.GEquivalence / 100
	}
	return 0.01
}
