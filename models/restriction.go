package models

import "gorm.io/gorm"

// Nutrient is the closed list of codes restrictions can bind to. Codes match
// the keys used in aggregated totals ("sodium", "potassium", ...).
type Nutrient struct {
	gorm.Model
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Unit string `gorm:"size:100" json:"unit"`
}

// DietaryRestriction is a named set of bounds, e.g. "renal-safe".
type DietaryRestriction struct {
	gorm.Model
	Name        string             `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Bounds      []RestrictionBound `gorm:"foreignKey:RestrictionID" json:"bounds,omitempty"`
}

// RestrictionBound binds one nutrient to an optional minimum and/or maximum.
// Bounds are inclusive on both ends. Invariant: when both are set,
// min <= max (enforced at write time by the restriction admin endpoints).
type RestrictionBound struct {
	gorm.Model
	RestrictionID uint      `gorm:"index;not null" json:"restriction_id"`
	NutrientID    uint      `gorm:"index;not null" json:"nutrient_id"`
	Nutrient      *Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient,omitempty"`
	MinValue      *float64  `json:"min_value,omitempty"`
	MaxValue      *float64  `json:"max_value,omitempty"`
}
