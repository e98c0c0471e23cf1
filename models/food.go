package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodCategory struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// FoodItem is immutable reference data: the nutrient profile of a food per
// 100 g (or 100 ml for liquids). Macros are grams, energy is kcal, minerals
// are milligrams. A missing micronutrient is simply zero here; scaling code
// treats it as zero contribution either way.
type FoodItem struct {
	ID         string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CategoryID *uint         `json:"category_id,omitempty"`
	Category   *FoodCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Name       string        `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Energy   float64 `json:"energy"`
	Moisture float64 `json:"moisture"`
	Ash      float64 `json:"ash"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Sugar    float64 `json:"sugar"`
	Fiber    float64 `json:"fiber"`

	TotalFat    float64 `json:"total_fat"`
	SatFat      float64 `json:"sat_fat"`
	MonoFat     float64 `json:"mono_fat"`
	PolyFat     float64 `json:"poly_fat"`
	TransFat    float64 `json:"trans_fat"`
	Cholesterol float64 `json:"cholesterol"`

	VitaminA        float64 `json:"vitamin_a"`
	VitaminC        float64 `json:"vitamin_c"`
	VitaminD        float64 `json:"vitamin_d"`
	VitaminE        float64 `json:"vitamin_e"`
	VitaminK        float64 `json:"vitamin_k"`
	VitaminB1       float64 `json:"vitamin_b1"`
	VitaminB2       float64 `json:"vitamin_b2"`
	Niacin          float64 `json:"niacin"`
	VitaminB6       float64 `json:"vitamin_b6"`
	PantothenicAcid float64 `json:"pantothenic_acid"`
	VitaminB12      float64 `json:"vitamin_b12"`
	Folate          float64 `json:"folate"`

	Sodium     float64 `json:"sodium"`
	Potassium  float64 `json:"potassium"`
	Calcium    float64 `json:"calcium"`
	Phosphorus float64 `json:"phosphorus"`
	Magnesium  float64 `json:"magnesium"`
	Iron       float64 `json:"iron"`
	Zinc       float64 `json:"zinc"`
	Copper     float64 `json:"copper"`
	Selenium   float64 `json:"selenium"`
	Alcohol    float64 `json:"alcohol"`

	Active bool `json:"active"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
