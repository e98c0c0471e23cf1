package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType is a catalog row ("breakfast", "lunch", "snack"...).
type MealType struct {
	gorm.Model
	Name string `gorm:"size:50;uniqueIndex" json:"name"`
}

// MealPlan ("minuta") is a reusable weekly plan template targeted at a sex,
// calorie tier and dialysis modality.
type MealPlan struct {
	ID           string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string       `gorm:"size:100" json:"name"`
	Sex          Sex          `gorm:"size:50;default:unknown" json:"sex"`
	Calories     float64      `json:"calories"`
	DialysisType DialysisType `gorm:"size:50" json:"dialysis_type"`

	LowSodium     bool `gorm:"default:false" json:"low_sodium"`
	LowPotassium  bool `gorm:"default:false" json:"low_potassium"`
	LowPhosphorus bool `gorm:"default:false" json:"low_phosphorus"`
	LowProtein    bool `gorm:"default:false" json:"low_protein"`

	Details      []MealPlanDetail      `gorm:"foreignKey:MealPlanID" json:"details,omitempty"`
	Restrictions []MealPlanRestriction `gorm:"foreignKey:MealPlanID" json:"restrictions,omitempty"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MealPlanDetail is one slot in the plan: a day of week plus meal type,
// holding either a recipe reference or a free-text meal name.
type MealPlanDetail struct {
	gorm.Model
	MealPlanID  string    `gorm:"type:varchar(36);index;not null" json:"meal_plan_id"`
	DayOfWeek   string    `gorm:"size:20" json:"day_of_week"`
	MealTypeID  *uint     `json:"meal_type_id,omitempty"`
	MealType    *MealType `gorm:"foreignKey:MealTypeID" json:"meal_type,omitempty"`
	RecipeID    *string   `gorm:"type:varchar(36)" json:"recipe_id,omitempty"`
	Recipe      *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
	MealName    string    `gorm:"size:100" json:"meal_name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:255" json:"image_url"`
}

// MealPlanAssignment binds a plan to a person for a validity window.
type MealPlanAssignment struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PersonID   string    `gorm:"type:varchar(36);index;not null" json:"person_id"`
	Person     *Person   `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
	MealPlanID *string   `gorm:"type:varchar(36)" json:"meal_plan_id,omitempty"`
	MealPlan   *MealPlan `gorm:"foreignKey:MealPlanID;constraint:OnDelete:SET NULL" json:"meal_plan,omitempty"`
	PlanName   string    `gorm:"size:100" json:"plan_name"`
	CreatedAt  time.Time `json:"created_at"`
	ValidUntil time.Time `json:"valid_until"`
	Active     bool      `json:"active"`
}

func (a *MealPlanAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// MealPlanRestriction attaches a named dietary restriction to a plan.
type MealPlanRestriction struct {
	gorm.Model
	MealPlanID    string              `gorm:"type:varchar(36);index;not null" json:"meal_plan_id"`
	RestrictionID uint                `gorm:"index;not null" json:"restriction_id"`
	Restriction   *DietaryRestriction `gorm:"foreignKey:RestrictionID;constraint:OnDelete:CASCADE" json:"restriction,omitempty"`
}
