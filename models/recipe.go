package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeType string

const (
	RecipeStarter    RecipeType = "starter"
	RecipeMainCourse RecipeType = "main_course"
	RecipeSideDish   RecipeType = "side_dish"
	RecipeDessert    RecipeType = "dessert"
)

// Recipe dietary flags (LowSodium etc.) are declared by the catalog author,
// not computed from the ingredient list. RecipeService.ReconcileFlags reports
// mismatches against aggregated nutrients but never rewrites them.
type Recipe struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Preparation string     `gorm:"type:text" json:"preparation"`
	Materials   string     `gorm:"type:text" json:"materials"`
	ImageURL    string     `gorm:"size:255" json:"image_url"`
	Type        RecipeType `gorm:"size:50;default:main_course" json:"type"`

	LowSodium     bool `gorm:"default:false" json:"low_sodium"`
	LowPotassium  bool `gorm:"default:false" json:"low_potassium"`
	LowPhosphorus bool `gorm:"default:false" json:"low_phosphorus"`
	LowProtein    bool `gorm:"default:false" json:"low_protein"`

	Active      bool               `json:"active"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type RecipeIngredient struct {
	gorm.Model
	RecipeID   string           `gorm:"type:varchar(36);index;not null" json:"recipe_id"`
	FoodItemID *string          `gorm:"type:varchar(36)" json:"food_item_id,omitempty"`
	FoodItem   *FoodItem        `gorm:"foreignKey:FoodItemID;constraint:OnDelete:SET NULL" json:"food_item,omitempty"`
	Quantity   float64          `json:"quantity"`
	UnitID     *uint            `json:"unit_id,omitempty"`
	Unit       *MeasurementUnit `gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL" json:"unit,omitempty"`
}
