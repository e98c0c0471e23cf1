package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

// thresholds used only to sanity-check declared recipe flags against the
// aggregated per-recipe totals (mg for minerals, g for protein).
const (
	lowSodiumMaxMg     = 600
	lowPotassiumMaxMg  = 700
	lowPhosphorusMaxMg = 300
	lowProteinMaxG     = 20
)

// RecipeNutrients pairs a recipe's aggregated totals with the data-quality
// warnings produced while folding its ingredients.
type RecipeNutrients struct {
	RecipeID string         `json:"recipe_id"`
	Name     string         `json:"name"`
	Totals   NutrientTotals `json:"totals"`
	Warnings []string       `json:"warnings,omitempty"`
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) List(recipeType string) ([]models.Recipe, error) {
	q := s.db.Where("active = ?", true)
	if recipeType != "" {
		q = q.Where("type = ?", recipeType)
	}
	var out []models.Recipe
	err := q.Find(&out).Error
	return out, err
}

func (s *RecipeService) Get(id string) (*models.Recipe, error) {
	var r models.Recipe
	err := s.db.
		Preload("Ingredients.FoodItem").
		Preload("Ingredients.Unit").
		First(&r, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Nutrients aggregates one recipe's ingredient list into totals. Incomplete
// ingredients are skipped and reported, never fatal.
func (s *RecipeService) Nutrients(id string) (*RecipeNutrients, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return aggregateRecipe(recipe), nil
}

func aggregateRecipe(recipe *models.Recipe) *RecipeNutrients {
	totals := NutrientTotals{}
	warnings := AccumulateIngredients(totals, recipe.Ingredients, recipe.Name)
	return &RecipeNutrients{
		RecipeID: recipe.ID,
		Name:     recipe.Name,
		Totals:   totals.Rounded(),
		Warnings: warnings,
	}
}

// ReconcileFlags compares a recipe's declared dietary flags against its
// aggregated nutrients and returns one warning per mismatch. Flags are
// editorial: they are reported on, never rewritten.
func (s *RecipeService) ReconcileFlags(id string) ([]string, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	agg := aggregateRecipe(recipe)

	var warnings []string
	warnings = append(warnings, agg.Warnings...)
	check := func(flag bool, label, code string, limit float64) {
		if flag && agg.Totals[code] > limit {
			warnings = append(warnings,
				fmt.Sprintf("%s: declared %s but aggregated %s is %.0f (limit %.0f)",
					recipe.Name, label, code, agg.Totals[code], limit))
		}
	}
	check(recipe.LowSodium, "low_sodium", NutrientSodium, lowSodiumMaxMg)
	check(recipe.LowPotassium, "low_potassium", NutrientPotassium, lowPotassiumMaxMg)
	check(recipe.LowPhosphorus, "low_phosphorus", NutrientPhosphorus, lowPhosphorusMaxMg)
	check(recipe.LowProtein, "low_protein", NutrientProtein, lowProteinMaxG)
	return warnings, nil
}
