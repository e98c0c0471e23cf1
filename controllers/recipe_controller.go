package controllers

import (
	"net/http"

	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	Recipes *services.RecipeService
}

func NewRecipeController(recipes *services.RecipeService) *RecipeController {
	return &RecipeController{Recipes: recipes}
}

// GET /recipes?type=main_course
func (rc *RecipeController) List(c *gin.Context) {
	recipes, err := rc.Recipes.List(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (rc *RecipeController) Get(c *gin.Context) {
	recipe, err := rc.Recipes.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (rc *RecipeController) Nutrients(c *gin.Context) {
	nutrients, err := rc.Recipes.Nutrients(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, nutrients)
}

// Reconcile reports declared-flag vs aggregated-nutrient mismatches.
func (rc *RecipeController) Reconcile(c *gin.Context) {
	warnings, err := rc.Recipes.ReconcileFlags(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings, "consistent": len(warnings) == 0})
}
