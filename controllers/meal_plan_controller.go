package controllers

import (
	"net/http"
	"time"

	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

type MealPlanController struct {
	Plans *services.MealPlanService
}

func NewMealPlanController(plans *services.MealPlanService) *MealPlanController {
	return &MealPlanController{Plans: plans}
}

func (mp *MealPlanController) Get(c *gin.Context) {
	plan, err := mp.Plans.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GET /meal-plans/:id/nutrients?by_day=true
func (mp *MealPlanController) Nutrients(c *gin.Context) {
	byDay := c.Query("by_day") == "true"
	agg, err := mp.Plans.Aggregate(c.Param("id"), byDay)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, agg)
}

func (mp *MealPlanController) Compliance(c *gin.Context) {
	report, err := mp.Plans.Compliance(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

type assignInput struct {
	MealPlanID string `json:"meal_plan_id" binding:"required"`
	PlanName   string `json:"plan_name"`
	ValidUntil string `json:"valid_until"` // YYYY-MM-DD
}

func (mp *MealPlanController) Assign(c *gin.Context) {
	personID := c.GetString("personID")

	var input assignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validUntil := time.Now().AddDate(0, 1, 0)
	if input.ValidUntil != "" {
		parsed, err := time.Parse("2006-01-02", input.ValidUntil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_until must be YYYY-MM-DD"})
			return
		}
		validUntil = parsed
	}

	assignment, err := mp.Plans.Assign(personID, input.MealPlanID, input.PlanName, validUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (mp *MealPlanController) ActiveAssignment(c *gin.Context) {
	personID := c.GetString("personID")
	assignment, err := mp.Plans.ActiveAssignment(personID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active meal plan"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (mp *MealPlanController) Assignments(c *gin.Context) {
	personID := c.GetString("personID")
	assignments, err := mp.Plans.AssignmentsFor(personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignments)
}
