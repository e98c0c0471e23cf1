package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

// RestrictionController is the admin surface for nutrient bounds.
type RestrictionController struct {
	Restrictions *services.RestrictionService
}

func NewRestrictionController(restrictions *services.RestrictionService) *RestrictionController {
	return &RestrictionController{Restrictions: restrictions}
}

func (rc *RestrictionController) List(c *gin.Context) {
	restrictions, err := rc.Restrictions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, restrictions)
}

func (rc *RestrictionController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restriction id"})
		return
	}
	restriction, err := rc.Restrictions.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restriction not found"})
		return
	}
	c.JSON(http.StatusOK, restriction)
}

func (rc *RestrictionController) Create(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	restriction, err := rc.Restrictions.Create(input.Name, input.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, restriction)
}

func (rc *RestrictionController) SetBound(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restriction id"})
		return
	}

	var input struct {
		NutrientCode string   `json:"nutrient_code" binding:"required"`
		MinValue     *float64 `json:"min_value"`
		MaxValue     *float64 `json:"max_value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bound, err := rc.Restrictions.SetBound(uint(id), input.NutrientCode, input.MinValue, input.MaxValue)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, services.ErrInvalidBound) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bound)
}
