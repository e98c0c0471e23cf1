package controllers

import (
	"net/http"

	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	Analysis *services.AnalysisService
}

func NewAnalysisController(analysis *services.AnalysisService) *AnalysisController {
	return &AnalysisController{Analysis: analysis}
}

// POST /analysis  { "image_base64": "data:image/jpeg;base64,..." }
func (ac *AnalysisController) Analyze(c *gin.Context) {
	personID := c.GetString("personID")

	var input struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.Analysis.AnalyzeImage(c.Request.Context(), personID, input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (ac *AnalysisController) List(c *gin.Context) {
	personID := c.GetString("personID")
	target := c.Query("person_id")
	if target != "" && target != personID {
		if !services.IsCaregiverOf(personID, target) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not a caregiver of this patient"})
			return
		}
		personID = target
	}

	results, err := ac.Analysis.ListByPerson(personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (ac *AnalysisController) Get(c *gin.Context) {
	result, err := ac.Analysis.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}

	personID := c.GetString("personID")
	if result.PersonID != personID && !services.IsCaregiverOf(personID, result.PersonID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
