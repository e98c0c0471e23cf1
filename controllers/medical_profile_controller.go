package controllers

import (
	"errors"
	"net/http"

	"github.com/nicoiwnl/NutriRenal/config"
	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MedicalProfileController wraps the profile service with caregiver-aware
// access: caregivers may read (not write) the profiles of linked patients.
type MedicalProfileController struct {
	Profiles *services.ProfileService
	Plans    *services.MealPlanService
}

func NewMedicalProfileController(profiles *services.ProfileService, plans *services.MealPlanService) *MedicalProfileController {
	return &MedicalProfileController{Profiles: profiles, Plans: plans}
}

// targetPerson resolves which person's record is being read: the caller's
// own by default, a linked patient's when ?person_id is set.
func (mc *MedicalProfileController) targetPerson(c *gin.Context) (string, bool) {
	personID := c.GetString("personID")
	target := c.Query("person_id")
	if target == "" || target == personID {
		return personID, true
	}
	if !services.IsCaregiverOf(personID, target) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a caregiver of this patient"})
		return "", false
	}
	return target, true
}

func (mc *MedicalProfileController) Get(c *gin.Context) {
	target, ok := mc.targetPerson(c)
	if !ok {
		return
	}
	profile, err := mc.Profiles.Get(target)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "medical profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type medicalProfileInput struct {
	WeightKg      float64 `json:"weight_kg" binding:"required"`
	HeightM       float64 `json:"height_m" binding:"required"`
	DialysisType  string  `json:"dialysis_type"`
	ActivityLevel string  `json:"activity_level"`
}

func (mc *MedicalProfileController) Upsert(c *gin.Context) {
	personID := c.GetString("personID")

	var input medicalProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := mc.Profiles.Upsert(personID, input.WeightKg, input.HeightM, input.DialysisType, input.ActivityLevel)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMeasurements) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (mc *MedicalProfileController) Metrics(c *gin.Context) {
	target, ok := mc.targetPerson(c)
	if !ok {
		return
	}
	metrics, err := mc.Profiles.Metrics(target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medical profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// SuggestedPlans matches the catalog against the patient's metrics.
func (mc *MedicalProfileController) SuggestedPlans(c *gin.Context) {
	target, ok := mc.targetPerson(c)
	if !ok {
		return
	}
	plans, metrics, err := mc.Profiles.SuggestPlans(target, mc.Plans)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medical profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics, "plans": plans})
}

// Alerts lists the person's stored alerts.
func (mc *MedicalProfileController) Alerts(c *gin.Context) {
	personID := c.GetString("personID")
	alerts, err := services.ListAlerts(config.DB, personID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
