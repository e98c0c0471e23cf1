package controllers

import (
	"net/http"

	"github.com/nicoiwnl/NutriRenal/config"
	"github.com/nicoiwnl/NutriRenal/models"

	"github.com/gin-gonic/gin"
)

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /notifications/toggle
func ToggleNotifications(c *gin.Context) {
	personID := c.GetString("personID")

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	// update all devices for this person
	if err := config.DB.Model(&models.UserDevice{}).
		Where("person_id = ?", personID).
		Update("enabled", req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
