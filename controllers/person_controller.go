package controllers

import (
	"net/http"

	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	personID := c.GetString("personID")
	profile, err := services.GetPersonProfile(personID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	personID := c.GetString("personID")

	var input services.PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdatePersonProfile(personID, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

func DeactivateAccount(c *gin.Context) {
	personID := c.GetString("personID")
	if err := services.DeactivatePerson(personID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deactivated"})
}

func LinkCaregiver(c *gin.Context) {
	personID := c.GetString("personID")

	var input struct {
		CaregiverID string `json:"caregiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := services.LinkCaregiver(personID, input.CaregiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, link)
}

func UnlinkCaregiver(c *gin.Context) {
	personID := c.GetString("personID")
	caregiverID := c.Param("caregiverId")

	if err := services.UnlinkCaregiver(personID, caregiverID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "caregiver unlinked"})
}

func ListCaregivers(c *gin.Context) {
	personID := c.GetString("personID")
	links, err := services.ListCaregivers(personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, links)
}

// ListPatients is the caregiver-side view of the link table.
func ListPatients(c *gin.Context) {
	personID := c.GetString("personID")
	links, err := services.ListPatients(personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, links)
}
