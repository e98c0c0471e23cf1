package controllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

type FoodLogController struct {
	Logs *services.FoodLogService
}

func NewFoodLogController(logs *services.FoodLogService) *FoodLogController {
	return &FoodLogController{Logs: logs}
}

type logInput struct {
	FoodItemID string  `json:"food_item_id" binding:"required"`
	Quantity   float64 `json:"quantity"`
	UnitID     *uint   `json:"unit_id"`
	ConsumedAt string  `json:"consumed_at"` // RFC3339, defaults to now
	Notes      string  `json:"notes"`
}

func (fl *FoodLogController) Create(c *gin.Context) {
	personID := c.GetString("personID")

	var input logInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var consumedAt time.Time
	if input.ConsumedAt != "" {
		parsed, err := time.Parse(time.RFC3339, input.ConsumedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "consumed_at must be RFC3339"})
			return
		}
		consumedAt = parsed
	}

	entry, err := fl.Logs.Log(personID, input.FoodItemID, input.Quantity, input.UnitID, consumedAt, input.Notes)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /food-logs?from=2026-08-01&to=2026-08-31
func (fl *FoodLogController) List(c *gin.Context) {
	personID := c.GetString("personID")

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	entries, err := fl.Logs.ListByPerson(personID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /food-logs/summary?date=2026-08-31
func (fl *FoodLogController) Summary(c *gin.Context) {
	personID := c.GetString("personID")

	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	restrictionName := os.Getenv("RENAL_RESTRICTION_NAME")
	if restrictionName == "" {
		restrictionName = "renal-safe"
	}
	summary, err := fl.Logs.Summary(personID, date, restrictionName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (fl *FoodLogController) Delete(c *gin.Context) {
	personID := c.GetString("personID")
	if err := fl.Logs.Delete(personID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}
