package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

// DailySummary is everything a patient consumed on one calendar day,
// aggregated and checked against the configured renal restriction.
type DailySummary struct {
	PersonID string                  `json:"person_id"`
	Date     string                  `json:"date"`
	Entries  []models.FoodLogEntry   `json:"entries"`
	Totals   NutrientTotals          `json:"totals"`
	Report   *utils.ComplianceReport `json:"report,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

type FoodLogService struct {
	db           *gorm.DB
	restrictions *RestrictionService
}

func NewFoodLogService(db *gorm.DB) *FoodLogService {
	return &FoodLogService{db: db, restrictions: NewRestrictionService(db)}
}

// Log records a consumption event. The quantity is validated through the
// same path used for scaling so a bad value is rejected before persisting.
func (s *FoodLogService) Log(personID, foodItemID string, quantity float64, unitID *uint, consumedAt time.Time, notes string) (*models.FoodLogEntry, error) {
	var food models.FoodItem
	if err := s.db.First(&food, "id = ?", foodItemID).Error; err != nil {
		return nil, err
	}
	var unit *models.MeasurementUnit
	if unitID != nil {
		var u models.MeasurementUnit
		if err := s.db.First(&u, *unitID).Error; err != nil {
			return nil, err
		}
		unit = &u
	}
	if _, err := TotalsForQuantity(&food, quantity, unit); err != nil {
		return nil, err
	}

	entry := &models.FoodLogEntry{
		PersonID:   personID,
		FoodItemID: &food.ID,
		UnitID:     unitID,
		Quantity:   quantity,
		ConsumedAt: consumedAt,
		Notes:      notes,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	entry.FoodItem = &food
	entry.Unit = unit
	return entry, nil
}

func (s *FoodLogService) ListByPerson(personID string, from, to time.Time) ([]models.FoodLogEntry, error) {
	q := s.db.Preload("FoodItem").Preload("Unit").
		Where("person_id = ?", personID)
	if !from.IsZero() {
		q = q.Where("consumed_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("consumed_at < ?", to)
	}
	var out []models.FoodLogEntry
	err := q.Order("consumed_at DESC").Find(&out).Error
	return out, err
}

// Summary aggregates one calendar day (local to the given date's location).
// Entries with a deleted food reference are skipped with a warning. When the
// named restriction resolves to bounds, a compliance report is attached.
func (s *FoodLogService) Summary(personID string, date time.Time, restrictionName string) (*DailySummary, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	entries, err := s.ListByPerson(personID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		PersonID: personID,
		Date:     dayStart.Format("2006-01-02"),
		Entries:  entries,
		Totals:   NutrientTotals{},
	}
	for _, e := range entries {
		if e.FoodItem == nil {
			summary.Warnings = append(summary.Warnings,
				"entry "+e.ID+": food no longer in catalog, skipped")
			continue
		}
		scaled, err := TotalsForQuantity(e.FoodItem, e.Quantity, e.Unit)
		if err != nil {
			summary.Warnings = append(summary.Warnings,
				"entry "+e.ID+": "+err.Error()+", skipped")
			continue
		}
		summary.Totals.Add(scaled)
	}
	summary.Totals = summary.Totals.Rounded()

	if bounds := s.boundsFor(personID, restrictionName); len(bounds) > 0 {
		report := utils.EvaluateRestrictions(summary.Totals, bounds)
		summary.Report = &report
	}
	return summary, nil
}

// boundsFor prefers the restrictions attached to the person's active meal
// plan; without one (or without bounds) the named fallback restriction is
// used.
func (s *FoodLogService) boundsFor(personID, restrictionName string) []utils.Bound {
	var assignment models.MealPlanAssignment
	err := s.db.Where("person_id = ? AND active = ?", personID, true).
		First(&assignment).Error
	if err == nil && assignment.MealPlanID != nil {
		var links []models.MealPlanRestriction
		if err := s.db.Where("meal_plan_id = ?", *assignment.MealPlanID).
			Find(&links).Error; err == nil && len(links) > 0 {
			ids := make([]uint, 0, len(links))
			for _, l := range links {
				ids = append(ids, l.RestrictionID)
			}
			if bounds, err := s.restrictions.BoundsUnion(ids); err == nil && len(bounds) > 0 {
				return bounds
			}
		}
	}

	if restrictionName == "" {
		return nil
	}
	restriction, err := s.restrictions.GetByName(restrictionName)
	if err != nil {
		return nil
	}
	return FlattenBounds(restriction.Bounds)
}

func (s *FoodLogService) Delete(personID, entryID string) error {
	res := s.db.Where("id = ? AND person_id = ?", entryID, personID).
		Delete(&models.FoodLogEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
