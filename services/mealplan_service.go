package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

// MealPlanNutrients is the aggregation of every recipe slot in a plan,
// optionally grouped by day of week.
type MealPlanNutrients struct {
	MealPlanID string                    `json:"meal_plan_id"`
	Name       string                    `json:"name"`
	Totals     NutrientTotals            `json:"totals"`
	ByDay      map[string]NutrientTotals `json:"by_day,omitempty"`
	Warnings   []string                  `json:"warnings,omitempty"`
}

// MealPlanCompliance is the plan's aggregated totals checked against the
// union of its attached restrictions.
type MealPlanCompliance struct {
	MealPlanID string                 `json:"meal_plan_id"`
	Report     utils.ComplianceReport `json:"report"`
	Warnings   []string               `json:"warnings,omitempty"`
}

type MealPlanService struct {
	db           *gorm.DB
	restrictions *RestrictionService
}

func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db, restrictions: NewRestrictionService(db)}
}

func (s *MealPlanService) Get(id string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.
		Preload("Details.MealType").
		Preload("Details.Recipe.Ingredients.FoodItem").
		Preload("Details.Recipe.Ingredients.Unit").
		Preload("Restrictions.Restriction.Bounds.Nutrient").
		First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindForProfile lists plans matching a patient's computed calorie tier,
// dialysis modality and sex. Plans with sex "unknown" match anyone.
func (s *MealPlanService) FindForProfile(calories int, dialysis models.DialysisType, sex models.Sex) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.
		Where("calories = ?", float64(calories)).
		Where("dialysis_type = ? OR dialysis_type = ?", dialysis, models.DialysisBoth).
		Where("sex = ? OR sex = ?", sex, models.SexUnknown).
		Find(&plans).Error
	return plans, err
}

// Aggregate folds every recipe-backed slot of the plan into totals. Slots
// without a recipe (free-text meals) contribute nothing and are noted once;
// recipe-level data gaps surface as individual warnings.
func (s *MealPlanService) Aggregate(id string, byDay bool) (*MealPlanNutrients, error) {
	plan, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	out := &MealPlanNutrients{
		MealPlanID: plan.ID,
		Name:       plan.Name,
		Totals:     NutrientTotals{},
	}
	if byDay {
		out.ByDay = make(map[string]NutrientTotals)
	}
	for _, detail := range plan.Details {
		if detail.Recipe == nil {
			if detail.MealName != "" {
				out.Warnings = append(out.Warnings,
					detail.MealName+": free-text meal, no nutrient data")
			}
			continue
		}
		slot := NutrientTotals{}
		out.Warnings = append(out.Warnings,
			AccumulateIngredients(slot, detail.Recipe.Ingredients, detail.Recipe.Name)...)
		out.Totals.Add(slot)
		if byDay {
			day := out.ByDay[detail.DayOfWeek]
			if day == nil {
				day = NutrientTotals{}
				out.ByDay[detail.DayOfWeek] = day
			}
			day.Add(slot)
		}
	}

	out.Totals = out.Totals.Rounded()
	for day, totals := range out.ByDay {
		out.ByDay[day] = totals.Rounded()
	}
	return out, nil
}

// Compliance evaluates the plan's aggregated totals against the union of
// its attached restrictions (stricter side wins per nutrient). A plan with
// no restrictions is vacuously compliant.
func (s *MealPlanService) Compliance(id string) (*MealPlanCompliance, error) {
	agg, err := s.Aggregate(id, false)
	if err != nil {
		return nil, err
	}

	var links []models.MealPlanRestriction
	if err := s.db.Where("meal_plan_id = ?", id).Find(&links).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.RestrictionID)
	}
	bounds, err := s.restrictions.BoundsUnion(ids)
	if err != nil {
		return nil, err
	}

	return &MealPlanCompliance{
		MealPlanID: id,
		Report:     utils.EvaluateRestrictions(agg.Totals, bounds),
		Warnings:   agg.Warnings,
	}, nil
}

// Assign gives a person a plan, deactivating any currently active
// assignment first so at most one is active per person.
func (s *MealPlanService) Assign(personID, mealPlanID, planName string, validUntil time.Time) (*models.MealPlanAssignment, error) {
	var plan models.MealPlan
	if err := s.db.First(&plan, "id = ?", mealPlanID).Error; err != nil {
		return nil, err
	}
	if planName == "" {
		planName = plan.Name
	}

	assignment := &models.MealPlanAssignment{
		PersonID:   personID,
		MealPlanID: &plan.ID,
		PlanName:   planName,
		ValidUntil: validUntil,
		Active:     true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealPlanAssignment{}).
			Where("person_id = ? AND active = ?", personID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// ActiveAssignment returns the person's current assignment, expiring it on
// read when its validity window has passed.
func (s *MealPlanService) ActiveAssignment(personID string) (*models.MealPlanAssignment, error) {
	var a models.MealPlanAssignment
	err := s.db.Preload("MealPlan.Details.Recipe").
		Where("person_id = ? AND active = ?", personID, true).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	if !a.ValidUntil.IsZero() && a.ValidUntil.Before(time.Now()) {
		a.Active = false
		if err := s.db.Model(&a).Update("active", false).Error; err != nil {
			return nil, err
		}
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (s *MealPlanService) AssignmentsFor(personID string) ([]models.MealPlanAssignment, error) {
	var out []models.MealPlanAssignment
	err := s.db.Preload("MealPlan").
		Where("person_id = ?", personID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
