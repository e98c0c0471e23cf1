package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

func seedPlanWithRecipe(t *testing.T, db *gorm.DB) *models.MealPlan {
	t.Helper()
	rice := seedFood(t, db, "Arroz", 130, 1, 35, 43)
	chicken := seedFood(t, db, "Pollo", 165, 74, 256, 228)
	unit := seedUnit(t, db, "porción", 100)

	recipe := &models.Recipe{Name: "Arroz con pollo", Active: true}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Create(&models.RecipeIngredient{
		RecipeID: recipe.ID, FoodItemID: &rice.ID, Quantity: 1, UnitID: &unit.ID,
	}).Error)
	require.NoError(t, db.Create(&models.RecipeIngredient{
		RecipeID: recipe.ID, FoodItemID: &chicken.ID, Quantity: 1, UnitID: &unit.ID,
	}).Error)

	plan := &models.MealPlan{Name: "Semana 1", Calories: 1800, Sex: models.SexFemale, DialysisType: models.DialysisHemodialysis}
	require.NoError(t, db.Create(plan).Error)
	require.NoError(t, db.Create(&models.MealPlanDetail{
		MealPlanID: plan.ID, DayOfWeek: "monday", RecipeID: &recipe.ID,
	}).Error)
	require.NoError(t, db.Create(&models.MealPlanDetail{
		MealPlanID: plan.ID, DayOfWeek: "tuesday", MealName: "Comida libre",
	}).Error)
	return plan
}

func TestMealPlanAggregate(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)

	agg, err := NewMealPlanService(db).Aggregate(plan.ID, false)
	require.NoError(t, err)

	assert.Equal(t, 295.0, agg.Totals[NutrientEnergy])
	assert.Equal(t, 75.0, agg.Totals[NutrientSodium])
	assert.Equal(t, 291.0, agg.Totals[NutrientPotassium])
	// the free-text slot contributes nothing but is reported
	require.Len(t, agg.Warnings, 1)
	assert.Contains(t, agg.Warnings[0], "Comida libre")
}

func TestMealPlanAggregateByDay(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)

	agg, err := NewMealPlanService(db).Aggregate(plan.ID, true)
	require.NoError(t, err)

	require.Contains(t, agg.ByDay, "monday")
	assert.Equal(t, 295.0, agg.ByDay["monday"][NutrientEnergy])
	assert.NotContains(t, agg.ByDay, "tuesday", "free-text slots produce no day bucket")
}

func TestMealPlanAggregateDanglingIngredient(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)

	// delete one food; the SET NULL leaves a dangling ingredient row
	require.NoError(t, db.Exec("UPDATE recipe_ingredients SET food_item_id = NULL WHERE id = 1").Error)

	agg, err := NewMealPlanService(db).Aggregate(plan.ID, false)
	require.NoError(t, err)

	assert.Equal(t, 165.0, agg.Totals[NutrientEnergy], "remaining ingredient is still summed")
	assert.Len(t, agg.Warnings, 2)
}

func TestMealPlanCompliance(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)
	svc := NewMealPlanService(db)

	restrictions := NewRestrictionService(db)
	require.NoError(t, db.Create(&models.Nutrient{Code: NutrientSodium, Name: "Sodio", Unit: "mg"}).Error)
	restriction, err := restrictions.Create("renal-safe", "")
	require.NoError(t, err)
	maxNa := 50.0
	_, err = restrictions.SetBound(restriction.ID, NutrientSodium, nil, &maxNa)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.MealPlanRestriction{
		MealPlanID: plan.ID, RestrictionID: restriction.ID,
	}).Error)

	report, err := svc.Compliance(plan.ID)
	require.NoError(t, err)
	assert.False(t, report.Report.Compliant, "75 mg sodium exceeds the 50 mg bound")

	// loosen the bound, plan becomes compliant
	maxNa = 100
	_, err = restrictions.SetBound(restriction.ID, NutrientSodium, nil, &maxNa)
	require.NoError(t, err)
	report, err = svc.Compliance(plan.ID)
	require.NoError(t, err)
	assert.True(t, report.Report.Compliant)
}

func TestMealPlanComplianceNoRestrictions(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)

	report, err := NewMealPlanService(db).Compliance(plan.ID)
	require.NoError(t, err)
	assert.True(t, report.Report.Compliant)
	assert.Empty(t, report.Report.Checks)
}

func TestBoundsUnionStricterWins(t *testing.T) {
	db := testDB(t)
	restrictions := NewRestrictionService(db)
	require.NoError(t, db.Create(&models.Nutrient{Code: NutrientSodium, Name: "Sodio", Unit: "mg"}).Error)

	a, err := restrictions.Create("renal", "")
	require.NoError(t, err)
	b, err := restrictions.Create("hypertension", "")
	require.NoError(t, err)
	loose, strict := 2000.0, 1500.0
	_, err = restrictions.SetBound(a.ID, NutrientSodium, nil, &loose)
	require.NoError(t, err)
	_, err = restrictions.SetBound(b.ID, NutrientSodium, nil, &strict)
	require.NoError(t, err)

	bounds, err := restrictions.BoundsUnion([]uint{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, bounds, 1)
	assert.Equal(t, 1500.0, *bounds[0].Max)
}

func TestSetBoundRejectsInvertedRange(t *testing.T) {
	db := testDB(t)
	restrictions := NewRestrictionService(db)
	require.NoError(t, db.Create(&models.Nutrient{Code: NutrientSodium, Name: "Sodio", Unit: "mg"}).Error)
	r, err := restrictions.Create("renal", "")
	require.NoError(t, err)

	min, max := 100.0, 50.0
	_, err = restrictions.SetBound(r.ID, NutrientSodium, &min, &max)
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestAssignDeactivatesPrevious(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)
	svc := NewMealPlanService(db)

	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)

	first, err := svc.Assign(person.ID, plan.ID, "", time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "Semana 1", first.PlanName)

	second, err := svc.Assign(person.ID, plan.ID, "Plan nuevo", time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)

	active, err := svc.ActiveAssignment(person.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	all, err := svc.AssignmentsFor(person.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestActiveAssignmentExpires(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db)
	svc := NewMealPlanService(db)

	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)

	_, err := svc.Assign(person.ID, plan.ID, "", time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)

	_, err = svc.ActiveAssignment(person.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindForProfile(t *testing.T) {
	db := testDB(t)
	plan := seedPlanWithRecipe(t, db) // 1800 kcal, female, hemodialysis
	svc := NewMealPlanService(db)

	got, err := svc.FindForProfile(1800, models.DialysisHemodialysis, models.SexFemale)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, plan.ID, got[0].ID)

	got, err = svc.FindForProfile(1400, models.DialysisHemodialysis, models.SexFemale)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.FindForProfile(1800, models.DialysisPeritoneal, models.SexFemale)
	require.NoError(t, err)
	assert.Empty(t, got)
}
