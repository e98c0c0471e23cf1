package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

func TestFoodLogLogAndList(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)
	food := seedFood(t, db, "Arroz", 130, 1, 35, 43)
	unit := seedUnit(t, db, "porción", 100)

	entry, err := svc.Log(person.ID, food.ID, 1, &unit.ID, time.Time{}, "almuerzo")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.ConsumedAt.IsZero())

	entries, err := svc.ListByPerson(person.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "almuerzo", entries[0].Notes)
	require.NotNil(t, entries[0].FoodItem)
	assert.Equal(t, "Arroz", entries[0].FoodItem.Name)
}

func TestFoodLogRejectsBadQuantity(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)
	food := seedFood(t, db, "Arroz", 130, 1, 35, 43)

	_, err := svc.Log(person.ID, food.ID, -2, nil, time.Time{}, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	var count int64
	db.Model(&models.FoodLogEntry{}).Count(&count)
	assert.Zero(t, count, "nothing persisted on rejection")
}

func TestFoodLogUnknownFood(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)

	_, err := svc.Log(person.ID, "no-such-food", 1, nil, time.Time{}, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFoodLogSummary(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)
	rice := seedFood(t, db, "Arroz", 130, 1, 35, 43)
	soup := seedFood(t, db, "Sopa de sobre", 60, 1200, 150, 90)
	unit := seedUnit(t, db, "porción", 100)

	today := time.Now()
	_, err := svc.Log(person.ID, rice.ID, 1, &unit.ID, today, "")
	require.NoError(t, err)
	_, err = svc.Log(person.ID, soup.ID, 1, &unit.ID, today, "")
	require.NoError(t, err)
	// yesterday's entry must not leak into today's summary
	_, err = svc.Log(person.ID, rice.ID, 1, &unit.ID, today.AddDate(0, 0, -1), "")
	require.NoError(t, err)

	summary, err := svc.Summary(person.ID, today, "")
	require.NoError(t, err)
	assert.Len(t, summary.Entries, 2)
	assert.Equal(t, 190.0, summary.Totals[NutrientEnergy])
	assert.Equal(t, 1201.0, summary.Totals[NutrientSodium])
	assert.Nil(t, summary.Report, "no restriction requested")
}

func TestFoodLogSummaryWithRestriction(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)
	soup := seedFood(t, db, "Sopa de sobre", 60, 1200, 150, 90)
	unit := seedUnit(t, db, "porción", 100)

	restrictions := NewRestrictionService(db)
	require.NoError(t, db.Create(&models.Nutrient{Code: NutrientSodium, Name: "Sodio", Unit: "mg"}).Error)
	r, err := restrictions.Create("renal-safe", "")
	require.NoError(t, err)
	maxNa := 1000.0
	_, err = restrictions.SetBound(r.ID, NutrientSodium, nil, &maxNa)
	require.NoError(t, err)

	_, err = svc.Log(person.ID, soup.ID, 1, &unit.ID, time.Now(), "")
	require.NoError(t, err)

	summary, err := svc.Summary(person.ID, time.Now(), "renal-safe")
	require.NoError(t, err)
	require.NotNil(t, summary.Report)
	assert.False(t, summary.Report.Compliant, "1200 mg sodium over the 1000 mg bound")
}

func TestFoodLogSummaryPrefersPlanRestrictions(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)
	soup := seedFood(t, db, "Sopa de sobre", 60, 1200, 150, 90)
	unit := seedUnit(t, db, "porción", 100)

	restrictions := NewRestrictionService(db)
	require.NoError(t, db.Create(&models.Nutrient{Code: NutrientSodium, Name: "Sodio", Unit: "mg"}).Error)

	// fallback restriction would fail the day
	fallback, err := restrictions.Create("renal-safe", "")
	require.NoError(t, err)
	strict := 1000.0
	_, err = restrictions.SetBound(fallback.ID, NutrientSodium, nil, &strict)
	require.NoError(t, err)

	// the active plan carries a looser bound, and wins
	planRestriction, err := restrictions.Create("plan-bounds", "")
	require.NoError(t, err)
	loose := 1500.0
	_, err = restrictions.SetBound(planRestriction.ID, NutrientSodium, nil, &loose)
	require.NoError(t, err)

	plan := &models.MealPlan{Name: "Semana 1"}
	require.NoError(t, db.Create(plan).Error)
	require.NoError(t, db.Create(&models.MealPlanRestriction{
		MealPlanID: plan.ID, RestrictionID: planRestriction.ID,
	}).Error)
	_, err = NewMealPlanService(db).Assign(person.ID, plan.ID, "", time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)

	_, err = svc.Log(person.ID, soup.ID, 1, &unit.ID, time.Now(), "")
	require.NoError(t, err)

	summary, err := svc.Summary(person.ID, time.Now(), "renal-safe")
	require.NoError(t, err)
	require.NotNil(t, summary.Report)
	assert.True(t, summary.Report.Compliant, "1200 mg passes the plan's 1500 mg bound")
}

func TestFoodLogDelete(t *testing.T) {
	db := testDB(t)
	svc := NewFoodLogService(db)
	person := &models.Person{FirstName: "Ana"}
	require.NoError(t, db.Create(person).Error)
	other := &models.Person{FirstName: "Luis"}
	require.NoError(t, db.Create(other).Error)
	food := seedFood(t, db, "Arroz", 130, 1, 35, 43)

	entry, err := svc.Log(person.ID, food.ID, 1, nil, time.Time{}, "")
	require.NoError(t, err)

	// another person cannot delete it
	assert.ErrorIs(t, svc.Delete(other.ID, entry.ID), gorm.ErrRecordNotFound)
	assert.NoError(t, svc.Delete(person.ID, entry.ID))
	assert.ErrorIs(t, svc.Delete(person.ID, entry.ID), gorm.ErrRecordNotFound)
}
