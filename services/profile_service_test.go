package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

func seedPatient(t *testing.T, db *gorm.DB) *models.Person {
	t.Helper()
	person := &models.Person{
		FirstName: "Ana",
		Sex:       models.SexFemale,
		BirthDate: time.Now().AddDate(-45, 0, 0),
	}
	require.NoError(t, db.Create(person).Error)
	return person
}

func TestProfileUpsertCreatesThenUpdates(t *testing.T) {
	db := testDB(t)
	svc := NewProfileService(db, zap.NewNop())
	person := seedPatient(t, db)

	profile, err := svc.Upsert(person.ID, 65, 1.60, "hemodialisis", "moderada")
	require.NoError(t, err)
	assert.Equal(t, models.DialysisHemodialysis, profile.DialysisType)
	assert.Equal(t, models.ActivityModerate, profile.ActivityLevel)

	updated, err := svc.Upsert(person.ID, 66, 1.60, "", "")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID, "same row updated")
	assert.Equal(t, 66.0, updated.WeightKg)
	assert.Equal(t, models.ActivityModerate, updated.ActivityLevel, "blank input keeps existing enum")

	var count int64
	db.Model(&models.MedicalProfile{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestProfileUpsertRejectsBadMeasurements(t *testing.T) {
	db := testDB(t)
	svc := NewProfileService(db, zap.NewNop())
	person := seedPatient(t, db)

	for _, tc := range []struct{ w, h float64 }{
		{0, 1.6}, {-10, 1.6}, {600, 1.6}, {65, 0}, {65, 3.5},
	} {
		_, err := svc.Upsert(person.ID, tc.w, tc.h, "", "")
		assert.ErrorIs(t, err, ErrInvalidMeasurements)
	}
}

func TestProfileMetrics(t *testing.T) {
	db := testDB(t)
	svc := NewProfileService(db, zap.NewNop())
	person := seedPatient(t, db)

	_, err := svc.Upsert(person.ID, 65, 1.60, "hemodialysis", "moderate")
	require.NoError(t, err)

	metrics, err := svc.Metrics(person.ID)
	require.NoError(t, err)
	require.NotNil(t, metrics.BMI)
	assert.Equal(t, 25.39, *metrics.BMI)
	require.NotNil(t, metrics.BMICategory)
	assert.Equal(t, "overweight", *metrics.BMICategory)
	assert.Equal(t, 1883, metrics.DailyCalories)
	assert.Equal(t, 1800, metrics.CalorieTier)
}

func TestProfileMetricsMissingProfile(t *testing.T) {
	db := testDB(t)
	svc := NewProfileService(db, zap.NewNop())
	person := seedPatient(t, db)

	_, err := svc.Metrics(person.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSuggestPlansMatchesTier(t *testing.T) {
	db := testDB(t)
	svc := NewProfileService(db, zap.NewNop())
	plans := NewMealPlanService(db)
	person := seedPatient(t, db)

	_, err := svc.Upsert(person.ID, 65, 1.60, "hemodialysis", "moderate")
	require.NoError(t, err)

	match := &models.MealPlan{Name: "Plan 1800", Calories: 1800, Sex: models.SexFemale, DialysisType: models.DialysisHemodialysis}
	require.NoError(t, db.Create(match).Error)
	wrongTier := &models.MealPlan{Name: "Plan 1400", Calories: 1400, Sex: models.SexFemale, DialysisType: models.DialysisHemodialysis}
	require.NoError(t, db.Create(wrongTier).Error)
	anySex := &models.MealPlan{Name: "Plan genérico", Calories: 1800, Sex: models.SexUnknown, DialysisType: models.DialysisBoth}
	require.NoError(t, db.Create(anySex).Error)

	got, metrics, err := svc.SuggestPlans(person.ID, plans)
	require.NoError(t, err)
	assert.Equal(t, 1800, metrics.CalorieTier)
	require.Len(t, got, 2)
	names := []string{got[0].Name, got[1].Name}
	assert.Contains(t, names, "Plan 1800")
	assert.Contains(t, names, "Plan genérico")
}
