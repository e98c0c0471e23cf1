package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nicoiwnl/NutriRenal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Person{},
		&models.MedicalProfile{},
		&models.FoodCategory{},
		&models.FoodItem{},
		&models.MeasurementUnit{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.MealType{},
		&models.MealPlan{},
		&models.MealPlanDetail{},
		&models.MealPlanAssignment{},
		&models.MealPlanRestriction{},
		&models.Nutrient{},
		&models.DietaryRestriction{},
		&models.RestrictionBound{},
		&models.FoodLogEntry{},
		&models.ImageAnalysisResult{},
	))
	return db
}

func seedFood(t *testing.T, db *gorm.DB, name string, energy, sodium, potassium, phosphorus float64) *models.FoodItem {
	t.Helper()
	food := &models.FoodItem{
		Name:       name,
		Energy:     energy,
		Sodium:     sodium,
		Potassium:  potassium,
		Phosphorus: phosphorus,
		Active:     true,
	}
	require.NoError(t, db.Create(food).Error)
	return food
}

func seedUnit(t *testing.T, db *gorm.DB, name string, gEquivalence float64) *models.MeasurementUnit {
	t.Helper()
	unit := &models.MeasurementUnit{Name: name, GEquivalence: gEquivalence, IsVolume: false}
	require.NoError(t, db.Create(unit).Error)
	return unit
}
