package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicoiwnl/NutriRenal/models"
)

func TestLevenshteinScorer(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinScorer("arroz", "Arroz"), "case-insensitive exact match")
	assert.Equal(t, 0.0, LevenshteinScorer("", ""))
	assert.InDelta(t, 0.8, LevenshteinScorer("arroz", "arros"), 0.001)
}

func TestFoodMatcherExactBeforePartial(t *testing.T) {
	db := testDB(t)
	seedFood(t, db, "Arroz", 130, 1, 35, 43)
	seedFood(t, db, "Arroz integral", 111, 5, 86, 83)

	got, err := NewFoodMatcher(db).Search("arroz")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Arroz", got[0].Name)
}

func TestFoodMatcherPartial(t *testing.T) {
	db := testDB(t)
	seedFood(t, db, "Arroz integral", 111, 5, 86, 83)
	seedFood(t, db, "Pan integral", 247, 400, 230, 212)

	got, err := NewFoodMatcher(db).Search("integral")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFoodMatcherFuzzy(t *testing.T) {
	db := testDB(t)
	seedFood(t, db, "Platano", 89, 1, 358, 22)
	seedFood(t, db, "Queso fresco", 264, 627, 105, 337)

	// typo with no exact or substring hit; similarity 6/7 ≈ 0.857
	got, err := NewFoodMatcher(db).Search("pletano")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Platano", got[0].Name)
}

func TestFoodMatcherBelowThreshold(t *testing.T) {
	db := testDB(t)
	seedFood(t, db, "Platano", 89, 1, 358, 22)

	got, err := NewFoodMatcher(db).Search("zzzzzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFoodMatcherIgnoresFoodCreatedInactive(t *testing.T) {
	db := testDB(t)
	// explicit false must survive Create, not be swallowed by a column default
	food := &models.FoodItem{Name: "Platano", Active: false}
	require.NoError(t, db.Create(food).Error)

	var stored models.FoodItem
	require.NoError(t, db.First(&stored, "id = ?", food.ID).Error)
	assert.False(t, stored.Active)

	got, err := NewFoodMatcher(db).Search("Platano")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFoodMatcherIgnoresInactive(t *testing.T) {
	db := testDB(t)
	food := seedFood(t, db, "Platano", 89, 1, 358, 22)
	require.NoError(t, db.Model(food).Update("active", false).Error)

	got, err := NewFoodMatcher(db).Search("Platano")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFoodMatcherEmptyQuery(t *testing.T) {
	db := testDB(t)
	got, err := NewFoodMatcher(db).Search("   ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFoodMatcherCustomScorer(t *testing.T) {
	db := testDB(t)
	seedFood(t, db, "Platano", 89, 1, 358, 22)

	// scorer that matches everything: fuzzy stage returns the whole catalog
	m := NewFoodMatcher(db).WithScorer(func(q, c string) float64 { return 1 })
	got, err := m.Search("nomatch")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
