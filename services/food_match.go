package services

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

// Scorer returns a similarity in [0,1] between a query and a candidate
// name. The matcher accepts any implementation so the scoring backend can
// be swapped without touching lookup logic.
type Scorer func(query, candidate string) float64

// LevenshteinScorer is the default: normalized edit distance.
func LevenshteinScorer(query, candidate string) float64 {
	a := strings.ToLower(query)
	b := strings.ToLower(candidate)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// FoodMatcher resolves a food name (typically a label detected by the
// vision model) to catalog entries: exact match first, then substring, then
// fuzzy scoring with a similarity floor.
type FoodMatcher struct {
	db         *gorm.DB
	scorer     Scorer
	threshold  float64
	maxResults int
}

func NewFoodMatcher(db *gorm.DB) *FoodMatcher {
	return &FoodMatcher{
		db:         db,
		scorer:     LevenshteinScorer,
		threshold:  0.75,
		maxResults: 5,
	}
}

// WithScorer swaps the similarity backend.
func (m *FoodMatcher) WithScorer(s Scorer) *FoodMatcher {
	m.scorer = s
	return m
}

func (m *FoodMatcher) Search(name string) ([]models.FoodItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var exact []models.FoodItem
	if err := m.db.
		Where("LOWER(name) = ? AND active = ?", strings.ToLower(name), true).
		Find(&exact).Error; err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}

	var partial []models.FoodItem
	if err := m.db.
		Where("LOWER(name) LIKE ? AND active = ?", "%"+strings.ToLower(name)+"%", true).
		Limit(10).
		Find(&partial).Error; err != nil {
		return nil, err
	}
	if len(partial) > 0 {
		return partial, nil
	}

	return m.fuzzy(name)
}

type scoredFood struct {
	food  models.FoodItem
	score float64
}

func (m *FoodMatcher) fuzzy(name string) ([]models.FoodItem, error) {
	var all []models.FoodItem
	if err := m.db.Where("active = ?", true).Find(&all).Error; err != nil {
		return nil, err
	}

	var hits []scoredFood
	for _, f := range all {
		if s := m.scorer(name, f.Name); s >= m.threshold {
			hits = append(hits, scoredFood{food: f, score: s})
		}
	}
	// insertion sort by score desc; candidate lists are tiny
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].score > hits[j-1].score; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	if len(hits) > m.maxResults {
		hits = hits[:m.maxResults]
	}
	out := make([]models.FoodItem, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.food)
	}
	return out, nil
}
