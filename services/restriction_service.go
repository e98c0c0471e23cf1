package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

var ErrInvalidBound = errors.New("bound minimum exceeds maximum")

// RestrictionService manages named nutrient-bound sets and flattens them
// into the shape the evaluation engine consumes.
type RestrictionService struct {
	db *gorm.DB
}

func NewRestrictionService(db *gorm.DB) *RestrictionService {
	return &RestrictionService{db: db}
}

func (s *RestrictionService) List() ([]models.DietaryRestriction, error) {
	var out []models.DietaryRestriction
	err := s.db.Preload("Bounds.Nutrient").Find(&out).Error
	return out, err
}

func (s *RestrictionService) Get(id uint) (*models.DietaryRestriction, error) {
	var r models.DietaryRestriction
	if err := s.db.Preload("Bounds.Nutrient").First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RestrictionService) GetByName(name string) (*models.DietaryRestriction, error) {
	var r models.DietaryRestriction
	if err := s.db.Preload("Bounds.Nutrient").
		Where("name = ?", name).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RestrictionService) Create(name, description string) (*models.DietaryRestriction, error) {
	r := &models.DietaryRestriction{Name: name, Description: description}
	if err := s.db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// SetBound adds or replaces the bound for one nutrient of a restriction.
// min <= max is enforced here so stored bounds are always resolvable.
func (s *RestrictionService) SetBound(restrictionID uint, nutrientCode string, min, max *float64) (*models.RestrictionBound, error) {
	if min != nil && max != nil && *min > *max {
		return nil, fmt.Errorf("%w: %s min=%v max=%v", ErrInvalidBound, nutrientCode, *min, *max)
	}
	var nutrient models.Nutrient
	if err := s.db.Where("code = ?", nutrientCode).First(&nutrient).Error; err != nil {
		return nil, fmt.Errorf("unknown nutrient %q: %w", nutrientCode, err)
	}

	var bound models.RestrictionBound
	err := s.db.Where("restriction_id = ? AND nutrient_id = ?", restrictionID, nutrient.ID).
		First(&bound).Error
	switch {
	case err == nil:
		bound.MinValue = min
		bound.MaxValue = max
		if err := s.db.Save(&bound).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		bound = models.RestrictionBound{
			RestrictionID: restrictionID,
			NutrientID:    nutrient.ID,
			MinValue:      min,
			MaxValue:      max,
		}
		if err := s.db.Create(&bound).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	bound.Nutrient = &nutrient
	return &bound, nil
}

// BoundsFor flattens the persisted rows of one restriction into evaluation
// bounds. Rows whose nutrient row is gone are dropped rather than evaluated
// against an empty code.
func (s *RestrictionService) BoundsFor(restrictionID uint) ([]utils.Bound, error) {
	var rows []models.RestrictionBound
	if err := s.db.Preload("Nutrient").
		Where("restriction_id = ?", restrictionID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return FlattenBounds(rows), nil
}

// BoundsUnion merges the bounds of several restrictions. When two
// restrictions bound the same nutrient the stricter side wins: highest min,
// lowest max.
func (s *RestrictionService) BoundsUnion(restrictionIDs []uint) ([]utils.Bound, error) {
	if len(restrictionIDs) == 0 {
		return nil, nil
	}
	var rows []models.RestrictionBound
	if err := s.db.Preload("Nutrient").
		Where("restriction_id IN ?", restrictionIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	merged := make(map[string]*utils.Bound)
	var order []string
	for _, b := range FlattenBounds(rows) {
		cur, ok := merged[b.Code]
		if !ok {
			bb := b
			merged[b.Code] = &bb
			order = append(order, b.Code)
			continue
		}
		if b.Min != nil && (cur.Min == nil || *b.Min > *cur.Min) {
			cur.Min = b.Min
		}
		if b.Max != nil && (cur.Max == nil || *b.Max < *cur.Max) {
			cur.Max = b.Max
		}
	}
	out := make([]utils.Bound, 0, len(order))
	for _, code := range order {
		out = append(out, *merged[code])
	}
	return out, nil
}

func FlattenBounds(rows []models.RestrictionBound) []utils.Bound {
	out := make([]utils.Bound, 0, len(rows))
	for _, row := range rows {
		if row.Nutrient == nil {
			continue
		}
		out = append(out, utils.Bound{
			Code: row.Nutrient.Code,
			Name: row.Nutrient.Name,
			Unit: row.Nutrient.Unit,
			Min:  row.MinValue,
			Max:  row.MaxValue,
		})
	}
	return out
}
