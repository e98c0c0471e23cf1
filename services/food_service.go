package services

import (
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
)

// FoodService is the catalog surface: food items, categories and
// measurement units, plus name search and per-quantity nutrient previews.
type FoodService struct {
	db      *gorm.DB
	matcher *FoodMatcher
}

// NutritionPreview scales one food to a consumed quantity without logging
// anything; the app shows it before the user confirms.
type NutritionPreview struct {
	FoodItemID string         `json:"food_item_id"`
	Name       string         `json:"name"`
	Quantity   float64        `json:"quantity"`
	UnitID     *uint          `json:"unit_id,omitempty"`
	Totals     NutrientTotals `json:"totals"`
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db, matcher: NewFoodMatcher(db)}
}

// Search resolves a name to catalog entries: exact, then substring, then
// fuzzy.
func (s *FoodService) Search(query string) ([]models.FoodItem, error) {
	return s.matcher.Search(query)
}

func (s *FoodService) Get(id string) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.First(&food, "id = ? AND active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) ListByCategory(categoryID uint) ([]models.FoodItem, error) {
	var out []models.FoodItem
	err := s.db.Where("category_id = ? AND active = ?", categoryID, true).Find(&out).Error
	return out, err
}

func (s *FoodService) Categories() ([]models.FoodCategory, error) {
	var out []models.FoodCategory
	err := s.db.Order("name").Find(&out).Error
	return out, err
}

func (s *FoodService) Units() ([]models.MeasurementUnit, error) {
	var out []models.MeasurementUnit
	err := s.db.Order("name").Find(&out).Error
	return out, err
}

// Preview scales a food to a quantity in the given unit; a nil unit id
// means the quantity is in hundredths of the reference denomination.
func (s *FoodService) Preview(foodID string, quantity float64, unitID *uint) (*NutritionPreview, error) {
	food, err := s.Get(foodID)
	if err != nil {
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
	totals, err := TotalsForQuantity(food, quantity, unit)
	if err != nil {
		return nil, err
	}
	return &NutritionPreview{
		FoodItemID: food.ID,
		Name:       food.Name,
		Quantity:   quantity,
		UnitID:     unitID,
		Totals:     totals.Rounded(),
	}, nil
}
