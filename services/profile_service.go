package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

var ErrInvalidMeasurements = errors.New("weight must be in (0, 500) kg and height in (0, 3) m")

// HealthMetrics is the derived view of a medical profile. BMI and BMICategory
// are null when the stored measurements cannot produce one.
type HealthMetrics struct {
	PersonID      string               `json:"person_id"`
	WeightKg      float64              `json:"weight_kg"`
	HeightM       float64              `json:"height_m"`
	BMI           *float64             `json:"bmi"`
	BMICategory   *string              `json:"bmi_category"`
	DailyCalories int                  `json:"daily_calories"`
	CalorieTier   int                  `json:"calorie_tier"`
	ActivityLevel models.ActivityLevel `json:"activity_level"`
	DialysisType  models.DialysisType  `json:"dialysis_type"`
}

type ProfileService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfileService(db *gorm.DB, logger *zap.Logger) *ProfileService {
	return &ProfileService{db: db, logger: logger}
}

func (s *ProfileService) Get(personID string) (*models.MedicalProfile, error) {
	var p models.MedicalProfile
	if err := s.db.Where("person_id = ?", personID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates or updates the person's one medical profile. Measurements
// outside physiological range are rejected; enum inputs are normalized
// through the parsers so Spanish labels from the app land on canonical
// values.
func (s *ProfileService) Upsert(personID string, weightKg, heightM float64, dialysis, activity string) (*models.MedicalProfile, error) {
	if weightKg <= 0 || weightKg >= 500 || heightM <= 0 || heightM >= 3 {
		return nil, fmt.Errorf("%w: weight=%.2f height=%.2f", ErrInvalidMeasurements, weightKg, heightM)
	}

	var profile models.MedicalProfile
	err := s.db.Where("person_id = ?", personID).First(&profile).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.MedicalProfile{PersonID: personID}
	default:
		return nil, err
	}

	profile.WeightKg = weightKg
	profile.HeightM = heightM
	if dialysis != "" {
		profile.DialysisType = models.ParseDialysisType(dialysis)
	}
	if activity != "" {
		profile.ActivityLevel = models.ParseActivityLevel(activity)
	}
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Metrics computes BMI, category and the renal-adjusted daily calorie target
// (snapped to the plan tier) for a person. A profile with unusable
// measurements still returns the calorie fields; BMI comes back null and the
// cause is logged.
func (s *ProfileService) Metrics(personID string) (*HealthMetrics, error) {
	profile, err := s.Get(personID)
	if err != nil {
		return nil, err
	}
	var person models.Person
	if err := s.db.First(&person, "id = ?", personID).Error; err != nil {
		return nil, err
	}

	metrics := &HealthMetrics{
		PersonID:      personID,
		WeightKg:      profile.WeightKg,
		HeightM:       profile.HeightM,
		ActivityLevel: profile.ActivityLevel,
		DialysisType:  profile.DialysisType,
	}

	if bmi, err := utils.CalculateBMI(profile.WeightKg, profile.HeightM); err != nil {
		s.logger.Warn("BMI not computable",
			zap.String("person_id", personID), zap.Error(err))
	} else {
		category := utils.BMICategory(bmi)
		metrics.BMI = &bmi
		metrics.BMICategory = &category
	}

	metrics.DailyCalories = utils.CalculateDailyCalories(
		profile.WeightKg, profile.HeightM, person.Age,
		string(person.Sex), string(profile.ActivityLevel),
		true, false)
	metrics.CalorieTier = utils.CalculateDailyCalories(
		profile.WeightKg, profile.HeightM, person.Age,
		string(person.Sex), string(profile.ActivityLevel),
		true, true)
	return metrics, nil
}

// SuggestPlans pairs Metrics with the plan catalog: plans whose calorie
// tier, dialysis modality and sex match the patient.
func (s *ProfileService) SuggestPlans(personID string, plans *MealPlanService) ([]models.MealPlan, *HealthMetrics, error) {
	metrics, err := s.Metrics(personID)
	if err != nil {
		return nil, nil, err
	}
	var person models.Person
	if err := s.db.First(&person, "id = ?", personID).Error; err != nil {
		return nil, nil, err
	}
	matched, err := plans.FindForProfile(metrics.CalorieTier, metrics.DialysisType, person.Sex)
	if err != nil {
		return nil, nil, err
	}
	return matched, metrics, nil
}
