package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DialysisType string

const (
	DialysisHemodialysis DialysisType = "hemodialysis"
	DialysisPeritoneal   DialysisType = "peritoneal"
	DialysisBoth         DialysisType = "both"
)

func ParseDialysisType(s string) DialysisType {
	switch normalizeEnum(s) {
	case "hemodialysis", "hemodialisis":
		return DialysisHemodialysis
	case "peritoneal", "dialisis_peritoneal", "dialisis peritoneal":
		return DialysisPeritoneal
	case "both", "ambas":
		return DialysisBoth
	default:
		return DialysisHemodialysis
	}
}

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
	ActivityVeryHigh  ActivityLevel = "very_high"
	ActivityUnknown   ActivityLevel = "unknown"
)

func ParseActivityLevel(s string) ActivityLevel {
	switch normalizeEnum(s) {
	case "sedentary", "sedentario":
		return ActivitySedentary
	case "light", "ligera":
		return ActivityLight
	case "moderate", "moderada":
		return ActivityModerate
	case "high", "alta":
		return ActivityHigh
	case "very_high", "very high", "muy alta":
		return ActivityVeryHigh
	default:
		return ActivityUnknown
	}
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MedicalProfile is the one-to-one anthropometric record backing the BMI and
// calorie calculations. Weight is kilograms, height is meters.
type MedicalProfile struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	PersonID      string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"person_id"`
	Person        *Person       `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	WeightKg      float64       `json:"weight_kg"`
	HeightM       float64       `json:"height_m"`
	DialysisType  DialysisType  `gorm:"size:50;default:hemodialysis" json:"dialysis_type"`
	ActivityLevel ActivityLevel `gorm:"size:50;default:sedentary" json:"activity_level"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (m *MedicalProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
