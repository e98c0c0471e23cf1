package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageAnalysisResult is written once per analysis request and never
// mutated. It stores the normalized verdict alongside the raw model output
// so a result can always be re-audited.
type ImageAnalysisResult struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PersonID   string    `gorm:"type:varchar(36);index;not null" json:"person_id"`
	Person     *Person   `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
	ImageURL   string    `gorm:"size:255" json:"image_url"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Summary name built from the detected-item list.
	Name string `gorm:"type:text" json:"name"`

	// Normalized totals as estimated by the vision model.
	Energy     float64 `json:"energy"`
	Sodium     float64 `json:"sodium"`
	Potassium  float64 `json:"potassium"`
	Phosphorus float64 `json:"phosphorus"`
	Protein    float64 `json:"protein"`

	Recommendation  string `gorm:"type:text" json:"recommendation"`
	RenalCompatible bool   `json:"renal_compatible"`
	Failed          bool   `json:"failed"`
	RawResult       string `gorm:"type:text" json:"raw_result"`

	// Catalog foods matched against the detected labels.
	MatchedFoods []FoodItem `gorm:"many2many:image_analysis_foods" json:"matched_foods,omitempty"`
}

func (r *ImageAnalysisResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now()
	}
	return nil
}
