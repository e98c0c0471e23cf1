package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodLogEntry records one consumption event. Immutable after creation
// except for the free-text notes.
type FoodLogEntry struct {
	ID         string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	PersonID   string           `gorm:"type:varchar(36);index;not null" json:"person_id"`
	Person     *Person          `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
	FoodItemID *string          `gorm:"type:varchar(36)" json:"food_item_id,omitempty"`
	FoodItem   *FoodItem        `gorm:"foreignKey:FoodItemID;constraint:OnDelete:SET NULL" json:"food_item,omitempty"`
	UnitID     *uint            `json:"unit_id,omitempty"`
	Unit       *MeasurementUnit `gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL" json:"unit,omitempty"`
	Quantity   float64          `json:"quantity"`
	ConsumedAt time.Time        `gorm:"index" json:"consumed_at"`
	Notes      string           `gorm:"type:text" json:"notes"`
}

func (e *FoodLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ConsumedAt.IsZero() {
		e.ConsumedAt = time.Now()
	}
	return nil
}
