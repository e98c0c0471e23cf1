package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaregiverLink lets a caregiver account see a patient's records and
// receive alerts for them.
type CaregiverLink struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PatientID   string    `gorm:"type:varchar(36);index:idx_patient_caregiver,unique;not null" json:"patient_id"`
	Patient     *Person   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	CaregiverID string    `gorm:"type:varchar(36);index:idx_patient_caregiver,unique;not null" json:"caregiver_id"`
	Caregiver   *Person   `gorm:"foreignKey:CaregiverID;constraint:OnDelete:CASCADE" json:"caregiver,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *CaregiverLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
