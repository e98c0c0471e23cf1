package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds login credentials. Everything about the human behind the
// account lives on Person; a credentials row may exist before the person
// record is linked (registration happens in two steps on the app side).
type User struct {
	gorm.Model
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	PersonID *string `gorm:"type:varchar(36);index" json:"person_id,omitempty"`
	Person   *Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Disabled bool    `gorm:"default:false" json:"disabled"`

	// Password reset flow
	ResetToken   string     `gorm:"size:64" json:"-"`
	ResetExpires *time.Time `json:"-"`
}
