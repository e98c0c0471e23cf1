package models

import "time"

type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PersonID  string    `gorm:"type:varchar(36);index" json:"person_id"`
	Type      string    `gorm:"size:20" json:"type"` // "warning" | "info"
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
