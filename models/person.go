package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sex is stored as a closed variant; free-text input from older clients is
// funneled through ParseSex so the calculator never sees raw strings.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// ParseSex accepts the English and Spanish spellings the mobile app has
// historically sent.
func ParseSex(s string) Sex {
	switch normalizeEnum(s) {
	case "male", "masculino", "m":
		return SexMale
	case "female", "femenino", "f":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Person is a patient or caregiver. Age is derived from BirthDate and
// refreshed on every save; it is never written directly.
type Person struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName      string    `gorm:"size:200;not null" json:"first_name"`
	LastName       string    `gorm:"size:200" json:"last_name"`
	ProfilePicture string    `gorm:"size:255" json:"profile_picture"`
	BirthDate      time.Time `json:"birth_date"`
	Age            int       `json:"age"`
	Sex            Sex       `gorm:"size:50;default:unknown" json:"sex"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave recomputes the derived age whenever the row is written, so a
// birth-date correction can never leave a stale age behind.
func (p *Person) BeforeSave(tx *gorm.DB) error {
	if !p.BirthDate.IsZero() {
		p.Age = AgeAt(p.BirthDate, time.Now())
	}
	return nil
}

// AgeAt returns whole years between birth and ref, never negative.
func AgeAt(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
