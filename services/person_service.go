package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nicoiwnl/NutriRenal/config"
	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

type PersonInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BirthDate      string `json:"birth_date"` // sent as YYYY-MM-DD
	Sex            string `json:"sex"`
	ProfilePicture string `json:"profile_picture"` // base64 data URI
}

func GetPersonProfile(personID string) (map[string]interface{}, error) {
	var person models.Person
	if err := config.DB.First(&person, "id = ? AND active = ?", personID, true).Error; err != nil {
		return nil, errors.New("person not found")
	}

	out := map[string]interface{}{
		"id":              person.ID,
		"first_name":      person.FirstName,
		"last_name":       person.LastName,
		"birth_date":      person.BirthDate.Format("2006-01-02"),
		"age":             person.Age,
		"sex":             person.Sex,
		"profile_picture": person.ProfilePicture,
	}

	var profile models.MedicalProfile
	if err := config.DB.Where("person_id = ?", personID).First(&profile).Error; err == nil {
		out["weight_kg"] = profile.WeightKg
		out["height_m"] = profile.HeightM
		out["dialysis_type"] = profile.DialysisType
		out["activity_level"] = profile.ActivityLevel
	}
	return out, nil
}

func UpdatePersonProfile(personID string, input PersonInput) error {
	var person models.Person
	if err := config.DB.First(&person, "id = ? AND active = ?", personID, true).Error; err != nil {
		return errors.New("person not found")
	}

	if input.FirstName != "" {
		person.FirstName = input.FirstName
	}
	if input.LastName != "" {
		person.LastName = input.LastName
	}
	if input.BirthDate != "" {
		if birth, err := time.Parse("2006-01-02", input.BirthDate); err == nil {
			person.BirthDate = birth
		}
	}
	if input.Sex != "" {
		person.Sex = models.ParseSex(input.Sex)
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64Image(input.ProfilePicture, "profile-pictures/"+person.ID)
		if err != nil {
			return fmt.Errorf("failed to upload profile picture: %w", err)
		}
		person.ProfilePicture = url
	}

	return config.DB.Save(&person).Error
}

// DeactivatePerson soft-deletes: the person and their credentials are
// disabled, records stay for linked caregivers.
func DeactivatePerson(personID string) error {
	if err := config.DB.Model(&models.Person{}).
		Where("id = ?", personID).
		Update("active", false).Error; err != nil {
		return err
	}
	return config.DB.Model(&models.User{}).
		Where("person_id = ?", personID).
		Update("disabled", true).Error
}

// LinkCaregiver pairs a caregiver with a patient. The unique index on
// (patient, caregiver) makes repeat links idempotent failures.
func LinkCaregiver(patientID, caregiverID string) (*models.CaregiverLink, error) {
	if patientID == caregiverID {
		return nil, errors.New("cannot link a person to themselves")
	}
	for _, id := range []string{patientID, caregiverID} {
		var person models.Person
		if err := config.DB.First(&person, "id = ? AND active = ?", id, true).Error; err != nil {
			return nil, fmt.Errorf("person %s not found", id)
		}
	}

	link := &models.CaregiverLink{PatientID: patientID, CaregiverID: caregiverID}
	if err := config.DB.Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func UnlinkCaregiver(patientID, caregiverID string) error {
	res := config.DB.
		Where("patient_id = ? AND caregiver_id = ?", patientID, caregiverID).
		Delete(&models.CaregiverLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("link not found")
	}
	return nil
}

// ListPatients returns the people a caregiver is linked to.
func ListPatients(caregiverID string) ([]models.CaregiverLink, error) {
	var links []models.CaregiverLink
	err := config.DB.Preload("Patient").
		Where("caregiver_id = ?", caregiverID).
		Find(&links).Error
	return links, err
}

// ListCaregivers returns the caregivers watching a patient.
func ListCaregivers(patientID string) ([]models.CaregiverLink, error) {
	var links []models.CaregiverLink
	err := config.DB.Preload("Caregiver").
		Where("patient_id = ?", patientID).
		Find(&links).Error
	return links, err
}

// IsCaregiverOf reports whether caregiverID may read patientID's records.
func IsCaregiverOf(caregiverID, patientID string) bool {
	var count int64
	config.DB.Model(&models.CaregiverLink{}).
		Where("patient_id = ? AND caregiver_id = ?", patientID, caregiverID).
		Count(&count)
	return count > 0
}
