package services

import (
	"errors"
	"time"

	"github.com/nicoiwnl/NutriRenal/config"
	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"` // sent as YYYY-MM-DD
	Sex       string `json:"sex"`
}

// RegisterUser creates the person record and the credentials row in one
// transaction, then issues a session token.
func RegisterUser(input RegisterInput) (string, error) {
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	person := models.Person{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Sex:       models.ParseSex(input.Sex),
		Active:    true,
	}
	if input.BirthDate != "" {
		if birth, err := time.Parse("2006-01-02", input.BirthDate); err == nil {
			person.BirthDate = birth
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&person).Error; err != nil {
			return err
		}
		user := models.User{
			Email:    input.Email,
			Password: hashedPassword,
			PersonID: &person.ID,
			Disabled: false,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return "", err
	}

	return utils.GenerateJWT(input.Email, person.ID)
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	personID := ""
	if user.PersonID != nil {
		personID = *user.PersonID
	}
	return utils.GenerateJWT(user.Email, personID)
}

// ForgotPassword issues a short-lived reset code and emails it. To avoid
// account enumeration the caller reports success regardless; an unknown
// email is still an error here so the controller can log it.
func ForgotPassword(email string) error {
	var user models.User
	if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	token := utils.GenerateRandomToken(6)
	expires := time.Now().Add(15 * time.Minute)
	user.ResetToken = token
	user.ResetExpires = &expires
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, token)
}

func ResetPassword(email, token, newPassword string) error {
	var user models.User
	if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}
	if user.ResetToken == "" || user.ResetToken != token {
		return errors.New("invalid reset code")
	}
	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		return errors.New("reset code expired")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetExpires = nil
	return config.DB.Save(&user).Error
}
