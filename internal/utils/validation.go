package utils

import (
	"strings"
	"unicode"

	"gotours/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("tour_name", validateTourName)
	validate.RegisterValidation("difficulty", validateDifficulty)
	validate.RegisterValidation("role", validateRole)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateTourName allows letters and spaces only.
func validateTourName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func validateDifficulty(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "easy", "medium", "difficult":
		return true
	}
	return false
}

func validateRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleUser, models.RoleGuide, models.RoleLeadGuide, models.RoleAdmin:
		return true
	}
	return false
}

// NormalizeEmail lowercases and trims an email address before storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
