package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9\s\-]{10,}$`)
)

func init() {
	validate = validator.New()

	// Register custom validators
	validate.RegisterValidation("coordinates", validateCoordinates)
	validate.RegisterValidation("geofence_radius", validateGeofenceRadius)
	validate.RegisterValidation("rating", validateRating)
	validate.RegisterValidation("plan", validatePlan)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts digits, spaces and dashes, at least 10 characters.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func validateCoordinates(fl validator.FieldLevel) bool {
	coords, ok := fl.Field().Interface().([]float64)
	if !ok || len(coords) != 2 {
		return false
	}
	return IsValidCoordinates(coords[1], coords[0])
}

func validateGeofenceRadius(fl validator.FieldLevel) bool {
	return fl.Field().Float() >= MinGeofenceRadius
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= MinReviewRating && rating <= MaxReviewRating
}

func validatePlan(fl validator.FieldLevel) bool {
	plan := fl.Field().String()
	return plan == PlanBasic || plan == PlanPlus
}
