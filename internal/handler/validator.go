package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for pillars and stat periods
	_ = v.RegisterValidation("pillar", validatePillar)
	_ = v.RegisterValidation("period", validatePeriod)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "pillar":
			errs[field] = "Invalid pillar"
		case "period":
			errs[field] = "Invalid period"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validatePillar accepts the three pillar names; empty passes so optional
// fields stay optional (pair with 'required' when the field must be set)
func validatePillar(fl validator.FieldLevel) bool {
	pillar := fl.Field().String()
	if pillar == "" {
		return true
	}
	return domain.Pillar(strings.ToLower(pillar)).Valid()
}

// validatePeriod accepts the stats period names, empty included
func validatePeriod(fl validator.FieldLevel) bool {
	period := fl.Field().String()
	if period == "" {
		return true
	}
	return domain.IsValidPeriod(strings.ToLower(period))
}
