package console

import (
	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// RegisterInput is the validated registration form.
type RegisterInput struct {
	Username   string `validate:"required,max=100"`
	Credential string `validate:"required"`
	Role       string `validate:"required,oneof=admin staff"`
}

// LoginInput is the validated login form.
type LoginInput struct {
	Username   string `validate:"required"`
	Credential string `validate:"required"`
}

// AddProductInput is the validated add-product form. Price and stock carry no
// range constraints on purpose: negative values are accepted as-is, matching
// the documented behavior.
type AddProductInput struct {
	Name        string `validate:"required,max=255"`
	Description string
}

// PostInput is the validated posting form.
type PostInput struct {
	ProductID int `validate:"gt=0"`
	Quantity  int `validate:"gt=0"`
}

// ValidateInput validates a form struct against its validation tags
func ValidateInput(v interface{}) error {
	return validate.Struct(v)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string
	Message string
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errs
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long"
	case "oneof":
		return "Value must be one of: " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	default:
		return "Invalid value"
	}
}
