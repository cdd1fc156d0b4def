package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/emirhan/coursehub/internal/pkg/validation"
)

// RegisterCustomValidators installs the application's custom binding tags on
// gin's validator engine. Must be called once before the router handles
// requests.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return validation.IsValidCourseCode(fl.Field().String())
	})
}

// FormatValidationError creates a human-readable validation error message
func FormatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "coursecode":
		return e.Field() + " must be a valid course code like CS101"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
