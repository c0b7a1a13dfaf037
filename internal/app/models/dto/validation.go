package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var semesterPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]{0,19}$`)

// RegisterValidators adds the custom binding tags used by the request DTOs
func RegisterValidators(v *validator.Validate) error {
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	return v.RegisterValidation("semester", func(fl validator.FieldLevel) bool {
		return semesterPattern.MatchString(fl.Field().String())
	})
}

// HandleValidationError converts a binding error into an error detail with one entry per field
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	fields := NewValidationErrors()
	for _, fe := range verrs {
		fields.AddError(jsonField(fe), formatValidationError(fe))
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields.Errors)
	if len(fields.Errors) == 1 {
		detail.Message = fields.Errors[0].Message
		detail.Field = fields.Errors[0].Field
	}
	return detail
}

func jsonField(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonField(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "lte":
		return field + " must be at most " + e.Param()
	case "gte":
		return field + " must be at least " + e.Param()
	case "url":
		return field + " must be a valid URL"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "semester":
		return field + " must be a term label such as FALL or SPRING"
	case "datetime":
		return field + " must be a date formatted as " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}
