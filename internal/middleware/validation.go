package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/edudesk/edudesk/internal/app/models/dto"
)

// BindingErrorDetail converts a gin binding failure into the standard
// validation error detail. Field-level validator errors become readable
// per-field messages; anything else carries the raw error text.
func BindingErrorDetail(message string, err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, formatFieldError(fe))
		}
		return detail.WithDetails(messages)
	}
	return detail.WithDetails(err.Error())
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " failed " + e.Tag() + " validation"
	}
}
