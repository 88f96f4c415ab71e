// Package validate wraps struct validation and turns tag failures into the
// inline messages forms surface to the user.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/shop-smart/storefront-client/internal/errors"
)

var validate = validator.New()

// Struct validates data against its tags. Failures come back as a single
// ValidationError whose message lists every offending field; no network call
// should ever be made after it.
func Struct(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.ValidationError("Invalid input data").WithError(err)
	}

	messages := make([]string, 0, len(validationErrs))

	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldMessage(fieldErr))
	}

	return apperrors.ValidationError(strings.Join(messages, "; ")).WithError(err)
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", err.Field())
	case "email":
		return fmt.Sprintf("Field %s must be a valid email address", err.Field())
	case "min":
		return fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("Field %s must be one of: %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
	}
}
