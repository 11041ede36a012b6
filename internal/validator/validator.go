package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired       = "is required"
	ErrMinValue       = "must be at least %s"
	ErrMaxValue       = "must be at most %s"
	ErrOneOf          = "must be one of: %s"
	ErrCurrency       = "must be a three letter ISO 4217 currency code"
	ErrDefaultInvalid = "is invalid"
)

var currencyRgx = regexp.MustCompile(`^[a-z]{3}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("currency", validateCurrency)

	return validator
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min", "gte":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "oneof":
		return fmt.Sprintf(ErrOneOf, strings.ReplaceAll(err.Param(), " ", ", "))
	case "currency":
		return ErrCurrency
	default:
		return ErrDefaultInvalid
	}
}

// Describe flattens a validation error into one line per field.
func Describe(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	issues := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		issues = append(issues, fmt.Sprintf("%s %s", fieldErr.Namespace(), ValidationMessage(fieldErr)))
	}

	return strings.Join(issues, "; ")
}
