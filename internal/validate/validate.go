package validate

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.RegisterValidation(
		"noAllRepeatingChars",
		noAllRepeatingChars,
	)
	if err != nil {
		log.Fatalf("failed to register 'noAllRepeatingChars' validation: %v", err)
	}

	return v
}

// FieldErrors maps a failing field to a human readable message. It is an
// error so services and handlers can pass it around, and a plain map so it
// marshals cleanly into the error response body.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}

	return strings.Join(parts, "; ")
}

// StructFields validates every tagged field of payload and returns a
// [FieldErrors] describing all failures, or nil when payload is valid.
func StructFields(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrs[fieldErr.Field()] = messageForTag(fieldErr)
	}

	return fieldErrs
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid url"
	case "min":
		return fmt.Sprintf("must be at least %s characters or greater", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters or less", fieldErr.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "noAllRepeatingChars":
		return "must not be a single repeated character"
	default:
		return fmt.Sprintf("failed '%s' validation", fieldErr.Tag())
	}
}

// noAllRepeatingChars rejects values like "aaaaaaaaaa" that satisfy length
// rules without carrying any information.
func noAllRepeatingChars(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	first := rune(0)
	for i, r := range value {
		if i == 0 {
			first = r
			continue
		}

		if r != first {
			return true
		}
	}

	return len(value) <= 1
}
