// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	"saferoute/internal/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that also validates required nested structs.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: validate}
}

// Validate validates i against its `validate` struct tags.
func (v *CustomValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// FieldError describes one failed rule on one request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Details flattens validation errors into per-field entries. Errors that did
// not come from the validator yield nil.
func Details(err error) []FieldError {
	validationErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return nil
	}

	details := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		// Drop the request struct name from the namespace.
		_, field, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			field = fe.Field()
		}

		details = append(details, FieldError{
			Field: field,
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return details
}
