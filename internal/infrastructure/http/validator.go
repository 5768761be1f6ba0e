package http

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface and converts failures into field-level validation errors.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the request validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validationf("Invalid request body")
	}
	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		fields[fe.Field()] = fe.Tag()
	}
	return apperrors.ValidationFields("Validation failed", fields)
}
