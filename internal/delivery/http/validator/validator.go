// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "vidtube/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator validates request DTOs via struct tags.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the validator used by the echo server.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Failures surface as the domain's
// validation error so the error middleware maps them to 400.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
