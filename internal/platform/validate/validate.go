// Package validate exposes a shared struct validator for request DTOs.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates tags on the given DTO and wraps failures as
// httpx.ErrValidation so handlers map them to 400.
func Struct(target any) error {
	if err := v.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return nil
}
