// Package validator wraps go-playground/validator behind echo's Validator
// interface.
package validator

import (
	"reflect"
	"strings"

	domainerrors "cardlink/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator. Field names in error messages come from the
// JSON tags of the bound struct, not the Go field names.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate implements echo.Validator. Rule violations surface as a
// validation error carrying per-field details.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fe.Field()+" failed on '"+fe.Tag()+"'")
			}

			return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
		}

		return err
	}

	return nil
}
