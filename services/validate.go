package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct wraps validator failures in ErrValidationFailed so handlers
// can map every input problem to 422 without inspecting tag details.
func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: field %s failed on the %s rule", ErrValidationFailed, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}
