package accounts

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected before any network call.
var ErrValidation = errors.New("validation failed")

func validateInput(in Input) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email must not be empty", ErrValidation)
	}
	if in.TaxID == "" {
		return fmt.Errorf("%w: tax id must not be empty", ErrValidation)
	}
	return nil
}
