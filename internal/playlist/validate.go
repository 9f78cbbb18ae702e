package playlist

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected before any network call. No partial
// submission is ever sent for an invalid draft or patch.
var ErrValidation = errors.New("validation failed")

func validateDraft(d Draft) error {
	if d.Key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrValidation)
	}
	if d.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of seconds", ErrValidation)
	}
	if d.SourceURL == "" {
		return fmt.Errorf("%w: source url must not be empty", ErrValidation)
	}
	return nil
}

func validatePatch(p Patch) error {
	if p.Key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrValidation)
	}
	if p.FileName == "" {
		return fmt.Errorf("%w: file name must not be empty", ErrValidation)
	}
	if p.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of seconds", ErrValidation)
	}
	return nil
}
