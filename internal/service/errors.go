package service

import "errors"

// ErrValidation marks input the caller can fix; handlers map it to 400
var ErrValidation = errors.New("validation failed")

// IsValidation reports whether err belongs to the validation error class
// rather than not-found or an internal failure
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrEmptyItems,
		ErrInvalidQuantity,
		ErrUnknownMenuItem,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
