package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "leetcoach/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	// Code submissions are capped at 10000 characters, well under this.
	MaxBodySize = 64 * 1024
)

// String length limits, counted in characters.
const (
	MaxUserInputLength  = 1000
	MaxIdeaLength       = 2000
	MaxCodeLength       = 10000
	MaxComplexityLength = 100
	MaxCaptchaAnswer    = 32
)

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.NewValidation(
			fmt.Sprintf("%s exceeds max length of %d", fieldName, max),
			map[string]string{fieldName: fmt.Sprintf("%s must be at most %d characters", fieldName, max)},
		)
	}
	return nil
}

// CheckOptionalLength is CheckStringLength for optional fields.
func CheckOptionalLength(fieldName string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return CheckStringLength(fieldName, *value, max)
}
