package rate

import (
	"errors"
	"regexp"
)

var (
	ErrCodeRequired  = errors.New("currency code is required")
	ErrCodeMalformed = errors.New("currency code must be 2 or more latin letters or digits")
)

var codePattern = regexp.MustCompile(`^[a-z0-9]{2,}$`)

// ValidateCode checks an already resolved code before it reaches the JSON API lookup.
func ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if !codePattern.MatchString(code) {
		return ErrCodeMalformed
	}
	return nil
}
