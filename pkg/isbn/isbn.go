// Package isbn validates ISBN-13 strings against their check digit.
package isbn

import "errors"

var (
	ErrInvalidFormat     = errors.New("isbn must contain only digits")
	ErrInvalidLength     = errors.New("isbn must be exactly 13 digits long")
	ErrInvalidCheckDigit = errors.New("isbn check digit is invalid")
)

// Validate checks a 13-digit ISBN. Digits at odd positions (1-indexed) weigh
// 1, digits at even positions weigh 3; the weighted sum must be divisible by
// 10. Format is checked before length so "12a" reports the bad character, not
// the short length.
func Validate(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return ErrInvalidFormat
		}
	}

	if len(s) != 13 {
		return ErrInvalidLength
	}

	sum := 0
	for i, r := range s {
		digit := int(r - '0')
		if i%2 == 1 { // even position, 1-indexed
			digit *= 3
		}
		sum += digit
	}

	if sum%10 != 0 {
		return ErrInvalidCheckDigit
	}

	return nil
}
