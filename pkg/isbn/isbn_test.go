package isbn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/pkg/isbn"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"valid isbn", "9780306406157", nil},
		{"valid isbn alternate", "9783161484100", nil},
		{"valid isbn kandr", "9780131103627", nil},
		{"single digit mutated", "9780306406158", isbn.ErrInvalidCheckDigit},
		{"mutation in even position", "9780316406157", isbn.ErrInvalidCheckDigit},
		{"letter in string", "978030640615X", isbn.ErrInvalidFormat},
		{"hyphenated", "978-0306406157", isbn.ErrInvalidFormat},
		{"twelve digits", "978030640615", isbn.ErrInvalidLength},
		{"fourteen digits", "97803064061570", isbn.ErrInvalidLength},
		{"empty string", "", isbn.ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := isbn.Validate(tt.input)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

// Format is reported before length: a short string with a bad rune fails on
// the rune.
func TestValidateFormatBeforeLength(t *testing.T) {
	assert.ErrorIs(t, isbn.Validate("12a"), isbn.ErrInvalidFormat)
}
