package author

import "errors"

var (
	// Validation errors
	ErrInvalidName      = errors.New("author name is required")
	ErrInvalidGender    = errors.New("gender must be 'man' or 'woman'")
	ErrDeathBeforeBirth = errors.New("death date must be strictly after birth date")

	// Business rule errors
	ErrAuthorNotFound  = errors.New("author not found")
	ErrVersionMismatch = errors.New("author version mismatch - conflict detected")
)

func ToErrorCode(err error) string {
	switch err {
	case ErrAuthorNotFound:
		return "AUTHOR_NOT_FOUND"
	case ErrVersionMismatch:
		return "VERSION_CONFLICT"
	case ErrInvalidName:
		return "INVALID_NAME"
	case ErrInvalidGender:
		return "INVALID_GENDER"
	case ErrDeathBeforeBirth:
		return "DEATH_BEFORE_BIRTH"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch err {
	case ErrAuthorNotFound:
		return 404
	case ErrVersionMismatch:
		return 409
	case ErrInvalidName, ErrInvalidGender, ErrDeathBeforeBirth:
		return 400
	default:
		return 500
	}
}
