package genre

import "errors"

var (
	// Validation errors
	ErrInvalidName = errors.New("genre name is required")

	// Business rule errors
	ErrGenreNotFound   = errors.New("genre not found")
	ErrGenreInUse      = errors.New("cannot delete genre that is still referenced")
	ErrVersionMismatch = errors.New("genre version mismatch - conflict detected")
)

// ToErrorCode converts an error to an API error code.
func ToErrorCode(err error) string {
	switch err {
	case ErrGenreNotFound:
		return "GENRE_NOT_FOUND"
	case ErrGenreInUse:
		return "GENRE_IN_USE"
	case ErrVersionMismatch:
		return "VERSION_CONFLICT"
	case ErrInvalidName:
		return "INVALID_NAME"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch err {
	case ErrGenreNotFound:
		return 404
	case ErrGenreInUse, ErrVersionMismatch:
		return 409
	case ErrInvalidName:
		return 400
	default:
		return 500
	}
}
