package exemplary

import "errors"

var (
	// Validation errors
	ErrInvalidIdentifier = errors.New("exemplary identifier is required")
	ErrInvalidCount      = errors.New("number of exemplaries must be positive")
	ErrNegativePrice     = errors.New("acquisition price must not be negative")
	ErrFutureAcquisition = errors.New("acquisition date cannot be in the future")

	// Business rule errors
	ErrExemplaryNotFound   = errors.New("exemplary not found")
	ErrDuplicateIdentifier = errors.New("an exemplary with this identifier already exists")
	ErrUnknownBook         = errors.New("exemplary references an unknown book")
	ErrVersionMismatch     = errors.New("exemplary version mismatch - conflict detected")
)

func ToErrorCode(err error) string {
	switch err {
	case ErrExemplaryNotFound:
		return "EXEMPLARY_NOT_FOUND"
	case ErrDuplicateIdentifier:
		return "DUPLICATE_IDENTIFIER"
	case ErrVersionMismatch:
		return "VERSION_CONFLICT"
	case ErrUnknownBook:
		return "UNKNOWN_BOOK"
	case ErrInvalidIdentifier:
		return "INVALID_IDENTIFIER"
	case ErrInvalidCount:
		return "INVALID_COUNT"
	case ErrNegativePrice:
		return "NEGATIVE_PRICE"
	case ErrFutureAcquisition:
		return "FUTURE_ACQUISITION"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch err {
	case ErrExemplaryNotFound:
		return 404
	case ErrDuplicateIdentifier, ErrVersionMismatch:
		return 409
	case ErrInvalidIdentifier, ErrInvalidCount, ErrNegativePrice, ErrFutureAcquisition, ErrUnknownBook:
		return 400
	default:
		return 500
	}
}
