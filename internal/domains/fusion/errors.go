package fusion

import "errors"

var (
	// Precondition errors - block the transition, leave the session alone
	ErrInvalidSelection = errors.New("fusion requires at least two existing books")
	ErrMixedAuthors     = errors.New("fusion candidates must share a single author")
	ErrInvalidMaster    = errors.New("master index is out of range")
	ErrInvalidState     = errors.New("operation not allowed in the session's current state")
	ErrSessionNotFound  = errors.New("fusion session not found or expired")

	// ErrConcurrentModification means a candidate changed between Start and
	// Confirm; the session is cancelled and nothing was deleted.
	ErrConcurrentModification = errors.New("a fusion candidate was modified concurrently")
)

func ToErrorCode(err error) string {
	switch err {
	case ErrInvalidSelection:
		return "INVALID_SELECTION"
	case ErrMixedAuthors:
		return "MIXED_AUTHORS"
	case ErrInvalidMaster:
		return "INVALID_MASTER"
	case ErrInvalidState:
		return "INVALID_STATE"
	case ErrSessionNotFound:
		return "SESSION_NOT_FOUND"
	case ErrConcurrentModification:
		return "CONCURRENT_MODIFICATION"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch err {
	case ErrInvalidSelection, ErrMixedAuthors, ErrInvalidMaster:
		return 400
	case ErrSessionNotFound:
		return 404
	case ErrInvalidState, ErrConcurrentModification:
		return 409
	default:
		return 500
	}
}
