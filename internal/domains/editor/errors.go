package editor

import "errors"

var (
	// Validation errors
	ErrInvalidName = errors.New("editor name is required")

	// Business rule errors
	ErrEditorNotFound  = errors.New("editor not found")
	ErrEditorInUse     = errors.New("cannot delete editor with published books")
	ErrVersionMismatch = errors.New("editor version mismatch - conflict detected")
	ErrUnknownGenre    = errors.New("editor references an unknown genre")
)

func ToErrorCode(err error) string {
	switch err {
	case ErrEditorNotFound:
		return "EDITOR_NOT_FOUND"
	case ErrEditorInUse:
		return "EDITOR_IN_USE"
	case ErrVersionMismatch:
		return "VERSION_CONFLICT"
	case ErrInvalidName:
		return "INVALID_NAME"
	case ErrUnknownGenre:
		return "UNKNOWN_GENRE"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch err {
	case ErrEditorNotFound:
		return 404
	case ErrEditorInUse, ErrVersionMismatch:
		return 409
	case ErrInvalidName, ErrUnknownGenre:
		return 400
	default:
		return 500
	}
}
