package book

import "errors"

var (
	// Validation errors
	ErrInvalidTitle  = errors.New("book title is required")
	ErrMissingAuthor = errors.New("book requires an author")
	ErrMissingEditor = errors.New("book requires an editor")

	// Business rule errors
	ErrBookNotFound    = errors.New("book not found")
	ErrDuplicateTitle  = errors.New("this author already has a book with this title")
	ErrUnknownRelation = errors.New("book references an unknown author, editor or genre")
	ErrVersionMismatch = errors.New("book version mismatch - conflict detected")
)

func ToErrorCode(err error) string {
	switch err {
	case ErrBookNotFound:
		return "BOOK_NOT_FOUND"
	case ErrDuplicateTitle:
		return "DUPLICATE_TITLE"
	case ErrVersionMismatch:
		return "VERSION_CONFLICT"
	case ErrUnknownRelation:
		return "UNKNOWN_RELATION"
	case ErrInvalidTitle:
		return "INVALID_TITLE"
	case ErrMissingAuthor:
		return "MISSING_AUTHOR"
	case ErrMissingEditor:
		return "MISSING_EDITOR"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch err {
	case ErrBookNotFound:
		return 404
	case ErrDuplicateTitle, ErrVersionMismatch:
		return 409
	case ErrInvalidTitle, ErrMissingAuthor, ErrMissingEditor, ErrUnknownRelation:
		return 400
	default:
		return 500
	}
}
