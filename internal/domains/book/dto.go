package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/aggregate"
	"library-backend/pkg/isbn"
)

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title           string     `json:"title"`
	AuthorID        uuid.UUID  `json:"author_id"`
	GenreID         *uuid.UUID `json:"genre_id,omitempty"`
	EditorID        uuid.UUID  `json:"editor_id"`
	Description     *string    `json:"description,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
	Cover           []byte     `json:"cover,omitempty"`
	PageCount       *int       `json:"page_count,omitempty"`
	EditionStopped  bool       `json:"edition_stopped"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.AuthorID, validation.Required.Error("author_id is required")),
		validation.Field(&r.EditorID, validation.Required.Error("editor_id is required")),
		validation.Field(&r.PageCount, validation.By(positiveIfSet)),
		validation.Field(&r.ISBN, validation.By(validISBN)),
	)
}

// UpdateBookRequest - PUT /v1/books/:id
type UpdateBookRequest struct {
	Title           string     `json:"title"`
	GenreID         *uuid.UUID `json:"genre_id,omitempty"`
	EditorID        uuid.UUID  `json:"editor_id"`
	Description     *string    `json:"description,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
	Cover           []byte     `json:"cover,omitempty"`
	PageCount       *int       `json:"page_count,omitempty"`
	EditionStopped  bool       `json:"edition_stopped"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
	Version         int        `json:"version"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.EditorID, validation.Required.Error("editor_id is required")),
		validation.Field(&r.PageCount, validation.By(positiveIfSet)),
		validation.Field(&r.ISBN, validation.By(validISBN)),
		validation.Field(&r.Version, validation.Min(0)),
	)
}

func positiveIfSet(value interface{}) error {
	n, _ := value.(*int)
	if n == nil {
		return nil
	}
	return validation.Min(1).Validate(*n)
}

// validISBN delegates to the checksum validator; absent values pass, the
// write-time guard only applies when an ISBN is supplied.
func validISBN(value interface{}) error {
	s, _ := value.(*string)
	if s == nil {
		return nil
	}
	return isbn.Validate(*s)
}

// BookDetailResponse - GET /v1/books/:id, stored fields plus exemplary
// aggregates.
type BookDetailResponse struct {
	Book
	ExemplaryCount int `json:"exemplary_count"`

	// LatestExemplary is the exemplary with the most recent non-null
	// acquisition date; nil when none is dated.
	LatestExemplary       *aggregate.LatestChild `json:"latest_exemplary"`
	LatestAcquisitionDate *time.Time             `json:"latest_acquisition_date"`
}

type Filter struct {
	Search   string
	AuthorID *uuid.UUID
	Limit    int
	Offset   int
}
