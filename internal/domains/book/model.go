package book

import (
	"time"

	"github.com/google/uuid"
)

// Book belongs to exactly one author (cascade-delete) and references an
// editor (required) and optionally a genre, both restrict-delete. The
// (author, title) pair is unique across the catalog.
type Book struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	AuthorID uuid.UUID `json:"author_id" db:"author_id"`
	GenreID  *uuid.UUID `json:"genre_id" db:"genre_id"`
	EditorID uuid.UUID `json:"editor_id" db:"editor_id"`

	// Description is the one-line blurb; Summary the long form.
	Description     *string    `json:"description" db:"description"`
	Summary         *string    `json:"summary" db:"summary"`
	Cover           []byte     `json:"cover,omitempty" db:"cover"`
	PageCount       *int       `json:"page_count" db:"page_count"`
	EditionStopped  bool       `json:"edition_stopped" db:"edition_stopped"`
	PublicationDate *time.Time `json:"publication_date" db:"publication_date"`
	ISBN            *string    `json:"isbn" db:"isbn"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VersionedID pins a row to the version observed when it was read; used for
// optimistic batch deletes.
type VersionedID struct {
	ID      uuid.UUID
	Version int
}
