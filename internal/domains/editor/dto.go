package editor

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateEditorRequest - POST /v1/editors
type CreateEditorRequest struct {
	Name         string      `json:"name"`
	CreationDate *time.Time  `json:"creation_date,omitempty"`
	GenreIDs     []uuid.UUID `json:"genre_ids,omitempty"`
}

func (r CreateEditorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

// UpdateEditorRequest - PUT /v1/editors/:id
type UpdateEditorRequest struct {
	Name         string      `json:"name"`
	CreationDate *time.Time  `json:"creation_date,omitempty"`
	GenreIDs     []uuid.UUID `json:"genre_ids,omitempty"`
	Version      int         `json:"version"`
}

func (r UpdateEditorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Version, validation.Min(0)),
	)
}

// EditorDetailResponse carries the derived publication counters next to the
// stored fields.
type EditorDetailResponse struct {
	Editor
	PublishedBookCount int `json:"published_book_count"`
	// PublishedLastYear counts books published within the last 365 days.
	PublishedLastYear int `json:"published_book_count_last_year"`
}

type Filter struct {
	Search string
	Limit  int
	Offset int
}
