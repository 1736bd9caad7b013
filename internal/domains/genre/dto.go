package genre

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateGenreRequest - POST /v1/genres
type CreateGenreRequest struct {
	Name string `json:"name"`
}

func (r CreateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

// UpdateGenreRequest - PUT /v1/genres/:id
type UpdateGenreRequest struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

func (r UpdateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Version, validation.Min(0)),
	)
}

// Filter bounds list queries.
type Filter struct {
	Search string
	Limit  int
	Offset int
}
