package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	DeathDate *time.Time `json:"death_date,omitempty"`
	Gender    *Gender    `json:"gender,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Gender, validation.By(validGender)),
		validation.Field(&r.DeathDate, validation.By(deathAfterBirth(r.BirthDate))),
	)
}

// UpdateAuthorRequest - PUT /v1/authors/:id
type UpdateAuthorRequest struct {
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	DeathDate *time.Time `json:"death_date,omitempty"`
	Gender    *Gender    `json:"gender,omitempty"`
	Version   int        `json:"version"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Gender, validation.By(validGender)),
		validation.Field(&r.DeathDate, validation.By(deathAfterBirth(r.BirthDate))),
		validation.Field(&r.Version, validation.Min(0)),
	)
}

func validGender(value interface{}) error {
	g, _ := value.(*Gender)
	if g == nil {
		return nil
	}
	if *g != GenderMan && *g != GenderWoman {
		return ErrInvalidGender
	}
	return nil
}

func deathAfterBirth(birth *time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		death, _ := value.(*time.Time)
		if death == nil || birth == nil {
			return nil
		}
		if !death.After(*birth) {
			return ErrDeathBeforeBirth
		}
		return nil
	}
}

// Stats bundles the derived attributes of one author.
type Stats struct {
	// Age is nil when the author has no birth date; for dead authors it
	// is the age at death.
	Age            *int `json:"age"`
	BookCount      int  `json:"book_count"`
	DistinctGenres int  `json:"distinct_genres"`

	// MostRecentBookID is the representative of the most-recent-by-group
	// selection over the author's books; nil when the author has none.
	// With tied or missing publication dates the choice is
	// implementation-defined.
	MostRecentBookID *uuid.UUID `json:"most_recent_book_id"`
}

// AuthorDetailResponse - GET /v1/authors/:id
type AuthorDetailResponse struct {
	Author
	Stats
}

// BatchStatsRequest - POST /v1/authors/stats
type BatchStatsRequest struct {
	AuthorIDs []uuid.UUID `json:"author_ids"`
}

func (r BatchStatsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorIDs, validation.Required.Error("author_ids is required")),
	)
}

type Filter struct {
	Search string
	Limit  int
	Offset int
}
