package author

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMan   Gender = "man"
	GenderWoman Gender = "woman"
)

// Author owns its books: deleting an author cascades to the books and their
// exemplaries.
type Author struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	BirthDate *time.Time `json:"birth_date" db:"birth_date"`

	// DeathDate must be strictly after BirthDate when both are set.
	DeathDate *time.Time `json:"death_date" db:"death_date"`
	Gender    *Gender    `json:"gender" db:"gender"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
