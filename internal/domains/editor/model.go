package editor

import (
	"time"

	"github.com/google/uuid"
)

// Editor is a publishing house. Books reference editors under
// restrict-delete; the genre set is a plain many-to-many with no ordering.
type Editor struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	CreationDate *time.Time `json:"creation_date" db:"creation_date"`

	// GenreIDs is the many-to-many genre set, loaded alongside the row.
	GenreIDs []uuid.UUID `json:"genre_ids"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
