package genre

import (
	"time"

	"github.com/google/uuid"
)

// Genre is a shared classification label. Other entities reference it under
// restrict-delete: a genre in use cannot be removed.
type Genre struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`

	// Version backs optimistic locking, incremented on each update.
	Version int `json:"version" db:"version"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
