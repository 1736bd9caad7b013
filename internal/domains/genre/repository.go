package genre

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for genres.
type Repository interface {
	Create(ctx context.Context, g *Genre) (*Genre, error)

	// GetByID returns ErrGenreNotFound if the genre does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)

	GetAll(ctx context.Context, filter Filter) ([]Genre, int64, error)

	// Update applies optimistic locking: currentVersion must match the
	// stored version or ErrVersionMismatch is returned.
	Update(ctx context.Context, g *Genre, currentVersion int) (*Genre, error)

	// Delete fails with ErrGenreInUse while any book or editor still
	// references the genre (restrict-delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
