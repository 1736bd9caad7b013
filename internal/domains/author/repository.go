package author

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Author) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetByIDs loads a batch in one query; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Author, error)

	GetAll(ctx context.Context, filter Filter) ([]Author, int64, error)
	Update(ctx context.Context, a *Author, currentVersion int) (*Author, error)

	// Delete cascades: the author's books and their exemplaries are
	// removed in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
