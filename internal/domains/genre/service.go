package genre

import (
	"context"

	"github.com/google/uuid"
)

// Service holds the business logic for genres. Thin by design: genres only
// carry a name and the restrict-delete rule lives in the store.
type Service interface {
	Create(ctx context.Context, req *CreateGenreRequest) (*Genre, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	GetAll(ctx context.Context, filter Filter) ([]Genre, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateGenreRequest) (*Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
