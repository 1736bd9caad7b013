package author

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetDetails returns the author with derived attributes.
	GetDetails(ctx context.Context, id uuid.UUID) (*AuthorDetailResponse, error)

	// BatchStats computes derived attributes for a whole id set at once;
	// every requested id gets an entry, unknown ids included (their
	// counts are simply zero). One grouped engine call per attribute.
	BatchStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Stats, error)

	GetAll(ctx context.Context, filter Filter) ([]Author, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
