package exemplary

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, bookID uuid.UUID, req *CreateExemplaryRequest) (*Exemplary, error)

	// CreateBatch produces req.NumberOfExemplaries copies of one book
	// with sequentially suffixed identifiers, all in one store write.
	CreateBatch(ctx context.Context, bookID uuid.UUID, req *CreateBatchRequest) ([]Exemplary, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Exemplary, error)
	GetAll(ctx context.Context, filter Filter) ([]Exemplary, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateExemplaryRequest) (*Exemplary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
