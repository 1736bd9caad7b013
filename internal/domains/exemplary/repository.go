package exemplary

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Exemplary) (*Exemplary, error)

	// CreateBatch inserts all rows in one transaction; a duplicate
	// identifier anywhere in the batch aborts the whole insert.
	CreateBatch(ctx context.Context, exemplaries []*Exemplary) ([]Exemplary, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Exemplary, error)
	GetAll(ctx context.Context, filter Filter) ([]Exemplary, int64, error)
	Update(ctx context.Context, e *Exemplary, currentVersion int) (*Exemplary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
