package book

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateBookRequest) (*Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetDetails returns the book with its exemplary aggregates.
	GetDetails(ctx context.Context, id uuid.UUID) (*BookDetailResponse, error)

	GetAll(ctx context.Context, filter Filter) ([]Book, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateBookRequest) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
