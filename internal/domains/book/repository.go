package book

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *Book) (*Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetByIDs loads a batch in one query; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Book, error)

	GetAll(ctx context.Context, filter Filter) ([]Book, int64, error)
	Update(ctx context.Context, b *Book, currentVersion int) (*Book, error)

	// Delete cascades to the book's exemplaries.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBatchIfUnchanged removes a set of books in one transaction,
	// but only while every row still carries the version captured at read
	// time. Any concurrently modified or already-deleted row aborts the
	// whole batch with ErrVersionMismatch. Cascade rules apply to each
	// deleted book's exemplaries.
	DeleteBatchIfUnchanged(ctx context.Context, books []VersionedID) error
}
