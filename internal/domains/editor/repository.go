package editor

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for editors. The genre set is
// written as a whole: SetGenres replaces the join rows in one transaction.
type Repository interface {
	Create(ctx context.Context, e *Editor) (*Editor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Editor, error)
	GetAll(ctx context.Context, filter Filter) ([]Editor, int64, error)
	Update(ctx context.Context, e *Editor, currentVersion int) (*Editor, error)

	// Delete fails with ErrEditorInUse while any book references the
	// editor (restrict-delete). The genre join rows go with the editor.
	Delete(ctx context.Context, id uuid.UUID) error
}
