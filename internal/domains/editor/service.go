package editor

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateEditorRequest) (*Editor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Editor, error)

	// GetDetails returns the editor plus its derived publication counts,
	// computed through the aggregation engine.
	GetDetails(ctx context.Context, id uuid.UUID) (*EditorDetailResponse, error)

	GetAll(ctx context.Context, filter Filter) ([]Editor, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateEditorRequest) (*Editor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
