package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/aggregate"
	"library-backend/internal/domains/editor"
)

type editorService struct {
	repo   editor.Repository
	engine aggregate.Engine
}

func NewEditorService(repo editor.Repository, engine aggregate.Engine) editor.Service {
	return &editorService{
		repo:   repo,
		engine: engine,
	}
}

func (s *editorService) Create(ctx context.Context, req *editor.CreateEditorRequest) (*editor.Editor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, editor.ErrInvalidName
	}

	return s.repo.Create(ctx, &editor.Editor{
		Name:         name,
		CreationDate: req.CreationDate,
		GenreIDs:     req.GenreIDs,
	})
}

func (s *editorService) GetByID(ctx context.Context, id uuid.UUID) (*editor.Editor, error) {
	if id == uuid.Nil {
		return nil, editor.ErrEditorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetDetails loads the editor and its derived publication counts. Both
// counters come from one grouped engine call each, even for this
// single-editor view, so the read path stays on the batch discipline.
func (s *editorService) GetDetails(ctx context.Context, id uuid.UUID) (*editor.EditorDetailResponse, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := []uuid.UUID{id}

	counts, err := s.engine.CountChildren(ctx, ids, aggregate.EditorBooks)
	if err != nil {
		return nil, err
	}

	yearAgo := time.Now().AddDate(0, 0, -365)
	recent, err := s.engine.CountChildrenSince(ctx, ids, aggregate.EditorBooks, aggregate.PublicationDate, yearAgo)
	if err != nil {
		return nil, err
	}

	return &editor.EditorDetailResponse{
		Editor:             *e,
		PublishedBookCount: counts[id],
		PublishedLastYear:  recent[id],
	}, nil
}

func (s *editorService) GetAll(ctx context.Context, filter editor.Filter) ([]editor.Editor, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *editorService) Update(ctx context.Context, id uuid.UUID, req *editor.UpdateEditorRequest) (*editor.Editor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, editor.ErrInvalidName
	}

	return s.repo.Update(ctx, &editor.Editor{
		ID:           id,
		Name:         name,
		CreationDate: req.CreationDate,
		GenreIDs:     req.GenreIDs,
	}, req.Version)
}

func (s *editorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return editor.ErrEditorNotFound
	}
	return s.repo.Delete(ctx, id)
}
