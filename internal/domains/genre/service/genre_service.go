package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/genre"
)

type genreService struct {
	repo genre.Repository
}

func NewGenreService(repo genre.Repository) genre.Service {
	return &genreService{repo: repo}
}

func (s *genreService) Create(ctx context.Context, req *genre.CreateGenreRequest) (*genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, genre.ErrInvalidName
	}

	return s.repo.Create(ctx, &genre.Genre{Name: name})
}

func (s *genreService) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	if id == uuid.Nil {
		return nil, genre.ErrGenreNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) GetAll(ctx context.Context, filter genre.Filter) ([]genre.Genre, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, req *genre.UpdateGenreRequest) (*genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, genre.ErrInvalidName
	}

	return s.repo.Update(ctx, &genre.Genre{ID: id, Name: name}, req.Version)
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return genre.ErrGenreNotFound
	}
	return s.repo.Delete(ctx, id)
}
