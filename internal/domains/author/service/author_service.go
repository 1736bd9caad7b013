package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/aggregate"
	"library-backend/internal/domains/author"
)

type authorService struct {
	repo   author.Repository
	engine aggregate.Engine
}

func NewAuthorService(repo author.Repository, engine aggregate.Engine) author.Service {
	return &authorService{
		repo:   repo,
		engine: engine,
	}
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, author.ErrInvalidName
	}

	return s.repo.Create(ctx, &author.Author{
		Name:      name,
		BirthDate: req.BirthDate,
		DeathDate: req.DeathDate,
		Gender:    req.Gender,
	})
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	if id == uuid.Nil {
		return nil, author.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetDetails(ctx context.Context, id uuid.UUID) (*author.AuthorDetailResponse, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.BatchStats(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	return &author.AuthorDetailResponse{
		Author: *a,
		Stats:  stats[id],
	}, nil
}

// BatchStats runs one grouped engine call per derived attribute for the whole
// id set, so cost scales with the number of children, not parents times
// children.
func (s *authorService) BatchStats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]author.Stats, error) {
	result := make(map[uuid.UUID]author.Stats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	counts, err := s.engine.CountChildren(ctx, ids, aggregate.AuthorBooks)
	if err != nil {
		return nil, err
	}

	genres, err := s.engine.CountDistinctGenres(ctx, ids)
	if err != nil {
		return nil, err
	}

	recent, err := s.engine.MostRecentByGroup(ctx, ids, aggregate.AuthorBooks, aggregate.PublicationDate)
	if err != nil {
		return nil, err
	}

	authors, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]author.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	for _, id := range ids {
		stats := author.Stats{
			BookCount:      counts[id],
			DistinctGenres: genres[id],
		}

		if rep := recent[id]; rep != uuid.Nil {
			repID := rep
			stats.MostRecentBookID = &repID
		}

		if a, ok := byID[id]; ok {
			// Dead authors get their age at death.
			stats.Age = aggregate.Age(a.BirthDate, a.DeathDate)
		}

		result[id] = stats
	}

	return result, nil
}

func (s *authorService) GetAll(ctx context.Context, filter author.Filter) ([]author.Author, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, author.ErrInvalidName
	}

	return s.repo.Update(ctx, &author.Author{
		ID:        id,
		Name:      name,
		BirthDate: req.BirthDate,
		DeathDate: req.DeathDate,
		Gender:    req.Gender,
	}, req.Version)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return author.ErrAuthorNotFound
	}
	return s.repo.Delete(ctx, id)
}
