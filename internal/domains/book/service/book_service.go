package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/aggregate"
	"library-backend/internal/domains/book"
)

type bookService struct {
	repo   book.Repository
	engine aggregate.Engine
}

func NewBookService(repo book.Repository, engine aggregate.Engine) book.Service {
	return &bookService{
		repo:   repo,
		engine: engine,
	}
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, book.ErrInvalidTitle
	}
	if req.AuthorID == uuid.Nil {
		return nil, book.ErrMissingAuthor
	}
	if req.EditorID == uuid.Nil {
		return nil, book.ErrMissingEditor
	}

	return s.repo.Create(ctx, &book.Book{
		Title:           title,
		AuthorID:        req.AuthorID,
		GenreID:         req.GenreID,
		EditorID:        req.EditorID,
		Description:     req.Description,
		Summary:         req.Summary,
		Cover:           req.Cover,
		PageCount:       req.PageCount,
		EditionStopped:  req.EditionStopped,
		PublicationDate: req.PublicationDate,
		ISBN:            req.ISBN,
	})
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if id == uuid.Nil {
		return nil, book.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) GetDetails(ctx context.Context, id uuid.UUID) (*book.BookDetailResponse, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := []uuid.UUID{id}

	counts, err := s.engine.CountChildren(ctx, ids, aggregate.BookExemplaries)
	if err != nil {
		return nil, err
	}

	latest, err := s.engine.LatestByDate(ctx, ids, aggregate.BookExemplaries, aggregate.AcquisitionDate)
	if err != nil {
		return nil, err
	}

	detail := &book.BookDetailResponse{
		Book:            *b,
		ExemplaryCount:  counts[id],
		LatestExemplary: latest[id],
	}
	if detail.LatestExemplary != nil {
		d := detail.LatestExemplary.Date
		detail.LatestAcquisitionDate = &d
	}

	return detail, nil
}

func (s *bookService) GetAll(ctx context.Context, filter book.Filter) ([]book.Book, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, book.ErrInvalidTitle
	}
	if req.EditorID == uuid.Nil {
		return nil, book.ErrMissingEditor
	}

	return s.repo.Update(ctx, &book.Book{
		ID:              id,
		Title:           title,
		GenreID:         req.GenreID,
		EditorID:        req.EditorID,
		Description:     req.Description,
		Summary:         req.Summary,
		Cover:           req.Cover,
		PageCount:       req.PageCount,
		EditionStopped:  req.EditionStopped,
		PublicationDate: req.PublicationDate,
		ISBN:            req.ISBN,
	}, req.Version)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return book.ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}
