package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/exemplary"
)

type exemplaryService struct {
	repo exemplary.Repository
}

func NewExemplaryService(repo exemplary.Repository) exemplary.Service {
	return &exemplaryService{repo: repo}
}

func (s *exemplaryService) Create(ctx context.Context, bookID uuid.UUID, req *exemplary.CreateExemplaryRequest) (*exemplary.Exemplary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if bookID == uuid.Nil {
		return nil, exemplary.ErrUnknownBook
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, exemplary.ErrInvalidIdentifier
	}

	return s.repo.Create(ctx, &exemplary.Exemplary{
		Identifier:       identifier,
		BookID:           bookID,
		AcquisitionDate:  req.AcquisitionDate,
		AcquisitionPrice: req.AcquisitionPrice,
	})
}

func (s *exemplaryService) CreateBatch(ctx context.Context, bookID uuid.UUID, req *exemplary.CreateBatchRequest) ([]exemplary.Exemplary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if bookID == uuid.Nil {
		return nil, exemplary.ErrUnknownBook
	}

	start := strings.TrimSpace(req.IdentifierStart)
	if start == "" {
		return nil, exemplary.ErrInvalidIdentifier
	}

	price := normalizePrice(req.AcquisitionPrice)

	exemplaries := make([]*exemplary.Exemplary, 0, req.NumberOfExemplaries)
	for i := 1; i <= req.NumberOfExemplaries; i++ {
		exemplaries = append(exemplaries, &exemplary.Exemplary{
			Identifier:       start + strconv.Itoa(i),
			BookID:           bookID,
			AcquisitionDate:  req.AcquisitionDate,
			AcquisitionPrice: price,
		})
	}

	return s.repo.CreateBatch(ctx, exemplaries)
}

// normalizePrice maps a zero price to null so the stored rows keep the
// "null or strictly positive" invariant.
func normalizePrice(p *decimal.Decimal) *decimal.Decimal {
	if p == nil || p.Sign() == 0 {
		return nil
	}
	return p
}

func (s *exemplaryService) GetByID(ctx context.Context, id uuid.UUID) (*exemplary.Exemplary, error) {
	if id == uuid.Nil {
		return nil, exemplary.ErrExemplaryNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *exemplaryService) GetAll(ctx context.Context, filter exemplary.Filter) ([]exemplary.Exemplary, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *exemplaryService) Update(ctx context.Context, id uuid.UUID, req *exemplary.UpdateExemplaryRequest) (*exemplary.Exemplary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, exemplary.ErrInvalidIdentifier
	}

	return s.repo.Update(ctx, &exemplary.Exemplary{
		ID:               id,
		Identifier:       identifier,
		AcquisitionDate:  req.AcquisitionDate,
		AcquisitionPrice: req.AcquisitionPrice,
	}, req.Version)
}

func (s *exemplaryService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return exemplary.ErrExemplaryNotFound
	}
	return s.repo.Delete(ctx, id)
}
