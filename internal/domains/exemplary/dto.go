package exemplary

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateExemplaryRequest - POST /v1/books/:id/exemplaries
type CreateExemplaryRequest struct {
	Identifier       string           `json:"identifier"`
	AcquisitionDate  *time.Time       `json:"acquisition_date,omitempty"`
	AcquisitionPrice *decimal.Decimal `json:"acquisition_price,omitempty"`
}

func (r CreateExemplaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier,
			validation.Required.Error("identifier is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.AcquisitionDate, validation.By(notInFuture)),
		validation.Field(&r.AcquisitionPrice, validation.By(strictlyPositiveIfSet)),
	)
}

// CreateBatchRequest - POST /v1/books/:id/exemplaries/batch
// Creates NumberOfExemplaries copies with identifiers IdentifierStart+"1"
// through IdentifierStart+"N".
type CreateBatchRequest struct {
	NumberOfExemplaries int              `json:"number_of_exemplaries"`
	IdentifierStart     string           `json:"identifier_start"`
	AcquisitionDate     *time.Time       `json:"acquisition_date,omitempty"`
	AcquisitionPrice    *decimal.Decimal `json:"acquisition_price,omitempty"`
}

func (r CreateBatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NumberOfExemplaries,
			validation.Required.Error("number_of_exemplaries is required"),
			validation.Min(1).Error("number_of_exemplaries must be positive"),
		),
		validation.Field(&r.IdentifierStart,
			validation.Required.Error("identifier_start is required"),
			validation.Length(1, 250),
		),
		validation.Field(&r.AcquisitionDate, validation.By(notInFuture)),
		validation.Field(&r.AcquisitionPrice, validation.By(nonNegativeIfSet)),
	)
}

// UpdateExemplaryRequest - PUT /v1/exemplaries/:id
type UpdateExemplaryRequest struct {
	Identifier       string           `json:"identifier"`
	AcquisitionDate  *time.Time       `json:"acquisition_date,omitempty"`
	AcquisitionPrice *decimal.Decimal `json:"acquisition_price,omitempty"`
	Version          int              `json:"version"`
}

func (r UpdateExemplaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier,
			validation.Required.Error("identifier is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.AcquisitionDate, validation.By(notInFuture)),
		validation.Field(&r.AcquisitionPrice, validation.By(strictlyPositiveIfSet)),
		validation.Field(&r.Version, validation.Min(0)),
	)
}

func notInFuture(value interface{}) error {
	d, _ := value.(*time.Time)
	if d == nil {
		return nil
	}
	// Compare on the day: acquiring a book later today is fine.
	if d.After(endOfToday()) {
		return ErrFutureAcquisition
	}
	return nil
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// The stored invariant: a price is null or strictly positive.
func strictlyPositiveIfSet(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	if p == nil {
		return nil
	}
	if p.Sign() <= 0 {
		return ErrNegativePrice
	}
	return nil
}

// The batch helper boundary admits zero; the service stores it as null.
func nonNegativeIfSet(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	if p == nil {
		return nil
	}
	if p.Sign() < 0 {
		return ErrNegativePrice
	}
	return nil
}

type Filter struct {
	BookID *uuid.UUID
	Limit  int
	Offset int
}
