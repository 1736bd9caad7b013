package exemplary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exemplary is one physical copy of a book, tracked individually. The
// identifier is human-assigned and globally unique; the row id stays the
// store's concern.
type Exemplary struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Identifier string    `json:"identifier" db:"identifier"`
	BookID     uuid.UUID `json:"book_id" db:"book_id"`

	AcquisitionDate *time.Time `json:"acquisition_date" db:"acquisition_date"`

	// AcquisitionPrice is null or strictly positive, two decimal places.
	AcquisitionPrice *decimal.Decimal `json:"acquisition_price" db:"acquisition_price"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
