package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/editor"
	"library-backend/internal/domains/exemplary"
	"library-backend/internal/infrastructure/memstore"
)

func newService(t *testing.T) (exemplary.Service, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	store, err := memstore.New()
	require.NoError(t, err)

	a, err := memstore.NewAuthorRepository(store).Create(ctx, &author.Author{Name: "Victor Hugo"})
	require.NoError(t, err)
	e, err := memstore.NewEditorRepository(store).Create(ctx, &editor.Editor{Name: "Gallimard"})
	require.NoError(t, err)
	b, err := memstore.NewBookRepository(store).Create(ctx, &book.Book{
		Title:    "Les Misérables",
		AuthorID: a.ID,
		EditorID: e.ID,
	})
	require.NoError(t, err)

	return NewExemplaryService(memstore.NewExemplaryRepository(store)), b.ID
}

func TestCreateBatchBuildsSequentialIdentifiers(t *testing.T) {
	svc, bookID := newService(t)
	ctx := context.Background()

	acquired := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromFloat(12.50)

	created, err := svc.CreateBatch(ctx, bookID, &exemplary.CreateBatchRequest{
		NumberOfExemplaries: 3,
		IdentifierStart:     "MIS-",
		AcquisitionDate:     &acquired,
		AcquisitionPrice:    &price,
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	identifiers := make([]string, 0, len(created))
	for _, e := range created {
		identifiers = append(identifiers, e.Identifier)
		assert.Equal(t, bookID, e.BookID)
		require.NotNil(t, e.AcquisitionPrice)
		assert.True(t, price.Equal(*e.AcquisitionPrice))
	}
	assert.Equal(t, []string{"MIS-1", "MIS-2", "MIS-3"}, identifiers)
}

func TestCreateBatchZeroPriceStoredAsNull(t *testing.T) {
	svc, bookID := newService(t)

	zero := decimal.Zero
	created, err := svc.CreateBatch(context.Background(), bookID, &exemplary.CreateBatchRequest{
		NumberOfExemplaries: 2,
		IdentifierStart:     "FREE-",
		AcquisitionPrice:    &zero,
	})
	require.NoError(t, err)
	for _, e := range created {
		assert.Nil(t, e.AcquisitionPrice)
	}
}

func TestCreateBatchValidation(t *testing.T) {
	svc, bookID := newService(t)
	ctx := context.Background()

	t.Run("count must be positive", func(t *testing.T) {
		_, err := svc.CreateBatch(ctx, bookID, &exemplary.CreateBatchRequest{
			NumberOfExemplaries: 0,
			IdentifierStart:     "MIS-",
		})
		require.Error(t, err)
	})

	t.Run("acquisition date cannot be in the future", func(t *testing.T) {
		future := time.Now().AddDate(0, 0, 2)
		_, err := svc.CreateBatch(ctx, bookID, &exemplary.CreateBatchRequest{
			NumberOfExemplaries: 1,
			IdentifierStart:     "MIS-",
			AcquisitionDate:     &future,
		})
		require.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		neg := decimal.NewFromInt(-1)
		_, err := svc.CreateBatch(ctx, bookID, &exemplary.CreateBatchRequest{
			NumberOfExemplaries: 1,
			IdentifierStart:     "MIS-",
			AcquisitionPrice:    &neg,
		})
		require.Error(t, err)
	})

	t.Run("unknown book rejected", func(t *testing.T) {
		_, err := svc.CreateBatch(ctx, uuid.New(), &exemplary.CreateBatchRequest{
			NumberOfExemplaries: 1,
			IdentifierStart:     "MIS-",
		})
		require.ErrorIs(t, err, exemplary.ErrUnknownBook)
	})
}
