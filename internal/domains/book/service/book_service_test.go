package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/editor"
	"library-backend/internal/domains/exemplary"
	"library-backend/internal/infrastructure/memstore"
	"library-backend/pkg/isbn"
)

type fixture struct {
	svc         book.Service
	exemplaries exemplary.Repository

	authorID uuid.UUID
	editorID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := memstore.New()
	require.NoError(t, err)

	a, err := memstore.NewAuthorRepository(store).Create(ctx, &author.Author{Name: "Victor Hugo"})
	require.NoError(t, err)
	e, err := memstore.NewEditorRepository(store).Create(ctx, &editor.Editor{Name: "Gallimard"})
	require.NoError(t, err)

	return &fixture{
		svc:         NewBookService(memstore.NewBookRepository(store), memstore.NewEngine(store)),
		exemplaries: memstore.NewExemplaryRepository(store),
		authorID:    a.ID,
		editorID:    e.ID,
	}
}

func TestCreateGuardsISBN(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := "9780306406158" // checksum off by one
	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		Title:    "Les Misérables",
		AuthorID: f.authorID,
		EditorID: f.editorID,
		ISBN:     &bad,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), isbn.ErrInvalidCheckDigit.Error())

	good := "9780306406157"
	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		Title:    "Les Misérables",
		AuthorID: f.authorID,
		EditorID: f.editorID,
		ISBN:     &good,
	})
	require.NoError(t, err)
	assert.Equal(t, good, *created.ISBN)
}

func TestGetDetailsAggregatesExemplaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		Title:    "Les Misérables",
		AuthorID: f.authorID,
		EditorID: f.editorID,
	})
	require.NoError(t, err)

	old := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	_, err = f.exemplaries.Create(ctx, &exemplary.Exemplary{Identifier: "MIS-1", BookID: created.ID, AcquisitionDate: &old})
	require.NoError(t, err)
	last, err := f.exemplaries.Create(ctx, &exemplary.Exemplary{Identifier: "MIS-2", BookID: created.ID, AcquisitionDate: &newest})
	require.NoError(t, err)
	_, err = f.exemplaries.Create(ctx, &exemplary.Exemplary{Identifier: "MIS-3", BookID: created.ID})
	require.NoError(t, err)

	detail, err := f.svc.GetDetails(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.ExemplaryCount)
	require.NotNil(t, detail.LatestExemplary)
	assert.Equal(t, last.ID, detail.LatestExemplary.ChildID)
	require.NotNil(t, detail.LatestAcquisitionDate)
	assert.True(t, newest.Equal(*detail.LatestAcquisitionDate))
}

func TestCreateRejectsDuplicateTitleForAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		Title:    "Les Misérables",
		AuthorID: f.authorID,
		EditorID: f.editorID,
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, &book.CreateBookRequest{
		Title:    "Les Misérables",
		AuthorID: f.authorID,
		EditorID: f.editorID,
	})
	require.ErrorIs(t, err, book.ErrDuplicateTitle)
}
