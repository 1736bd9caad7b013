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
	"library-backend/internal/domains/genre"
	"library-backend/internal/infrastructure/memstore"
)

type fixture struct {
	svc    author.Service
	genres genre.Repository
	books  book.Repository

	editorID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := memstore.New()
	require.NoError(t, err)

	e, err := memstore.NewEditorRepository(store).Create(ctx, &editor.Editor{Name: "Gallimard"})
	require.NoError(t, err)

	return &fixture{
		svc:      NewAuthorService(memstore.NewAuthorRepository(store), memstore.NewEngine(store)),
		genres:   memstore.NewGenreRepository(store),
		books:    memstore.NewBookRepository(store),
		editorID: e.ID,
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func (f *fixture) seedBook(t *testing.T, authorID uuid.UUID, title string, genreID *uuid.UUID, published *time.Time) *book.Book {
	t.Helper()
	b, err := f.books.Create(context.Background(), &book.Book{
		Title:           title,
		AuthorID:        authorID,
		GenreID:         genreID,
		EditorID:        f.editorID,
		PublicationDate: published,
	})
	require.NoError(t, err)
	return b
}

func TestCreateValidatesDeathAfterBirth(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &author.CreateAuthorRequest{
		Name:      "Victor Hugo",
		BirthDate: datePtr(1885, time.May, 22),
		DeathDate: datePtr(1802, time.February, 26),
	})
	require.Error(t, err)
}

func TestBatchStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	novel, err := f.genres.Create(ctx, &genre.Genre{Name: "novel"})
	require.NoError(t, err)
	poetry, err := f.genres.Create(ctx, &genre.Genre{Name: "poetry"})
	require.NoError(t, err)

	// Hugo died in 1885 at 83; his stats report the age at death.
	hugo, err := f.svc.Create(ctx, &author.CreateAuthorRequest{
		Name:      "Victor Hugo",
		BirthDate: datePtr(1802, time.February, 26),
		DeathDate: datePtr(1885, time.May, 22),
	})
	require.NoError(t, err)

	idle, err := f.svc.Create(ctx, &author.CreateAuthorRequest{Name: "Alexandre Dumas"})
	require.NoError(t, err)

	f.seedBook(t, hugo.ID, "Notre-Dame de Paris", &novel.ID, datePtr(1831, time.March, 16))
	latest := f.seedBook(t, hugo.ID, "Les Misérables", &novel.ID, datePtr(1862, time.April, 3))
	f.seedBook(t, hugo.ID, "Les Contemplations", &poetry.ID, datePtr(1856, time.April, 23))

	stats, err := f.svc.BatchStats(ctx, []uuid.UUID{hugo.ID, idle.ID})
	require.NoError(t, err)

	h := stats[hugo.ID]
	require.NotNil(t, h.Age)
	assert.Equal(t, 83, *h.Age)
	assert.Equal(t, 3, h.BookCount)
	assert.Equal(t, 2, h.DistinctGenres)
	require.NotNil(t, h.MostRecentBookID)
	assert.Equal(t, latest.ID, *h.MostRecentBookID)

	// Authors without books still get a full entry.
	d := stats[idle.ID]
	assert.Nil(t, d.Age)
	assert.Equal(t, 0, d.BookCount)
	assert.Equal(t, 0, d.DistinctGenres)
	assert.Nil(t, d.MostRecentBookID)
}

func TestGetDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hugo, err := f.svc.Create(ctx, &author.CreateAuthorRequest{Name: "Victor Hugo"})
	require.NoError(t, err)
	f.seedBook(t, hugo.ID, "Les Misérables", nil, nil)

	detail, err := f.svc.GetDetails(ctx, hugo.ID)
	require.NoError(t, err)
	assert.Equal(t, hugo.ID, detail.ID)
	assert.Equal(t, 1, detail.BookCount)

	_, err = f.svc.GetDetails(ctx, uuid.New())
	require.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestDeleteCascadesThroughBooks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hugo, err := f.svc.Create(ctx, &author.CreateAuthorRequest{Name: "Victor Hugo"})
	require.NoError(t, err)
	b := f.seedBook(t, hugo.ID, "Les Misérables", nil, nil)

	require.NoError(t, f.svc.Delete(ctx, hugo.ID))

	_, err = f.books.GetByID(ctx, b.ID)
	require.ErrorIs(t, err, book.ErrBookNotFound)
}
