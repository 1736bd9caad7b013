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
	svc    editor.Service
	genres genre.Repository
	books  book.Repository

	authorID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := memstore.New()
	require.NoError(t, err)

	a, err := memstore.NewAuthorRepository(store).Create(ctx, &author.Author{Name: "Victor Hugo"})
	require.NoError(t, err)

	return &fixture{
		svc:      NewEditorService(memstore.NewEditorRepository(store), memstore.NewEngine(store)),
		genres:   memstore.NewGenreRepository(store),
		books:    memstore.NewBookRepository(store),
		authorID: a.ID,
	}
}

func TestCreateRejectsUnknownGenre(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &editor.CreateEditorRequest{
		Name:     "Gallimard",
		GenreIDs: []uuid.UUID{uuid.New()},
	})
	require.ErrorIs(t, err, editor.ErrUnknownGenre)
}

func TestGetDetailsCountsPublications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.svc.Create(ctx, &editor.CreateEditorRequest{Name: "Gallimard"})
	require.NoError(t, err)

	recent := time.Now().AddDate(0, -1, 0)
	older := time.Now().AddDate(-3, 0, 0)

	seed := func(title string, published *time.Time) {
		_, err := f.books.Create(ctx, &book.Book{
			Title:           title,
			AuthorID:        f.authorID,
			EditorID:        e.ID,
			PublicationDate: published,
		})
		require.NoError(t, err)
	}
	seed("Les Misérables", &recent)
	seed("Notre-Dame de Paris", &older)
	seed("Quatrevingt-treize", nil)

	detail, err := f.svc.GetDetails(ctx, e.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.PublishedBookCount)
	// Only the recent one falls inside the trailing year; undated books
	// never count.
	assert.Equal(t, 1, detail.PublishedLastYear)
}

func TestUpdateReplacesGenreSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	novel, err := f.genres.Create(ctx, &genre.Genre{Name: "novel"})
	require.NoError(t, err)
	poetry, err := f.genres.Create(ctx, &genre.Genre{Name: "poetry"})
	require.NoError(t, err)

	e, err := f.svc.Create(ctx, &editor.CreateEditorRequest{
		Name:     "Gallimard",
		GenreIDs: []uuid.UUID{novel.ID},
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, e.ID, &editor.UpdateEditorRequest{
		Name:     "Gallimard",
		GenreIDs: []uuid.UUID{poetry.ID},
		Version:  e.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{poetry.ID}, updated.GenreIDs)

	// The old association is gone; the novel genre is deletable again.
	require.NoError(t, f.genres.Delete(ctx, novel.ID))
}
