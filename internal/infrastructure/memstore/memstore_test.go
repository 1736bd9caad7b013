package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/editor"
	"library-backend/internal/domains/exemplary"
	"library-backend/internal/domains/genre"
)

// fixture bundles a fresh store with every repository, so tests exercise
// the same wiring the container builds.
type fixture struct {
	store       *Store
	genres      genre.Repository
	editors     editor.Repository
	authors     author.Repository
	books       book.Repository
	exemplaries exemplary.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := New()
	require.NoError(t, err)

	return &fixture{
		store:       store,
		genres:      NewGenreRepository(store),
		editors:     NewEditorRepository(store),
		authors:     NewAuthorRepository(store),
		books:       NewBookRepository(store),
		exemplaries: NewExemplaryRepository(store),
	}
}

func (f *fixture) seedAuthor(t *testing.T, name string) *author.Author {
	t.Helper()
	a, err := f.authors.Create(context.Background(), &author.Author{Name: name})
	require.NoError(t, err)
	return a
}

func (f *fixture) seedEditor(t *testing.T, name string, genreIDs ...uuid.UUID) *editor.Editor {
	t.Helper()
	e, err := f.editors.Create(context.Background(), &editor.Editor{Name: name, GenreIDs: genreIDs})
	require.NoError(t, err)
	return e
}

func (f *fixture) seedGenre(t *testing.T, name string) *genre.Genre {
	t.Helper()
	g, err := f.genres.Create(context.Background(), &genre.Genre{Name: name})
	require.NoError(t, err)
	return g
}

func (f *fixture) seedBook(t *testing.T, b *book.Book) *book.Book {
	t.Helper()
	created, err := f.books.Create(context.Background(), b)
	require.NoError(t, err)
	return created
}

func (f *fixture) seedExemplary(t *testing.T, bookID uuid.UUID, identifier string, acquired *time.Time) *exemplary.Exemplary {
	t.Helper()
	e, err := f.exemplaries.Create(context.Background(), &exemplary.Exemplary{
		Identifier:      identifier,
		BookID:          bookID,
		AcquisitionDate: acquired,
	})
	require.NoError(t, err)
	return e
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestBookUniqueTitlePerAuthor(t *testing.T) {
	f := newFixture(t)
	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")

	f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: e.ID})

	_, err := f.books.Create(context.Background(), &book.Book{
		Title:    "Les Misérables",
		AuthorID: a.ID,
		EditorID: e.ID,
	})
	require.ErrorIs(t, err, book.ErrDuplicateTitle)

	// The same title under another author is fine.
	other := f.seedAuthor(t, "Alexandre Dumas")
	f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: other.ID, EditorID: e.ID})
}

func TestBookRejectsUnknownRelations(t *testing.T) {
	f := newFixture(t)
	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")

	_, err := f.books.Create(context.Background(), &book.Book{
		Title:    "Notre-Dame de Paris",
		AuthorID: uuid.New(),
		EditorID: e.ID,
	})
	require.ErrorIs(t, err, book.ErrUnknownRelation)

	ghostGenre := uuid.New()
	_, err = f.books.Create(context.Background(), &book.Book{
		Title:    "Notre-Dame de Paris",
		AuthorID: a.ID,
		GenreID:  &ghostGenre,
		EditorID: e.ID,
	})
	require.ErrorIs(t, err, book.ErrUnknownRelation)
}

func TestAuthorDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")
	b := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: e.ID})
	x := f.seedExemplary(t, b.ID, "MIS-1", nil)

	require.NoError(t, f.authors.Delete(ctx, a.ID))

	_, err := f.books.GetByID(ctx, b.ID)
	require.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = f.exemplaries.GetByID(ctx, x.ID)
	require.ErrorIs(t, err, exemplary.ErrExemplaryNotFound)
}

func TestGenreDeleteRestricted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.seedGenre(t, "novel")
	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")
	b := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, GenreID: &g.ID, EditorID: e.ID})

	require.ErrorIs(t, f.genres.Delete(ctx, g.ID), genre.ErrGenreInUse)

	// An editor holding the genre also blocks deletion.
	g2 := f.seedGenre(t, "poetry")
	f.seedEditor(t, "Seuil", g2.ID)
	require.ErrorIs(t, f.genres.Delete(ctx, g2.ID), genre.ErrGenreInUse)

	// Once unreferenced, the genre goes away.
	require.NoError(t, f.books.Delete(ctx, b.ID))
	require.NoError(t, f.genres.Delete(ctx, g.ID))
}

func TestEditorDeleteRestricted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")
	b := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: e.ID})

	require.ErrorIs(t, f.editors.Delete(ctx, e.ID), editor.ErrEditorInUse)

	require.NoError(t, f.books.Delete(ctx, b.ID))
	require.NoError(t, f.editors.Delete(ctx, e.ID))
}

func TestExemplaryBatchIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")
	b := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: e.ID})
	f.seedExemplary(t, b.ID, "MIS-2", nil)

	batch := []*exemplary.Exemplary{
		{Identifier: "MIS-1", BookID: b.ID},
		{Identifier: "MIS-2", BookID: b.ID}, // already taken
		{Identifier: "MIS-3", BookID: b.ID},
	}
	_, err := f.exemplaries.CreateBatch(ctx, batch)
	require.ErrorIs(t, err, exemplary.ErrDuplicateIdentifier)

	// The conflicting batch left nothing behind.
	all, total, err := f.exemplaries.GetAll(ctx, exemplary.Filter{BookID: &b.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, all, 1)
	require.Equal(t, "MIS-2", all[0].Identifier)
}

func TestOptimisticLocking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.seedGenre(t, "novel")

	updated, err := f.genres.Update(ctx, &genre.Genre{ID: g.ID, Name: "roman"}, g.Version)
	require.NoError(t, err)
	require.Equal(t, g.Version+1, updated.Version)

	// A second writer still holding the old version loses.
	_, err = f.genres.Update(ctx, &genre.Genre{ID: g.ID, Name: "essai"}, g.Version)
	require.ErrorIs(t, err, genre.ErrVersionMismatch)
}

func TestDeleteBatchIfUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.seedAuthor(t, "Victor Hugo")
	e := f.seedEditor(t, "Gallimard")
	b1 := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: e.ID})
	b2 := f.seedBook(t, &book.Book{Title: "Notre-Dame de Paris", AuthorID: a.ID, EditorID: e.ID})
	x := f.seedExemplary(t, b1.ID, "MIS-1", nil)

	t.Run("succeeds when versions match", func(t *testing.T) {
		err := f.books.DeleteBatchIfUnchanged(ctx, []book.VersionedID{
			{ID: b1.ID, Version: b1.Version},
		})
		require.NoError(t, err)

		_, err = f.books.GetByID(ctx, b1.ID)
		require.ErrorIs(t, err, book.ErrBookNotFound)
		_, err = f.exemplaries.GetByID(ctx, x.ID)
		require.ErrorIs(t, err, exemplary.ErrExemplaryNotFound)
	})

	t.Run("aborts whole batch on stale version", func(t *testing.T) {
		_, err := f.books.Update(ctx, b2, b2.Version)
		require.NoError(t, err)

		b3 := f.seedBook(t, &book.Book{Title: "Quatrevingt-treize", AuthorID: a.ID, EditorID: e.ID})

		err = f.books.DeleteBatchIfUnchanged(ctx, []book.VersionedID{
			{ID: b2.ID, Version: b2.Version}, // stale
			{ID: b3.ID, Version: b3.Version},
		})
		require.ErrorIs(t, err, book.ErrVersionMismatch)

		// Nothing in the batch was deleted.
		_, err = f.books.GetByID(ctx, b2.ID)
		require.NoError(t, err)
		_, err = f.books.GetByID(ctx, b3.ID)
		require.NoError(t, err)
	})
}
