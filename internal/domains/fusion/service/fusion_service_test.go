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
	"library-backend/internal/domains/fusion"
	"library-backend/internal/infrastructure/memstore"
)

type fixture struct {
	svc         fusion.Service
	authors     author.Repository
	books       book.Repository
	exemplaries exemplary.Repository

	authorID uuid.UUID
	editorID uuid.UUID
}

func newFixture(t *testing.T, ttl time.Duration) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := memstore.New()
	require.NoError(t, err)

	authors := memstore.NewAuthorRepository(store)
	editors := memstore.NewEditorRepository(store)
	books := memstore.NewBookRepository(store)
	exemplaries := memstore.NewExemplaryRepository(store)
	engine := memstore.NewEngine(store)

	a, err := authors.Create(ctx, &author.Author{Name: "Victor Hugo"})
	require.NoError(t, err)
	e, err := editors.Create(ctx, &editor.Editor{Name: "Gallimard"})
	require.NoError(t, err)

	return &fixture{
		svc:         NewFusionService(books, engine, fusion.NewRegistry(ttl)),
		authors:     authors,
		books:       books,
		exemplaries: exemplaries,
		authorID:    a.ID,
		editorID:    e.ID,
	}
}

func (f *fixture) seedBook(t *testing.T, title string, authorID uuid.UUID) *book.Book {
	t.Helper()
	b, err := f.books.Create(context.Background(), &book.Book{
		Title:    title,
		AuthorID: authorID,
		EditorID: f.editorID,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) seedExemplary(t *testing.T, bookID uuid.UUID, identifier string) *exemplary.Exemplary {
	t.Helper()
	e, err := f.exemplaries.Create(context.Background(), &exemplary.Exemplary{
		Identifier: identifier,
		BookID:     bookID,
	})
	require.NoError(t, err)
	return e
}

// startSession opens a session over two fresh duplicate books and returns
// it with the candidates in order.
func startSession(t *testing.T, f *fixture, titles ...string) (*fusion.Session, []*book.Book) {
	t.Helper()

	books := make([]*book.Book, 0, len(titles))
	ids := make([]uuid.UUID, 0, len(titles))
	for _, title := range titles {
		b := f.seedBook(t, title, f.authorID)
		books = append(books, b)
		ids = append(ids, b.ID)
	}

	session, err := f.svc.Start(context.Background(), ids)
	require.NoError(t, err)
	return session, books
}

func TestStartPreconditions(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()

	b1 := f.seedBook(t, "Les Misérables", f.authorID)
	b2 := f.seedBook(t, "Les Misérables (réédition)", f.authorID)

	t.Run("needs at least two books", func(t *testing.T) {
		_, err := f.svc.Start(ctx, []uuid.UUID{b1.ID})
		require.ErrorIs(t, err, fusion.ErrInvalidSelection)
	})

	t.Run("rejects unknown candidates", func(t *testing.T) {
		_, err := f.svc.Start(ctx, []uuid.UUID{b1.ID, uuid.New()})
		require.ErrorIs(t, err, fusion.ErrInvalidSelection)
	})

	t.Run("rejects candidates from different authors", func(t *testing.T) {
		other, err := f.authors.Create(ctx, &author.Author{Name: "Alexandre Dumas"})
		require.NoError(t, err)
		b3 := f.seedBook(t, "Le Comte de Monte-Cristo", other.ID)

		_, err = f.svc.Start(ctx, []uuid.UUID{b1.ID, b3.ID})
		require.ErrorIs(t, err, fusion.ErrMixedAuthors)
	})

	t.Run("opens in CHOICE with first candidate as master", func(t *testing.T) {
		f.seedExemplary(t, b1.ID, "MIS-1")
		f.seedExemplary(t, b2.ID, "MIS-2")

		session, err := f.svc.Start(ctx, []uuid.UUID{b1.ID, b2.ID})
		require.NoError(t, err)
		assert.Equal(t, fusion.StateChoice, session.State)
		assert.Equal(t, 1, session.MasterIndex)
		assert.Equal(t, 2, session.ExemplaryCount)
		assert.Len(t, session.Candidates, 2)
	})
}

func TestChooseMaster(t *testing.T) {
	f := newFixture(t, time.Minute)
	session, _ := startSession(t, f, "Les Misérables", "Les Misérables bis", "Les Misérables ter")

	t.Run("rejects out of range index", func(t *testing.T) {
		_, err := f.svc.ChooseMaster(session.ID, 0)
		require.ErrorIs(t, err, fusion.ErrInvalidMaster)
		_, err = f.svc.ChooseMaster(session.ID, 4)
		require.ErrorIs(t, err, fusion.ErrInvalidMaster)
	})

	t.Run("stores the selection", func(t *testing.T) {
		updated, err := f.svc.ChooseMaster(session.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.MasterIndex)
	})

	t.Run("only valid in CHOICE", func(t *testing.T) {
		_, err := f.svc.Fuse(session.ID)
		require.NoError(t, err)

		_, err = f.svc.ChooseMaster(session.ID, 1)
		require.ErrorIs(t, err, fusion.ErrInvalidState)
	})
}

func TestFuseRecordsMismatchWarnings(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()

	pages := 1488
	b1, err := f.books.Create(ctx, &book.Book{
		Title:     "Les Misérables",
		AuthorID:  f.authorID,
		EditorID:  f.editorID,
		PageCount: &pages,
	})
	require.NoError(t, err)
	b2 := f.seedBook(t, "Les Miserables", f.authorID)

	session, err := f.svc.Start(ctx, []uuid.UUID{b1.ID, b2.ID})
	require.NoError(t, err)

	fused, err := f.svc.Fuse(session.ID)
	require.NoError(t, err)
	assert.Equal(t, fusion.StateValidation, fused.State)

	byField := make(map[string][]string)
	for _, m := range fused.Mismatches {
		byField[m.Field] = m.Values
	}

	assert.ElementsMatch(t, []string{"Les Misérables", "Les Miserables"}, byField["title"])
	assert.ElementsMatch(t, []string{"1488", ""}, byField["page_count"])

	// Agreeing fields are not reported.
	assert.NotContains(t, byField, "author")
	assert.NotContains(t, byField, "editor")
}

func TestConfirmDeletesLosersAndExemplaries(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()

	session, books := startSession(t, f, "Les Misérables", "Les Misérables bis")
	master, loser := books[0], books[1]

	kept := f.seedExemplary(t, master.ID, "MIS-1")
	lost := f.seedExemplary(t, loser.ID, "MIS-2")

	_, err := f.svc.Fuse(session.ID)
	require.NoError(t, err)

	confirmed, err := f.svc.Confirm(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, fusion.StateCommitted, confirmed.State)

	// The master and its exemplaries survive.
	_, err = f.books.GetByID(ctx, master.ID)
	require.NoError(t, err)
	_, err = f.exemplaries.GetByID(ctx, kept.ID)
	require.NoError(t, err)

	// The loser is gone and its exemplaries go with it; they are not
	// re-parented onto the master.
	_, err = f.books.GetByID(ctx, loser.ID)
	require.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = f.exemplaries.GetByID(ctx, lost.ID)
	require.ErrorIs(t, err, exemplary.ErrExemplaryNotFound)
}

func TestConfirmRespectsChosenMaster(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()

	session, books := startSession(t, f, "Les Misérables", "Les Misérables bis")

	_, err := f.svc.ChooseMaster(session.ID, 2)
	require.NoError(t, err)
	_, err = f.svc.Fuse(session.ID)
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.books.GetByID(ctx, books[0].ID)
	require.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = f.books.GetByID(ctx, books[1].ID)
	require.NoError(t, err)
}

func TestConfirmOnlyValidInValidation(t *testing.T) {
	f := newFixture(t, time.Minute)
	session, _ := startSession(t, f, "Les Misérables", "Les Misérables bis")

	_, err := f.svc.Confirm(context.Background(), session.ID)
	require.ErrorIs(t, err, fusion.ErrInvalidState)
}

func TestConcurrentModificationCancelsSession(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()

	session, books := startSession(t, f, "Les Misérables", "Les Misérables bis")
	loser := books[1]

	_, err := f.svc.Fuse(session.ID)
	require.NoError(t, err)

	// Another writer touches the loser between Fuse and Confirm.
	loser.Title = "Les Misérables, edition définitive"
	_, err = f.books.Update(ctx, loser, loser.Version)
	require.NoError(t, err)

	cancelled, err := f.svc.Confirm(ctx, session.ID)
	require.ErrorIs(t, err, fusion.ErrConcurrentModification)
	require.NotNil(t, cancelled)
	assert.Equal(t, fusion.StateCancelled, cancelled.State)

	// Nothing was deleted.
	_, err = f.books.GetByID(ctx, loser.ID)
	require.NoError(t, err)

	// The session is terminal now.
	_, err = f.svc.Confirm(ctx, session.ID)
	require.ErrorIs(t, err, fusion.ErrInvalidState)
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()

	session, books := startSession(t, f, "Les Misérables", "Les Misérables bis")

	cancelled, err := f.svc.Cancel(session.ID)
	require.NoError(t, err)
	assert.Equal(t, fusion.StateCancelled, cancelled.State)

	for _, b := range books {
		_, err := f.books.GetByID(ctx, b.ID)
		require.NoError(t, err)
	}

	_, err = f.svc.Cancel(session.ID)
	require.ErrorIs(t, err, fusion.ErrInvalidState)
}

func TestExpiredSessionIsGone(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	session, _ := startSession(t, f, "Les Misérables", "Les Misérables bis")

	time.Sleep(5 * time.Millisecond)

	_, err := f.svc.Fuse(session.ID)
	require.ErrorIs(t, err, fusion.ErrSessionNotFound)
}
