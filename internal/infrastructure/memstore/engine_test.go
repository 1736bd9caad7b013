package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/aggregate"
	"library-backend/internal/domains/book"
)

func TestCountChildrenFillsDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := NewEngine(f.store)

	a := f.seedAuthor(t, "Victor Hugo")
	b := f.seedAuthor(t, "Alexandre Dumas")
	ed := f.seedEditor(t, "Gallimard")

	for _, title := range []string{"Les Misérables", "Notre-Dame de Paris", "Quatrevingt-treize"} {
		f.seedBook(t, &book.Book{Title: title, AuthorID: a.ID, EditorID: ed.ID})
	}

	counts, err := eng.CountChildren(ctx, []uuid.UUID{a.ID, b.ID}, aggregate.AuthorBooks)
	require.NoError(t, err)

	// Childless parents are present with an explicit zero.
	assert.Equal(t, map[uuid.UUID]int{a.ID: 3, b.ID: 0}, counts)
}

func TestCountChildrenEmptyParentSet(t *testing.T) {
	f := newFixture(t)
	eng := NewEngine(f.store)

	counts, err := eng.CountChildren(context.Background(), nil, aggregate.AuthorBooks)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCountChildrenSinceIgnoresUndated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := NewEngine(f.store)

	a := f.seedAuthor(t, "Victor Hugo")
	ed := f.seedEditor(t, "Gallimard")
	b := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: ed.ID})

	f.seedExemplary(t, b.ID, "MIS-1", datePtr(2024, time.June, 1))
	f.seedExemplary(t, b.ID, "MIS-2", datePtr(2020, time.June, 1))
	f.seedExemplary(t, b.ID, "MIS-3", nil)

	counts, err := eng.CountChildrenSince(ctx, []uuid.UUID{b.ID},
		aggregate.BookExemplaries, aggregate.AcquisitionDate,
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, counts[b.ID])
}

func TestCountDistinctGenres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := NewEngine(f.store)

	novel := f.seedGenre(t, "novel")
	poetry := f.seedGenre(t, "poetry")
	a := f.seedAuthor(t, "Victor Hugo")
	ed := f.seedEditor(t, "Gallimard")

	f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, GenreID: &novel.ID, EditorID: ed.ID})
	f.seedBook(t, &book.Book{Title: "Notre-Dame de Paris", AuthorID: a.ID, GenreID: &novel.ID, EditorID: ed.ID})
	f.seedBook(t, &book.Book{Title: "Les Contemplations", AuthorID: a.ID, GenreID: &poetry.ID, EditorID: ed.ID})
	f.seedBook(t, &book.Book{Title: "Quatrevingt-treize", AuthorID: a.ID, EditorID: ed.ID}) // no genre

	counts, err := eng.CountDistinctGenres(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[a.ID])
}

func TestLatestByDateSkipsUndated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := NewEngine(f.store)

	a := f.seedAuthor(t, "Victor Hugo")
	ed := f.seedEditor(t, "Gallimard")
	withDates := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: ed.ID})
	allNull := f.seedBook(t, &book.Book{Title: "Notre-Dame de Paris", AuthorID: a.ID, EditorID: ed.ID})

	f.seedExemplary(t, withDates.ID, "MIS-1", datePtr(2020, time.June, 1))
	newest := f.seedExemplary(t, withDates.ID, "MIS-2", datePtr(2024, time.June, 1))
	f.seedExemplary(t, withDates.ID, "MIS-3", nil)
	f.seedExemplary(t, allNull.ID, "NDP-1", nil)

	latest, err := eng.LatestByDate(ctx, []uuid.UUID{withDates.ID, allNull.ID},
		aggregate.BookExemplaries, aggregate.AcquisitionDate)
	require.NoError(t, err)

	require.NotNil(t, latest[withDates.ID])
	assert.Equal(t, newest.ID, latest[withDates.ID].ChildID)

	// A parent whose children all lack the date maps to nil, not an
	// arbitrary member.
	assert.Nil(t, latest[allNull.ID])
}

func TestMostRecentByGroupNullPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eng := NewEngine(f.store)

	a := f.seedAuthor(t, "Victor Hugo")
	ed := f.seedEditor(t, "Gallimard")
	mixed := f.seedBook(t, &book.Book{Title: "Les Misérables", AuthorID: a.ID, EditorID: ed.ID})
	allNull := f.seedBook(t, &book.Book{Title: "Notre-Dame de Paris", AuthorID: a.ID, EditorID: ed.ID})
	empty := f.seedBook(t, &book.Book{Title: "Quatrevingt-treize", AuthorID: a.ID, EditorID: ed.ID})

	f.seedExemplary(t, mixed.ID, "MIS-1", nil)
	dated := f.seedExemplary(t, mixed.ID, "MIS-2", datePtr(2021, time.March, 1))

	undated1 := f.seedExemplary(t, allNull.ID, "NDP-1", nil)
	undated2 := f.seedExemplary(t, allNull.ID, "NDP-2", nil)

	recent, err := eng.MostRecentByGroup(ctx, []uuid.UUID{mixed.ID, allNull.ID, empty.ID},
		aggregate.BookExemplaries, aggregate.AcquisitionDate)
	require.NoError(t, err)

	// A dated child always beats an undated one.
	assert.Equal(t, dated.ID, recent[mixed.ID])

	// All-null partitions still elect a member.
	assert.Contains(t, []uuid.UUID{undated1.ID, undated2.ID}, recent[allNull.ID])

	// Childless parents map to the nil id.
	assert.Equal(t, uuid.Nil, recent[empty.ID])
}

func TestEnginePanicsOnUnknownRelation(t *testing.T) {
	f := newFixture(t)
	eng := NewEngine(f.store)

	assert.Panics(t, func() {
		_, _ = eng.CountChildren(context.Background(), []uuid.UUID{uuid.New()}, aggregate.Relation("bogus"))
	})
	assert.Panics(t, func() {
		_, _ = eng.LatestByDate(context.Background(), []uuid.UUID{uuid.New()},
			aggregate.AuthorBooks, aggregate.AcquisitionDate)
	})
}
