// Package aggregate computes derived attributes over the catalog in batch:
// child counts, latest-dated children and most-recent-per-group selections.
// Every operation takes a finite set of parent ids and answers with one
// grouped pass over the children, never one query per parent.
package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Relation names a parent/child edge of the catalog. The set is fixed;
// passing anything else is a programming error and panics.
type Relation string

const (
	AuthorBooks     Relation = "author_books"
	EditorBooks     Relation = "editor_books"
	BookExemplaries Relation = "book_exemplaries"
)

// DateField names a ranking column on the child side of a relation.
type DateField string

const (
	PublicationDate DateField = "publication_date"
	AcquisitionDate DateField = "acquisition_date"
)

// sentinelDate is the null-policy floor: children missing the ranking field
// sort as this earliest possible value, so a dated child always beats an
// undated one, while an undated child still represents an otherwise empty
// partition.
var sentinelDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// SentinelDate exposes the null-policy floor to engine implementations.
func SentinelDate() time.Time { return sentinelDate }

// LatestChild is the winner of a latest-by-date selection.
type LatestChild struct {
	ChildID uuid.UUID `json:"child_id"`
	Date    time.Time `json:"date"`
}

// Engine is the batch aggregation contract. Result maps always contain an
// entry for every requested parent id: 0 for counts, nil for records. An
// empty parent set yields an empty map, not an error. When several children
// tie on the maximum date, which one is returned is implementation-defined.
type Engine interface {
	// CountChildren counts the children of each parent over the relation.
	CountChildren(ctx context.Context, parentIDs []uuid.UUID, rel Relation) (map[uuid.UUID]int, error)

	// CountChildrenSince counts only children whose date field is on or
	// after the given instant. Children with a null date never match.
	CountChildrenSince(ctx context.Context, parentIDs []uuid.UUID, rel Relation, field DateField, since time.Time) (map[uuid.UUID]int, error)

	// CountDistinctGenres counts the distinct non-null genres across each
	// author's books.
	CountDistinctGenres(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int, error)

	// LatestByDate picks, per parent, the child with the maximum non-null
	// value of the date field. Parents whose children all lack the field
	// map to nil.
	LatestByDate(ctx context.Context, parentIDs []uuid.UUID, rel Relation, field DateField) (map[uuid.UUID]*LatestChild, error)

	// MostRecentByGroup partitions children by parent, ranks them by
	// COALESCE(field, sentinel) and returns the id of a child holding the
	// partition maximum. Parents with no children map to uuid.Nil.
	MostRecentByGroup(ctx context.Context, parentIDs []uuid.UUID, rel Relation, field DateField) (map[uuid.UUID]uuid.UUID, error)
}
