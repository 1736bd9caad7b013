package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/aggregate"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/exemplary"
)

// engine implements aggregate.Engine with one pass over the child table per
// call, mirroring the grouped-query contract of the SQL implementation.
type engine struct {
	store *Store
}

func NewEngine(store *Store) aggregate.Engine {
	return &engine{store: store}
}

// childRow is one child of a relation, flattened to what the aggregations
// need: the owning parent, the child id and the optional ranking date.
type childRow struct {
	parent uuid.UUID
	id     uuid.UUID
	date   *time.Time
}

var dateFields = map[aggregate.Relation]map[aggregate.DateField]bool{
	aggregate.AuthorBooks:     {aggregate.PublicationDate: true},
	aggregate.EditorBooks:     {aggregate.PublicationDate: true},
	aggregate.BookExemplaries: {aggregate.AcquisitionDate: true},
}

func mustDateField(rel aggregate.Relation, field aggregate.DateField) {
	if !dateFields[rel][field] {
		panic(fmt.Sprintf("aggregate: relation %q has no date field %q", rel, field))
	}
}

// children streams every row of the relation's child table. The date is
// filled only when a field is requested and valid for the relation.
func (e *engine) children(txn *memdb.Txn, rel aggregate.Relation, field aggregate.DateField) ([]childRow, error) {
	switch rel {
	case aggregate.AuthorBooks, aggregate.EditorBooks:
		it, err := txn.Get(tableBook, "id")
		if err != nil {
			return nil, err
		}
		var rows []childRow
		for raw := it.Next(); raw != nil; raw = it.Next() {
			b := raw.(*book.Book)
			parent := b.AuthorID
			if rel == aggregate.EditorBooks {
				parent = b.EditorID
			}
			row := childRow{parent: parent, id: b.ID}
			if field != "" {
				row.date = b.PublicationDate
			}
			rows = append(rows, row)
		}
		return rows, nil

	case aggregate.BookExemplaries:
		it, err := txn.Get(tableExemplary, "id")
		if err != nil {
			return nil, err
		}
		var rows []childRow
		for raw := it.Next(); raw != nil; raw = it.Next() {
			x := raw.(*exemplary.Exemplary)
			row := childRow{parent: x.BookID, id: x.ID}
			if field != "" {
				row.date = x.AcquisitionDate
			}
			rows = append(rows, row)
		}
		return rows, nil

	default:
		panic(fmt.Sprintf("aggregate: unknown relation %q", rel))
	}
}

func (e *engine) CountChildren(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation) (map[uuid.UUID]int, error) {
	result := zeroCounts(parentIDs)
	if len(parentIDs) == 0 {
		return result, nil
	}

	txn := e.store.db.Txn(false)
	defer txn.Abort()

	rows, err := e.children(txn, rel, "")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if _, wanted := result[row.parent]; wanted {
			result[row.parent]++
		}
	}

	return result, nil
}

func (e *engine) CountChildrenSince(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation, field aggregate.DateField, since time.Time) (map[uuid.UUID]int, error) {
	mustDateField(rel, field)

	result := zeroCounts(parentIDs)
	if len(parentIDs) == 0 {
		return result, nil
	}

	txn := e.store.db.Txn(false)
	defer txn.Abort()

	rows, err := e.children(txn, rel, field)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.date == nil || row.date.Before(since) {
			continue
		}
		if _, wanted := result[row.parent]; wanted {
			result[row.parent]++
		}
	}

	return result, nil
}

func (e *engine) CountDistinctGenres(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := zeroCounts(authorIDs)
	if len(authorIDs) == 0 {
		return result, nil
	}

	txn := e.store.db.Txn(false)
	defer txn.Abort()

	genres := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(authorIDs))
	it, err := txn.Get(tableBook, "id")
	if err != nil {
		return nil, err
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := raw.(*book.Book)
		if b.GenreID == nil {
			continue
		}
		if _, wanted := result[b.AuthorID]; !wanted {
			continue
		}
		if genres[b.AuthorID] == nil {
			genres[b.AuthorID] = make(map[uuid.UUID]struct{})
		}
		genres[b.AuthorID][*b.GenreID] = struct{}{}
	}
	for id, set := range genres {
		result[id] = len(set)
	}

	return result, nil
}

func (e *engine) LatestByDate(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation, field aggregate.DateField) (map[uuid.UUID]*aggregate.LatestChild, error) {
	mustDateField(rel, field)

	result := make(map[uuid.UUID]*aggregate.LatestChild, len(parentIDs))
	for _, id := range parentIDs {
		result[id] = nil
	}
	if len(parentIDs) == 0 {
		return result, nil
	}

	txn := e.store.db.Txn(false)
	defer txn.Abort()

	rows, err := e.children(txn, rel, field)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.date == nil {
			continue
		}
		best, wanted := result[row.parent]
		if !wanted {
			continue
		}
		if best == nil || row.date.After(best.Date) {
			result[row.parent] = &aggregate.LatestChild{ChildID: row.id, Date: *row.date}
		}
	}

	return result, nil
}

func (e *engine) MostRecentByGroup(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation, field aggregate.DateField) (map[uuid.UUID]uuid.UUID, error) {
	mustDateField(rel, field)

	result := make(map[uuid.UUID]uuid.UUID, len(parentIDs))
	for _, id := range parentIDs {
		result[id] = uuid.Nil
	}
	if len(parentIDs) == 0 {
		return result, nil
	}

	txn := e.store.db.Txn(false)
	defer txn.Abort()

	rows, err := e.children(txn, rel, field)
	if err != nil {
		return nil, err
	}

	// Rank by COALESCE(date, sentinel): a dated child always beats an
	// undated one, an undated child still represents an otherwise empty
	// partition.
	best := make(map[uuid.UUID]time.Time, len(parentIDs))
	for _, row := range rows {
		if _, wanted := result[row.parent]; !wanted {
			continue
		}
		rank := aggregate.SentinelDate()
		if row.date != nil {
			rank = *row.date
		}
		prev, seen := best[row.parent]
		if !seen || rank.After(prev) {
			best[row.parent] = rank
			result[row.parent] = row.id
		}
	}

	return result, nil
}

func zeroCounts(ids []uuid.UUID) map[uuid.UUID]int {
	result := make(map[uuid.UUID]int, len(ids))
	for _, id := range ids {
		result[id] = 0
	}
	return result
}

