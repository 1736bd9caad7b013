package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/aggregate"
)

// relMeta maps a relation to its child table and the column referencing the
// parent. Column and table names come from this fixed table, never from
// caller input, so building SQL by string formatting stays safe.
type relMeta struct {
	childTable string
	parentCol  string
}

var relations = map[aggregate.Relation]relMeta{
	aggregate.AuthorBooks:     {childTable: "books", parentCol: "author_id"},
	aggregate.EditorBooks:     {childTable: "books", parentCol: "editor_id"},
	aggregate.BookExemplaries: {childTable: "exemplaries", parentCol: "book_id"},
}

var dateFields = map[aggregate.Relation]map[aggregate.DateField]bool{
	aggregate.AuthorBooks:     {aggregate.PublicationDate: true},
	aggregate.EditorBooks:     {aggregate.PublicationDate: true},
	aggregate.BookExemplaries: {aggregate.AcquisitionDate: true},
}

func mustRelation(rel aggregate.Relation) relMeta {
	meta, ok := relations[rel]
	if !ok {
		panic(fmt.Sprintf("aggregate: unknown relation %q", rel))
	}
	return meta
}

func mustDateField(rel aggregate.Relation, field aggregate.DateField) {
	if !dateFields[rel][field] {
		panic(fmt.Sprintf("aggregate: relation %q has no date field %q", rel, field))
	}
}

// engine implements aggregate.Engine with one grouped query per call.
type engine struct {
	pool *pgxpool.Pool
}

func NewEngine(pool *pgxpool.Pool) aggregate.Engine {
	return &engine{pool: pool}
}

func (e *engine) CountChildren(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation) (map[uuid.UUID]int, error) {
	meta := mustRelation(rel)

	result := make(map[uuid.UUID]int, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
        SELECT %[1]s, COUNT(*)
        FROM %[2]s
        WHERE %[1]s = ANY($1)
        GROUP BY %[1]s
    `, meta.parentCol, meta.childTable)

	if err := e.scanCounts(ctx, query, parentIDs, result); err != nil {
		return nil, err
	}

	fillZero(result, parentIDs)
	return result, nil
}

func (e *engine) CountChildrenSince(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation, field aggregate.DateField, since time.Time) (map[uuid.UUID]int, error) {
	meta := mustRelation(rel)
	mustDateField(rel, field)

	result := make(map[uuid.UUID]int, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
        SELECT %[1]s, COUNT(*)
        FROM %[2]s
        WHERE %[1]s = ANY($1) AND %[3]s >= $2
        GROUP BY %[1]s
    `, meta.parentCol, meta.childTable, string(field))

	rows, err := e.pool.Query(ctx, query, parentIDs, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count children since: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		result[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}

	fillZero(result, parentIDs)
	return result, nil
}

func (e *engine) CountDistinctGenres(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	query := `
        SELECT author_id, COUNT(DISTINCT genre_id)
        FROM books
        WHERE author_id = ANY($1) AND genre_id IS NOT NULL
        GROUP BY author_id
    `

	if err := e.scanCounts(ctx, query, authorIDs, result); err != nil {
		return nil, err
	}

	fillZero(result, authorIDs)
	return result, nil
}

func (e *engine) LatestByDate(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation, field aggregate.DateField) (map[uuid.UUID]*aggregate.LatestChild, error) {
	meta := mustRelation(rel)
	mustDateField(rel, field)

	result := make(map[uuid.UUID]*aggregate.LatestChild, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	// DISTINCT ON keeps one row per parent, the first of the descending
	// date order. Ties on the date yield whichever row sorts first;
	// deliberately unspecified.
	query := fmt.Sprintf(`
        SELECT DISTINCT ON (%[1]s) %[1]s, id, %[3]s
        FROM %[2]s
        WHERE %[1]s = ANY($1) AND %[3]s IS NOT NULL
        ORDER BY %[1]s, %[3]s DESC
    `, meta.parentCol, meta.childTable, string(field))

	rows, err := e.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest by date: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var parentID, childID uuid.UUID
		var d time.Time
		if err := rows.Scan(&parentID, &childID, &d); err != nil {
			return nil, fmt.Errorf("failed to scan latest child: %w", err)
		}
		result[parentID] = &aggregate.LatestChild{ChildID: childID, Date: d}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating latest children: %w", err)
	}

	for _, id := range parentIDs {
		if _, ok := result[id]; !ok {
			result[id] = nil
		}
	}
	return result, nil
}

func (e *engine) MostRecentByGroup(ctx context.Context, parentIDs []uuid.UUID, rel aggregate.Relation, field aggregate.DateField) (map[uuid.UUID]uuid.UUID, error) {
	meta := mustRelation(rel)
	mustDateField(rel, field)

	result := make(map[uuid.UUID]uuid.UUID, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	// Windowed partition max over COALESCE(field, sentinel): a missing
	// date sorts earliest, so it only wins when nothing in the partition
	// is dated. The outer filter joins rows back against their partition
	// maximum; ties are implementation-defined.
	query := fmt.Sprintf(`
        SELECT parent_id, id FROM (
            SELECT %[1]s AS parent_id, id,
                   COALESCE(%[3]s, DATE '0001-01-01') AS rank_date,
                   MAX(COALESCE(%[3]s, DATE '0001-01-01')) OVER (PARTITION BY %[1]s) AS max_rank
            FROM %[2]s
            WHERE %[1]s = ANY($1)
        ) ranked
        WHERE rank_date = max_rank
    `, meta.parentCol, meta.childTable, string(field))

	rows, err := e.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query most recent by group: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var parentID, childID uuid.UUID
		if err := rows.Scan(&parentID, &childID); err != nil {
			return nil, fmt.Errorf("failed to scan representative: %w", err)
		}
		// Tied rows arrive as multiple entries per parent; the last scan
		// wins and any of them is a valid representative.
		result[parentID] = childID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating representatives: %w", err)
	}

	for _, id := range parentIDs {
		if _, ok := result[id]; !ok {
			result[id] = uuid.Nil
		}
	}
	return result, nil
}

func (e *engine) scanCounts(ctx context.Context, query string, ids []uuid.UUID, into map[uuid.UUID]int) error {
	rows, err := e.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return fmt.Errorf("failed to scan count: %w", err)
		}
		into[id] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating counts: %w", err)
	}
	return nil
}

// fillZero guarantees an entry for every requested parent.
func fillZero(m map[uuid.UUID]int, ids []uuid.UUID) {
	for _, id := range ids {
		if _, ok := m[id]; !ok {
			m[id] = 0
		}
	}
}
