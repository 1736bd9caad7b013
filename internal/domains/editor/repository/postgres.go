package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/editor"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) editor.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, e *editor.Editor) (*editor.Editor, error) {
	// Row and genre join rows are written in one transaction.
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*editor.Editor, error) {
		query := `
            INSERT INTO editors (name, creation_date, version)
            VALUES ($1, $2, 0)
            RETURNING id, name, creation_date, version, created_at, updated_at
        `

		var created editor.Editor
		err := tx.QueryRow(ctx, query, e.Name, e.CreationDate).Scan(
			&created.ID,
			&created.Name,
			&created.CreationDate,
			&created.Version,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create editor: %w", err)
		}

		if err := replaceGenres(ctx, tx, created.ID, e.GenreIDs); err != nil {
			return nil, err
		}
		created.GenreIDs = e.GenreIDs

		return &created, nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*editor.Editor, error) {
	query := `
        SELECT id, name, creation_date, version, created_at, updated_at
        FROM editors
        WHERE id = $1
    `

	var e editor.Editor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.Name,
		&e.CreationDate,
		&e.Version,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, editor.ErrEditorNotFound
		}
		return nil, fmt.Errorf("failed to get editor by id: %w", err)
	}

	genreIDs, err := r.loadGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	e.GenreIDs = genreIDs

	return &e, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter editor.Filter) ([]editor.Editor, int64, error) {
	query := `
        SELECT id, name, creation_date, version, created_at, updated_at
        FROM editors
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
        ORDER BY name ASC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query editors: %w", err)
	}
	defer rows.Close()

	var editors []editor.Editor
	for rows.Next() {
		var e editor.Editor
		if err := rows.Scan(&e.ID, &e.Name, &e.CreationDate, &e.Version, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan editor: %w", err)
		}
		editors = append(editors, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating editors: %w", err)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM editors WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	if err := r.pool.QueryRow(ctx, countQuery, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count editors: %w", err)
	}

	return editors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *editor.Editor, currentVersion int) (*editor.Editor, error) {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*editor.Editor, error) {
		query := `
            UPDATE editors
            SET name = $1,
                creation_date = $2,
                version = version + 1,
                updated_at = NOW()
            WHERE id = $3 AND version = $4
            RETURNING id, name, creation_date, version, created_at, updated_at
        `

		var updated editor.Editor
		err := tx.QueryRow(ctx, query, e.Name, e.CreationDate, e.ID, currentVersion).Scan(
			&updated.ID,
			&updated.Name,
			&updated.CreationDate,
			&updated.Version,
			&updated.CreatedAt,
			&updated.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				var exists bool
				if checkErr := tx.QueryRow(ctx,
					`SELECT EXISTS(SELECT 1 FROM editors WHERE id = $1)`, e.ID).Scan(&exists); checkErr != nil {
					return nil, fmt.Errorf("failed to check editor existence: %w", checkErr)
				}
				if !exists {
					return nil, editor.ErrEditorNotFound
				}
				return nil, editor.ErrVersionMismatch
			}
			return nil, fmt.Errorf("failed to update editor: %w", err)
		}

		if err := replaceGenres(ctx, tx, updated.ID, e.GenreIDs); err != nil {
			return nil, err
		}
		updated.GenreIDs = e.GenreIDs

		return &updated, nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// editor_genres rows cascade with the editor; books restrict.
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM editors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return editor.ErrEditorInUse
		}
		return fmt.Errorf("failed to delete editor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return editor.ErrEditorNotFound
	}

	return nil
}

func (r *postgresRepository) loadGenres(ctx context.Context, editorID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT genre_id FROM editor_genres WHERE editor_id = $1`, editorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load editor genres: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan genre id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating editor genres: %w", err)
	}

	return ids, nil
}

// replaceGenres rewrites the join rows for one editor inside the caller's
// transaction.
func replaceGenres(ctx context.Context, tx pgx.Tx, editorID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM editor_genres WHERE editor_id = $1`, editorID); err != nil {
		return fmt.Errorf("failed to clear editor genres: %w", err)
	}

	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO editor_genres (editor_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			editorID, genreID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return editor.ErrUnknownGenre
			}
			return fmt.Errorf("failed to link editor genre: %w", err)
		}
	}

	return nil
}
