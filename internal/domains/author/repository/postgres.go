package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

const authorColumns = `id, name, birth_date, death_date, gender, version, created_at, updated_at`

func scanAuthor(row pgx.Row, a *author.Author) error {
	return row.Scan(
		&a.ID,
		&a.Name,
		&a.BirthDate,
		&a.DeathDate,
		&a.Gender,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, birth_date, death_date, gender, version)
        VALUES ($1, $2, $3, $4, 0)
        RETURNING ` + authorColumns

	var created author.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.BirthDate, a.DeathDate, a.Gender), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	var a author.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]author.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors by ids: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter author.Filter) ([]author.Author, int64, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
        ORDER BY name ASC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM authors WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	if err := r.pool.QueryRow(ctx, countQuery, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author, currentVersion int) (*author.Author, error) {
	query := `
        UPDATE authors
        SET name = $1,
            birth_date = $2,
            death_date = $3,
            gender = $4,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $5 AND version = $6
        RETURNING ` + authorColumns

	var updated author.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.Name, a.BirthDate, a.DeathDate, a.Gender, a.ID, currentVersion), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := r.pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, a.ID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check author existence: %w", checkErr)
			}
			if !exists {
				return nil, author.ErrAuthorNotFound
			}
			return nil, author.ErrVersionMismatch
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Books and their exemplaries go with the author via ON DELETE
	// CASCADE; the single statement keeps it all-or-nothing.
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}
