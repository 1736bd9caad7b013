package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/exemplary"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) exemplary.Repository {
	return &postgresRepository{pool: pool}
}

const exemplaryColumns = `id, identifier, book_id, acquisition_date, acquisition_price, version, created_at, updated_at`

func scanExemplary(row pgx.Row, e *exemplary.Exemplary) error {
	return row.Scan(
		&e.ID,
		&e.Identifier,
		&e.BookID,
		&e.AcquisitionDate,
		&e.AcquisitionPrice,
		&e.Version,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

const insertQuery = `
    INSERT INTO exemplaries (identifier, book_id, acquisition_date, acquisition_price, version)
    VALUES ($1, $2, $3, $4, 0)
    RETURNING ` + exemplaryColumns

func (r *postgresRepository) Create(ctx context.Context, e *exemplary.Exemplary) (*exemplary.Exemplary, error) {
	var created exemplary.Exemplary
	err := scanExemplary(r.pool.QueryRow(ctx, insertQuery,
		e.Identifier, e.BookID, e.AcquisitionDate, e.AcquisitionPrice), &created)
	if err != nil {
		return nil, translateError(err, "failed to create exemplary")
	}

	return &created, nil
}

func (r *postgresRepository) CreateBatch(ctx context.Context, exemplaries []*exemplary.Exemplary) ([]exemplary.Exemplary, error) {
	if len(exemplaries) == 0 {
		return nil, nil
	}

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]exemplary.Exemplary, error) {
		created := make([]exemplary.Exemplary, 0, len(exemplaries))
		for _, e := range exemplaries {
			var row exemplary.Exemplary
			err := scanExemplary(tx.QueryRow(ctx, insertQuery,
				e.Identifier, e.BookID, e.AcquisitionDate, e.AcquisitionPrice), &row)
			if err != nil {
				return nil, translateError(err, "failed to create exemplary batch")
			}
			created = append(created, row)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*exemplary.Exemplary, error) {
	query := `SELECT ` + exemplaryColumns + ` FROM exemplaries WHERE id = $1`

	var e exemplary.Exemplary
	err := scanExemplary(r.pool.QueryRow(ctx, query, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, exemplary.ErrExemplaryNotFound
		}
		return nil, fmt.Errorf("failed to get exemplary by id: %w", err)
	}

	return &e, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter exemplary.Filter) ([]exemplary.Exemplary, int64, error) {
	query := `
        SELECT ` + exemplaryColumns + `
        FROM exemplaries
        WHERE ($1::uuid IS NULL OR book_id = $1)
        ORDER BY identifier ASC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, filter.BookID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exemplaries: %w", err)
	}
	defer rows.Close()

	var exemplaries []exemplary.Exemplary
	for rows.Next() {
		var e exemplary.Exemplary
		if err := scanExemplary(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exemplary: %w", err)
		}
		exemplaries = append(exemplaries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating exemplaries: %w", err)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM exemplaries WHERE ($1::uuid IS NULL OR book_id = $1)`
	if err := r.pool.QueryRow(ctx, countQuery, filter.BookID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exemplaries: %w", err)
	}

	return exemplaries, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *exemplary.Exemplary, currentVersion int) (*exemplary.Exemplary, error) {
	query := `
        UPDATE exemplaries
        SET identifier = $1,
            acquisition_date = $2,
            acquisition_price = $3,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $4 AND version = $5
        RETURNING ` + exemplaryColumns

	var updated exemplary.Exemplary
	err := scanExemplary(r.pool.QueryRow(ctx, query,
		e.Identifier, e.AcquisitionDate, e.AcquisitionPrice, e.ID, currentVersion), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := r.pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM exemplaries WHERE id = $1)`, e.ID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check exemplary existence: %w", checkErr)
			}
			if !exists {
				return nil, exemplary.ErrExemplaryNotFound
			}
			return nil, exemplary.ErrVersionMismatch
		}
		return nil, translateError(err, "failed to update exemplary")
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM exemplaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exemplary: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return exemplary.ErrExemplaryNotFound
	}

	return nil
}

func translateError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return exemplary.ErrDuplicateIdentifier
		case "23503": // foreign_key_violation
			return exemplary.ErrUnknownBook
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
