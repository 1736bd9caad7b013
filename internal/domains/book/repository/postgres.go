package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, author_id, genre_id, editor_id, description, summary,
    cover, page_count, edition_stopped, publication_date, isbn, version, created_at, updated_at`

func scanBook(row pgx.Row, b *book.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.GenreID,
		&b.EditorID,
		&b.Description,
		&b.Summary,
		&b.Cover,
		&b.PageCount,
		&b.EditionStopped,
		&b.PublicationDate,
		&b.ISBN,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (title, author_id, genre_id, editor_id, description, summary,
            cover, page_count, edition_stopped, publication_date, isbn, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0)
        RETURNING ` + bookColumns

	var created book.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.AuthorID, b.GenreID, b.EditorID, b.Description, b.Summary,
		b.Cover, b.PageCount, b.EditionStopped, b.PublicationDate, b.ISBN), &created)
	if err != nil {
		return nil, translateError(err, "failed to create book")
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var b book.Book
	err := scanBook(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by ids: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter book.Filter) ([]book.Book, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+bookColumns+` FROM books%s ORDER BY title ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books%s`, where)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book, currentVersion int) (*book.Book, error) {
	query := `
        UPDATE books
        SET title = $1,
            genre_id = $2,
            editor_id = $3,
            description = $4,
            summary = $5,
            cover = $6,
            page_count = $7,
            edition_stopped = $8,
            publication_date = $9,
            isbn = $10,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $11 AND version = $12
        RETURNING ` + bookColumns

	var updated book.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.GenreID, b.EditorID, b.Description, b.Summary, b.Cover,
		b.PageCount, b.EditionStopped, b.PublicationDate, b.ISBN,
		b.ID, currentVersion), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := r.pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, b.ID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check book existence: %w", checkErr)
			}
			if !exists {
				return nil, book.ErrBookNotFound
			}
			return nil, book.ErrVersionMismatch
		}
		return nil, translateError(err, "failed to update book")
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Exemplaries cascade with the book.
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) DeleteBatchIfUnchanged(ctx context.Context, books []book.VersionedID) error {
	if len(books) == 0 {
		return nil
	}

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, v := range books {
			cmdTag, err := tx.Exec(ctx,
				`DELETE FROM books WHERE id = $1 AND version = $2`, v.ID, v.Version)
			if err != nil {
				return fmt.Errorf("failed to delete book %s: %w", v.ID, err)
			}
			// Zero rows means the book vanished or moved on since it
			// was read; abort the whole batch.
			if cmdTag.RowsAffected() == 0 {
				return book.ErrVersionMismatch
			}
		}
		return nil
	})
}

func translateError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return book.ErrDuplicateTitle
		case "23503": // foreign_key_violation
			return book.ErrUnknownRelation
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
