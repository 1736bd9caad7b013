package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/genre"
	"library-backend/pkg/cache"
)

// postgresRepository implements genre.Repository with a Redis read-through
// cache in front of the id lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) genre.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	genreCacheKeyPrefix = "genre:"
	genreListKeyPrefix  = "genres:list:"
	cacheTTL            = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, g *genre.Genre) (*genre.Genre, error) {
	query := `
        INSERT INTO genres (name, version)
        VALUES ($1, 0)
        RETURNING id, name, version, created_at, updated_at
    `

	var created genre.Genre
	err := r.pool.QueryRow(ctx, query, g.Name).Scan(
		&created.ID,
		&created.Name,
		&created.Version,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	cacheKey := genreCacheKeyPrefix + id.String()

	var g genre.Genre
	if found, err := r.cache.Get(ctx, cacheKey, &g); err == nil && found {
		return &g, nil
	}

	query := `
        SELECT id, name, version, created_at, updated_at
        FROM genres
        WHERE id = $1
    `

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Version,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &g, cacheTTL)

	return &g, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter genre.Filter) ([]genre.Genre, int64, error) {
	query := `
        SELECT id, name, version, created_at, updated_at
        FROM genres
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
        ORDER BY name ASC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []genre.Genre
	for rows.Next() {
		var g genre.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Version, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating genres: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM genres WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}

	return genres, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *genre.Genre, currentVersion int) (*genre.Genre, error) {
	query := `
        UPDATE genres
        SET name = $1,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $2 AND version = $3
        RETURNING id, name, version, created_at, updated_at
    `

	var updated genre.Genre
	err := r.pool.QueryRow(ctx, query, g.Name, g.ID, currentVersion).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Version,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing row from a version conflict.
			var exists bool
			if checkErr := r.pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM genres WHERE id = $1)`, g.ID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check genre existence: %w", checkErr)
			}
			if !exists {
				return nil, genre.ErrGenreNotFound
			}
			return nil, genre.ErrVersionMismatch
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	r.invalidateGenreCache(ctx, g.ID)
	r.invalidateListCache(ctx)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return genre.ErrGenreInUse
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return genre.ErrGenreNotFound
	}

	r.invalidateGenreCache(ctx, id)
	r.invalidateListCache(ctx)

	return nil
}

func (r *postgresRepository) invalidateGenreCache(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, genreCacheKeyPrefix+id.String())
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	_ = r.cache.DeletePattern(ctx, genreListKeyPrefix+"*")
}
