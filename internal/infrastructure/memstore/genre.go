package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/genre"
)

type genreRepository struct {
	store *Store
}

func NewGenreRepository(store *Store) genre.Repository {
	return &genreRepository{store: store}
}

func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) (*genre.Genre, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	now := time.Now()
	created := *g
	created.ID = uuid.New()
	created.Version = 0
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := txn.Insert(tableGenre, &created); err != nil {
		return nil, err
	}
	txn.Commit()

	return &created, nil
}

func (r *genreRepository) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	return getGenre(txn, id)
}

func getGenre(txn *memdb.Txn, id uuid.UUID) (*genre.Genre, error) {
	raw, err := txn.First(tableGenre, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, genre.ErrGenreNotFound
	}
	g := *raw.(*genre.Genre)
	return &g, nil
}

func (r *genreRepository) GetAll(ctx context.Context, filter genre.Filter) ([]genre.Genre, int64, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableGenre, "id")
	if err != nil {
		return nil, 0, err
	}

	var all []genre.Genre
	search := strings.ToLower(filter.Search)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		g := raw.(*genre.Genre)
		if search != "" && !strings.Contains(strings.ToLower(g.Name), search) {
			continue
		}
		all = append(all, *g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	return paginate(all, filter.Limit, filter.Offset), total, nil
}

func (r *genreRepository) Update(ctx context.Context, g *genre.Genre, currentVersion int) (*genre.Genre, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getGenre(txn, g.ID)
	if err != nil {
		return nil, err
	}
	if stored.Version != currentVersion {
		return nil, genre.ErrVersionMismatch
	}

	updated := *stored
	updated.Name = g.Name
	updated.Version++
	updated.UpdatedAt = time.Now()

	if err := txn.Insert(tableGenre, &updated); err != nil {
		return nil, err
	}
	txn.Commit()

	return &updated, nil
}

func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getGenre(txn, id)
	if err != nil {
		return err
	}

	inUse, err := genreReferenced(txn, id)
	if err != nil {
		return err
	}
	if inUse {
		return genre.ErrGenreInUse
	}

	if err := txn.Delete(tableGenre, stored); err != nil {
		return err
	}
	txn.Commit()

	return nil
}
