package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
)

type authorRepository struct {
	store *Store
}

func NewAuthorRepository(store *Store) author.Repository {
	return &authorRepository{store: store}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	now := time.Now()
	created := *a
	created.ID = uuid.New()
	created.Version = 0
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := txn.Insert(tableAuthor, &created); err != nil {
		return nil, err
	}
	txn.Commit()

	return &created, nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	return getAuthor(txn, id)
}

func getAuthor(txn *memdb.Txn, id uuid.UUID) (*author.Author, error) {
	raw, err := txn.First(tableAuthor, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, author.ErrAuthorNotFound
	}
	a := *raw.(*author.Author)
	return &a, nil
}

func (r *authorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]author.Author, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	authors := make([]author.Author, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		raw, err := txn.First(tableAuthor, "id", id)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		authors = append(authors, *raw.(*author.Author))
	}

	return authors, nil
}

func (r *authorRepository) GetAll(ctx context.Context, filter author.Filter) ([]author.Author, int64, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableAuthor, "id")
	if err != nil {
		return nil, 0, err
	}

	var all []author.Author
	search := strings.ToLower(filter.Search)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		a := raw.(*author.Author)
		if search != "" && !strings.Contains(strings.ToLower(a.Name), search) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	return paginate(all, filter.Limit, filter.Offset), total, nil
}

func (r *authorRepository) Update(ctx context.Context, a *author.Author, currentVersion int) (*author.Author, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getAuthor(txn, a.ID)
	if err != nil {
		return nil, err
	}
	if stored.Version != currentVersion {
		return nil, author.ErrVersionMismatch
	}

	updated := *stored
	updated.Name = a.Name
	updated.BirthDate = a.BirthDate
	updated.DeathDate = a.DeathDate
	updated.Gender = a.Gender
	updated.Version++
	updated.UpdatedAt = time.Now()

	if err := txn.Insert(tableAuthor, &updated); err != nil {
		return nil, err
	}
	txn.Commit()

	return &updated, nil
}

func (r *authorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getAuthor(txn, id)
	if err != nil {
		return err
	}

	it, err := txn.Get(tableBook, "author", id)
	if err != nil {
		return err
	}
	var books []*book.Book
	for raw := it.Next(); raw != nil; raw = it.Next() {
		books = append(books, raw.(*book.Book))
	}
	for _, b := range books {
		if err := deleteBookCascade(txn, b); err != nil {
			return err
		}
	}

	if err := txn.Delete(tableAuthor, stored); err != nil {
		return err
	}
	txn.Commit()

	return nil
}
