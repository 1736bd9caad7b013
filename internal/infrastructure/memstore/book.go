package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/book"
)

type bookRepository struct {
	store *Store
}

func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	if err := checkBookRelations(txn, b); err != nil {
		return nil, err
	}
	dup, err := titleTaken(txn, b.AuthorID, b.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, book.ErrDuplicateTitle
	}

	now := time.Now()
	created := *b
	created.ID = uuid.New()
	created.Version = 0
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := txn.Insert(tableBook, &created); err != nil {
		return nil, err
	}
	txn.Commit()

	return &created, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	return getBook(txn, id)
}

func getBook(txn *memdb.Txn, id uuid.UUID) (*book.Book, error) {
	raw, err := txn.First(tableBook, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, book.ErrBookNotFound
	}
	b := *raw.(*book.Book)
	return &b, nil
}

func (r *bookRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]book.Book, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	books := make([]book.Book, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		raw, err := txn.First(tableBook, "id", id)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		books = append(books, *raw.(*book.Book))
	}

	return books, nil
}

func (r *bookRepository) GetAll(ctx context.Context, filter book.Filter) ([]book.Book, int64, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableBook, "id")
	if err != nil {
		return nil, 0, err
	}

	var all []book.Book
	search := strings.ToLower(filter.Search)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := raw.(*book.Book)
		if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Title), search) {
			continue
		}
		all = append(all, *b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })

	total := int64(len(all))
	return paginate(all, filter.Limit, filter.Offset), total, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book, currentVersion int) (*book.Book, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getBook(txn, b.ID)
	if err != nil {
		return nil, err
	}
	if stored.Version != currentVersion {
		return nil, book.ErrVersionMismatch
	}

	updated := *stored
	updated.Title = b.Title
	updated.GenreID = b.GenreID
	updated.EditorID = b.EditorID
	updated.Description = b.Description
	updated.Summary = b.Summary
	updated.Cover = b.Cover
	updated.PageCount = b.PageCount
	updated.EditionStopped = b.EditionStopped
	updated.PublicationDate = b.PublicationDate
	updated.ISBN = b.ISBN

	if err := checkBookRelations(txn, &updated); err != nil {
		return nil, err
	}
	dup, err := titleTaken(txn, updated.AuthorID, updated.Title, updated.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, book.ErrDuplicateTitle
	}

	updated.Version++
	updated.UpdatedAt = time.Now()

	if err := txn.Insert(tableBook, &updated); err != nil {
		return nil, err
	}
	txn.Commit()

	return &updated, nil
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getBook(txn, id)
	if err != nil {
		return err
	}
	if err := deleteBookCascade(txn, stored); err != nil {
		return err
	}
	txn.Commit()

	return nil
}

func (r *bookRepository) DeleteBatchIfUnchanged(ctx context.Context, books []book.VersionedID) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	// Pin every row first; the batch is all-or-nothing.
	pinned := make([]*book.Book, 0, len(books))
	for _, v := range books {
		raw, err := txn.First(tableBook, "id", v.ID)
		if err != nil {
			return err
		}
		if raw == nil {
			return book.ErrVersionMismatch
		}
		b := raw.(*book.Book)
		if b.Version != v.Version {
			return book.ErrVersionMismatch
		}
		pinned = append(pinned, b)
	}

	for _, b := range pinned {
		if err := deleteBookCascade(txn, b); err != nil {
			return err
		}
	}
	txn.Commit()

	return nil
}

func checkBookRelations(txn *memdb.Txn, b *book.Book) error {
	raw, err := txn.First(tableAuthor, "id", b.AuthorID)
	if err != nil {
		return err
	}
	if raw == nil {
		return book.ErrUnknownRelation
	}

	raw, err = txn.First(tableEditor, "id", b.EditorID)
	if err != nil {
		return err
	}
	if raw == nil {
		return book.ErrUnknownRelation
	}

	if b.GenreID != nil {
		raw, err = txn.First(tableGenre, "id", *b.GenreID)
		if err != nil {
			return err
		}
		if raw == nil {
			return book.ErrUnknownRelation
		}
	}

	return nil
}

// titleTaken enforces the (author, title) uniqueness rule; exclude skips the
// row being updated.
func titleTaken(txn *memdb.Txn, authorID uuid.UUID, title string, exclude uuid.UUID) (bool, error) {
	it, err := txn.Get(tableBook, "author", authorID)
	if err != nil {
		return false, err
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := raw.(*book.Book)
		if b.ID != exclude && b.Title == title {
			return true, nil
		}
	}
	return false, nil
}
