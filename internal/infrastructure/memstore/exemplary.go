package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/exemplary"
)

type exemplaryRepository struct {
	store *Store
}

func NewExemplaryRepository(store *Store) exemplary.Repository {
	return &exemplaryRepository{store: store}
}

func (r *exemplaryRepository) Create(ctx context.Context, e *exemplary.Exemplary) (*exemplary.Exemplary, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	created, err := insertExemplary(txn, e)
	if err != nil {
		return nil, err
	}
	txn.Commit()

	return created, nil
}

func (r *exemplaryRepository) CreateBatch(ctx context.Context, exemplaries []*exemplary.Exemplary) ([]exemplary.Exemplary, error) {
	if len(exemplaries) == 0 {
		return nil, nil
	}

	txn := r.store.db.Txn(true)
	defer txn.Abort()

	created := make([]exemplary.Exemplary, 0, len(exemplaries))
	for _, e := range exemplaries {
		row, err := insertExemplary(txn, e)
		if err != nil {
			return nil, err
		}
		created = append(created, *row)
	}
	txn.Commit()

	return created, nil
}

func insertExemplary(txn *memdb.Txn, e *exemplary.Exemplary) (*exemplary.Exemplary, error) {
	raw, err := txn.First(tableBook, "id", e.BookID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, exemplary.ErrUnknownBook
	}

	raw, err = txn.First(tableExemplary, "identifier", e.Identifier)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		return nil, exemplary.ErrDuplicateIdentifier
	}

	now := time.Now()
	created := *e
	created.ID = uuid.New()
	created.Version = 0
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := txn.Insert(tableExemplary, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *exemplaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*exemplary.Exemplary, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	return getExemplary(txn, id)
}

func getExemplary(txn *memdb.Txn, id uuid.UUID) (*exemplary.Exemplary, error) {
	raw, err := txn.First(tableExemplary, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, exemplary.ErrExemplaryNotFound
	}
	e := *raw.(*exemplary.Exemplary)
	return &e, nil
}

func (r *exemplaryRepository) GetAll(ctx context.Context, filter exemplary.Filter) ([]exemplary.Exemplary, int64, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableExemplary, "id")
	if err != nil {
		return nil, 0, err
	}

	var all []exemplary.Exemplary
	for raw := it.Next(); raw != nil; raw = it.Next() {
		e := raw.(*exemplary.Exemplary)
		if filter.BookID != nil && e.BookID != *filter.BookID {
			continue
		}
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Identifier < all[j].Identifier })

	total := int64(len(all))
	return paginate(all, filter.Limit, filter.Offset), total, nil
}

func (r *exemplaryRepository) Update(ctx context.Context, e *exemplary.Exemplary, currentVersion int) (*exemplary.Exemplary, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getExemplary(txn, e.ID)
	if err != nil {
		return nil, err
	}
	if stored.Version != currentVersion {
		return nil, exemplary.ErrVersionMismatch
	}

	if e.Identifier != stored.Identifier {
		raw, err := txn.First(tableExemplary, "identifier", e.Identifier)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			return nil, exemplary.ErrDuplicateIdentifier
		}
	}

	updated := *stored
	updated.Identifier = e.Identifier
	updated.AcquisitionDate = e.AcquisitionDate
	updated.AcquisitionPrice = e.AcquisitionPrice
	updated.Version++
	updated.UpdatedAt = time.Now()

	if err := txn.Insert(tableExemplary, &updated); err != nil {
		return nil, err
	}
	txn.Commit()

	return &updated, nil
}

func (r *exemplaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getExemplary(txn, id)
	if err != nil {
		return err
	}
	if err := txn.Delete(tableExemplary, stored); err != nil {
		return err
	}
	txn.Commit()

	return nil
}
