package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/editor"
)

type editorRepository struct {
	store *Store
}

func NewEditorRepository(store *Store) editor.Repository {
	return &editorRepository{store: store}
}

func (r *editorRepository) Create(ctx context.Context, e *editor.Editor) (*editor.Editor, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	if err := checkGenresExist(txn, e.GenreIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	created := *e
	created.ID = uuid.New()
	created.GenreIDs = append([]uuid.UUID(nil), e.GenreIDs...)
	created.Version = 0
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := txn.Insert(tableEditor, &created); err != nil {
		return nil, err
	}
	txn.Commit()

	return &created, nil
}

func (r *editorRepository) GetByID(ctx context.Context, id uuid.UUID) (*editor.Editor, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	return getEditor(txn, id)
}

func getEditor(txn *memdb.Txn, id uuid.UUID) (*editor.Editor, error) {
	raw, err := txn.First(tableEditor, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, editor.ErrEditorNotFound
	}
	e := *raw.(*editor.Editor)
	e.GenreIDs = append([]uuid.UUID(nil), e.GenreIDs...)
	return &e, nil
}

func (r *editorRepository) GetAll(ctx context.Context, filter editor.Filter) ([]editor.Editor, int64, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEditor, "id")
	if err != nil {
		return nil, 0, err
	}

	var all []editor.Editor
	search := strings.ToLower(filter.Search)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		e := raw.(*editor.Editor)
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) {
			continue
		}
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	return paginate(all, filter.Limit, filter.Offset), total, nil
}

func (r *editorRepository) Update(ctx context.Context, e *editor.Editor, currentVersion int) (*editor.Editor, error) {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getEditor(txn, e.ID)
	if err != nil {
		return nil, err
	}
	if stored.Version != currentVersion {
		return nil, editor.ErrVersionMismatch
	}
	if err := checkGenresExist(txn, e.GenreIDs); err != nil {
		return nil, err
	}

	updated := *stored
	updated.Name = e.Name
	updated.CreationDate = e.CreationDate
	updated.GenreIDs = append([]uuid.UUID(nil), e.GenreIDs...)
	updated.Version++
	updated.UpdatedAt = time.Now()

	if err := txn.Insert(tableEditor, &updated); err != nil {
		return nil, err
	}
	txn.Commit()

	return &updated, nil
}

func (r *editorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	stored, err := getEditor(txn, id)
	if err != nil {
		return err
	}

	inUse, err := editorReferenced(txn, id)
	if err != nil {
		return err
	}
	if inUse {
		return editor.ErrEditorInUse
	}

	if err := txn.Delete(tableEditor, stored); err != nil {
		return err
	}
	txn.Commit()

	return nil
}

func checkGenresExist(txn *memdb.Txn, genreIDs []uuid.UUID) error {
	for _, gid := range genreIDs {
		raw, err := txn.First(tableGenre, "id", gid)
		if err != nil {
			return err
		}
		if raw == nil {
			return editor.ErrUnknownGenre
		}
	}
	return nil
}
