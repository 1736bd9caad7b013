package memstore

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/editor"
	"library-backend/internal/domains/exemplary"
)

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// genreReferenced reports whether any book or editor still points at the
// genre; restrict-delete consults it before removing the row.
func genreReferenced(txn *memdb.Txn, genreID uuid.UUID) (bool, error) {
	it, err := txn.Get(tableBook, "id")
	if err != nil {
		return false, err
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := raw.(*book.Book)
		if b.GenreID != nil && *b.GenreID == genreID {
			return true, nil
		}
	}

	it, err = txn.Get(tableEditor, "id")
	if err != nil {
		return false, err
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		e := raw.(*editor.Editor)
		for _, gid := range e.GenreIDs {
			if gid == genreID {
				return true, nil
			}
		}
	}

	return false, nil
}

// editorReferenced reports whether any book still names the editor.
func editorReferenced(txn *memdb.Txn, editorID uuid.UUID) (bool, error) {
	raw, err := txn.First(tableBook, "editor", editorID)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

// deleteBookCascade removes one book together with its exemplaries.
func deleteBookCascade(txn *memdb.Txn, b *book.Book) error {
	it, err := txn.Get(tableExemplary, "book", b.ID)
	if err != nil {
		return err
	}
	var exemplaries []*exemplary.Exemplary
	for raw := it.Next(); raw != nil; raw = it.Next() {
		exemplaries = append(exemplaries, raw.(*exemplary.Exemplary))
	}
	for _, e := range exemplaries {
		if err := txn.Delete(tableExemplary, e); err != nil {
			return err
		}
	}

	return txn.Delete(tableBook, b)
}
