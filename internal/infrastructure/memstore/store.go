// Package memstore is an in-memory implementation of the catalog
// repositories and the aggregation engine on top of hashicorp/go-memdb.
// It mirrors the relational schema's constraints (uniqueness, restrict and
// cascade deletes, optimistic versions) so service and workflow tests run
// against real storage semantics without a database.
package memstore

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

const (
	tableGenre     = "genres"
	tableEditor    = "editors"
	tableAuthor    = "authors"
	tableBook      = "books"
	tableExemplary = "exemplaries"
)

type Store struct {
	db *memdb.MemDB
}

func New() (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to build memstore schema: %w", err)
	}
	return &Store{db: db}, nil
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableGenre: {
				Name: tableGenre,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &uuidIndexer{Field: "ID"}},
				},
			},
			tableEditor: {
				Name: tableEditor,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &uuidIndexer{Field: "ID"}},
				},
			},
			tableAuthor: {
				Name: tableAuthor,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &uuidIndexer{Field: "ID"}},
				},
			},
			tableBook: {
				Name: tableBook,
				Indexes: map[string]*memdb.IndexSchema{
					"id":     {Name: "id", Unique: true, Indexer: &uuidIndexer{Field: "ID"}},
					"author": {Name: "author", Indexer: &uuidIndexer{Field: "AuthorID"}},
					"editor": {Name: "editor", Indexer: &uuidIndexer{Field: "EditorID"}},
				},
			},
			tableExemplary: {
				Name: tableExemplary,
				Indexes: map[string]*memdb.IndexSchema{
					"id":   {Name: "id", Unique: true, Indexer: &uuidIndexer{Field: "ID"}},
					"book": {Name: "book", Indexer: &uuidIndexer{Field: "BookID"}},
					"identifier": {
						Name:    "identifier",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Identifier"},
					},
				},
			},
		},
	}
}

// uuidIndexer indexes a uuid.UUID struct field by its raw 16 bytes.
type uuidIndexer struct {
	Field string
}

func (u *uuidIndexer) FromObject(obj interface{}) (bool, []byte, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	f := v.FieldByName(u.Field)
	if !f.IsValid() {
		return false, nil, fmt.Errorf("field %q not found on %T", u.Field, obj)
	}
	id, ok := f.Interface().(uuid.UUID)
	if !ok {
		return false, nil, fmt.Errorf("field %q on %T is not a uuid.UUID", u.Field, obj)
	}
	if id == uuid.Nil {
		return false, nil, nil
	}
	return true, idBytes(id), nil
}

func (u *uuidIndexer) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("must provide exactly one argument")
	}
	id, ok := args[0].(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("argument must be a uuid.UUID: %T", args[0])
	}
	return idBytes(id), nil
}

func idBytes(id uuid.UUID) []byte {
	b := make([]byte, len(id))
	copy(b, id[:])
	return b
}
