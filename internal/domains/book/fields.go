package book

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// ComparableField projects one field of a Book to a comparable string.
// The fusion workflow iterates this list to find fields whose values differ
// across a candidate set; keeping it a static declaration avoids reflection
// while still covering the whole schema.
type ComparableField struct {
	Name  string
	Value func(*Book) string
}

// ComparableFields lists every field that participates in mismatch
// detection. The author is included even though fusion candidates always
// share one: the list describes the schema, not the workflow's
// preconditions.
func ComparableFields() []ComparableField {
	return []ComparableField{
		{"title", func(b *Book) string { return b.Title }},
		{"author", func(b *Book) string { return b.AuthorID.String() }},
		{"genre", func(b *Book) string { return uuidPtrValue(b.GenreID) }},
		{"editor", func(b *Book) string { return b.EditorID.String() }},
		{"description", func(b *Book) string { return strPtrValue(b.Description) }},
		{"summary", func(b *Book) string { return strPtrValue(b.Summary) }},
		{"cover", func(b *Book) string { return hex.EncodeToString(b.Cover) }},
		{"page_count", func(b *Book) string { return intPtrValue(b.PageCount) }},
		{"edition_stopped", func(b *Book) string { return fmt.Sprintf("%t", b.EditionStopped) }},
		{"publication_date", func(b *Book) string {
			if b.PublicationDate == nil {
				return ""
			}
			return b.PublicationDate.Format("2006-01-02")
		}},
		{"isbn", func(b *Book) string { return strPtrValue(b.ISBN) }},
	}
}

func strPtrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intPtrValue(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func uuidPtrValue(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
