package fusion

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

// State is a fusion session's position in the workflow. CHOICE and
// VALIDATION are live; COMMITTED and CANCELLED are terminal.
type State string

const (
	StateChoice     State = "choice"
	StateValidation State = "validation"
	StateCommitted  State = "committed"
	StateCancelled  State = "cancelled"
)

// FieldMismatch records one field whose value is not shared by every
// candidate. Mismatches warn; they never block a transition.
type FieldMismatch struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// Session is a fusion attempt over a set of duplicate books by one author.
// Candidates are snapshots taken at Start; their versions back the
// optimistic check at commit time.
type Session struct {
	ID         uuid.UUID   `json:"id"`
	State      State       `json:"state"`
	Candidates []book.Book `json:"candidates"`

	// MasterIndex is 1-based into Candidates.
	MasterIndex int `json:"master_index"`

	// ExemplaryCount totals the exemplaries across all candidates. It is
	// shown to the operator; committing does not preserve them.
	ExemplaryCount int `json:"exemplary_count"`

	Mismatches []FieldMismatch `json:"mismatches,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Master returns the snapshot currently selected as the survivor.
func (s *Session) Master() *book.Book {
	return &s.Candidates[s.MasterIndex-1]
}

func (s *Session) Terminal() bool {
	return s.State == StateCommitted || s.State == StateCancelled
}

// Clone copies the session so callers can read it after the registry lock
// is released.
func (s *Session) Clone() *Session {
	c := *s
	c.Candidates = append([]book.Book(nil), s.Candidates...)
	c.Mismatches = append([]FieldMismatch(nil), s.Mismatches...)
	return &c
}
