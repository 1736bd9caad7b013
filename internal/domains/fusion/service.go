package fusion

import (
	"context"

	"github.com/google/uuid"
)

// Service drives a session through the workflow. Every call returns a
// snapshot of the session after the transition, safe to serialize.
type Service interface {
	// Start opens a session over at least two books sharing one author.
	Start(ctx context.Context, candidateIDs []uuid.UUID) (*Session, error)

	// ChooseMaster selects the surviving candidate (1-based index).
	ChooseMaster(sessionID uuid.UUID, master int) (*Session, error)

	// Fuse moves to VALIDATION and records field mismatch warnings.
	Fuse(sessionID uuid.UUID) (*Session, error)

	// Confirm deletes every non-master candidate, cascading to their
	// exemplaries. A concurrently modified candidate aborts the delete
	// and cancels the session.
	Confirm(ctx context.Context, sessionID uuid.UUID) (*Session, error)

	// Cancel closes a live session without touching the store.
	Cancel(sessionID uuid.UUID) (*Session, error)
}
