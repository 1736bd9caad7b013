package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/aggregate"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/fusion"
)

type fusionService struct {
	books    book.Repository
	engine   aggregate.Engine
	registry *fusion.Registry
}

func NewFusionService(books book.Repository, engine aggregate.Engine, registry *fusion.Registry) fusion.Service {
	return &fusionService{
		books:    books,
		engine:   engine,
		registry: registry,
	}
}

func (s *fusionService) Start(ctx context.Context, candidateIDs []uuid.UUID) (*fusion.Session, error) {
	if len(candidateIDs) < 2 {
		return nil, fusion.ErrInvalidSelection
	}

	candidates, err := s.books.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	// Unknown or duplicated ids shrink the loaded set.
	if len(candidates) != len(candidateIDs) {
		return nil, fusion.ErrInvalidSelection
	}

	author := candidates[0].AuthorID
	for _, c := range candidates[1:] {
		if c.AuthorID != author {
			return nil, fusion.ErrMixedAuthors
		}
	}

	counts, err := s.engine.CountChildren(ctx, candidateIDs, aggregate.BookExemplaries)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	session := &fusion.Session{
		ID:             uuid.New(),
		State:          fusion.StateChoice,
		Candidates:     candidates,
		MasterIndex:    1,
		ExemplaryCount: total,
		CreatedAt:      time.Now(),
	}
	s.registry.Put(session)

	return session.Clone(), nil
}

func (s *fusionService) ChooseMaster(sessionID uuid.UUID, master int) (*fusion.Session, error) {
	return s.transition(sessionID, func(session *fusion.Session) error {
		if session.State != fusion.StateChoice {
			return fusion.ErrInvalidState
		}
		if master < 1 || master > len(session.Candidates) {
			return fusion.ErrInvalidMaster
		}
		session.MasterIndex = master
		return nil
	})
}

func (s *fusionService) Fuse(sessionID uuid.UUID) (*fusion.Session, error) {
	return s.transition(sessionID, func(session *fusion.Session) error {
		if session.State != fusion.StateChoice {
			return fusion.ErrInvalidState
		}
		session.Mismatches = detectMismatches(session.Candidates)
		session.State = fusion.StateValidation
		return nil
	})
}

func (s *fusionService) Confirm(ctx context.Context, sessionID uuid.UUID) (*fusion.Session, error) {
	return s.transition(sessionID, func(session *fusion.Session) error {
		if session.State != fusion.StateValidation {
			return fusion.ErrInvalidState
		}

		losers := make([]book.VersionedID, 0, len(session.Candidates)-1)
		for i, c := range session.Candidates {
			if i+1 == session.MasterIndex {
				continue
			}
			losers = append(losers, book.VersionedID{ID: c.ID, Version: c.Version})
		}

		if err := s.books.DeleteBatchIfUnchanged(ctx, losers); err != nil {
			if errors.Is(err, book.ErrVersionMismatch) {
				session.State = fusion.StateCancelled
				return fusion.ErrConcurrentModification
			}
			return err
		}

		session.State = fusion.StateCommitted
		return nil
	})
}

func (s *fusionService) Cancel(sessionID uuid.UUID) (*fusion.Session, error) {
	return s.transition(sessionID, func(session *fusion.Session) error {
		if session.Terminal() {
			return fusion.ErrInvalidState
		}
		session.State = fusion.StateCancelled
		return nil
	})
}

// transition applies fn under the registry lock and returns the resulting
// snapshot. The snapshot is returned even when fn fails with a state change
// of its own (a cancelled-on-conflict Confirm), so callers can show it.
func (s *fusionService) transition(sessionID uuid.UUID, fn func(*fusion.Session) error) (*fusion.Session, error) {
	var snapshot *fusion.Session
	err := s.registry.WithSession(sessionID, func(session *fusion.Session) error {
		errFn := fn(session)
		snapshot = session.Clone()
		return errFn
	})
	return snapshot, err
}

// detectMismatches collects, per comparable field, the distinct values seen
// across the candidates. Fields where everyone agrees are dropped; the rest
// come back with their values sorted for stable output.
func detectMismatches(candidates []book.Book) []fusion.FieldMismatch {
	var mismatches []fusion.FieldMismatch
	for _, field := range book.ComparableFields() {
		seen := make(map[string]struct{}, len(candidates))
		for i := range candidates {
			seen[field.Value(&candidates[i])] = struct{}{}
		}
		if len(seen) < 2 {
			continue
		}

		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		mismatches = append(mismatches, fusion.FieldMismatch{Field: field.Name, Values: values})
	}
	return mismatches
}
