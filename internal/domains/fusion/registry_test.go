package fusion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySweepDropsExpired(t *testing.T) {
	r := NewRegistry(time.Millisecond)

	live := &Session{ID: uuid.New(), State: StateChoice}
	r.Put(live)

	time.Sleep(5 * time.Millisecond)

	stale := r.Sweep()
	assert.Equal(t, 1, stale)

	err := r.WithSession(live.ID, func(*Session) error { return nil })
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryUnknownSession(t *testing.T) {
	r := NewRegistry(time.Minute)

	err := r.WithSession(uuid.New(), func(*Session) error { return nil })
	require.ErrorIs(t, err, ErrSessionNotFound)
}
