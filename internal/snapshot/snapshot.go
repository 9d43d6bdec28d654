package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/vizsprints/analytics-service/internal/domain"
)

// Snapshot is an immutable view of the two analytics tables. Once published
// it must never be mutated; reloads build a fresh Snapshot and swap it in.
type Snapshot struct {
	Events   []domain.Event
	Users    []domain.User
	LoadedAt time.Time
}

// New builds a snapshot stamped with the current time.
func New(events []domain.Event, users []domain.User) *Snapshot {
	return &Snapshot{
		Events:   events,
		Users:    users,
		LoadedAt: time.Now(),
	}
}

// Store holds the current snapshot behind an atomic pointer so concurrent
// readers never observe a partially-updated table.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store primed with an empty snapshot, so Current is
// always safe to call before the first load completes.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(New(nil, nil))
	return s
}

// Swap publishes a new snapshot, replacing the previous one in a single
// atomic step.
func (s *Store) Swap(snap *Snapshot) {
	if snap == nil {
		snap = New(nil, nil)
	}
	s.current.Store(snap)
}

// Current returns the latest published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Loaded reports whether a non-empty snapshot has been published.
func (s *Store) Loaded() bool {
	snap := s.Current()
	return len(snap.Events) > 0 || len(snap.Users) > 0
}
