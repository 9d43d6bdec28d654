package snapshot

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vizsprints/analytics-service/internal/domain"
)

func TestStore_EmptyBeforeFirstSwap(t *testing.T) {
	store := NewStore()

	snap := store.Current()
	assert.NotNil(t, snap)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Users)
	assert.False(t, store.Loaded())
}

func TestStore_SwapPublishesWholeSnapshot(t *testing.T) {
	store := NewStore()

	events := []domain.Event{{EventID: "e_1", UserID: "u1", EventName: "signup_success", Timestamp: time.Now()}}
	users := []domain.User{{UserID: "u1", JoinedAt: time.Now()}}
	store.Swap(New(events, users))

	snap := store.Current()
	assert.Len(t, snap.Events, 1)
	assert.Len(t, snap.Users, 1)
	assert.True(t, store.Loaded())
}

func TestStore_SwapNilResetsToEmpty(t *testing.T) {
	store := NewStore()
	store.Swap(New([]domain.Event{{EventID: "e_1"}}, nil))

	store.Swap(nil)

	assert.False(t, store.Loaded())
}

func TestStore_ConcurrentReadersSeeConsistentTables(t *testing.T) {
	store := NewStore()

	// every published snapshot keeps both tables the same length, so a
	// reader observing a mismatch caught a partial update
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			n := i%10 + 1
			events := make([]domain.Event, n)
			users := make([]domain.User, n)
			store.Swap(New(events, users))
		}
		close(stop)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					snap := store.Current()
					if len(snap.Events) != len(snap.Users) {
						t.Error("observed torn snapshot")
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
