package flash

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	flash     Flash
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemoryStore is the fallback when no redis is configured. Tickets do
// not survive a restart, which is acceptable for single-instance setups.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]entry)}
}

func (s *memoryStore) Put(_ context.Context, f Flash) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = entry{flash: f, expiresAt: time.Now().Add(TTL)}

	// Opportunistic sweep, the map stays small.
	for k, e := range s.entries {
		if time.Now().After(e.expiresAt) {
			delete(s.entries, k)
		}
	}

	return id, nil
}

func (s *memoryStore) Take(_ context.Context, id string) (*Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.entries, id)

	if time.Now().After(e.expiresAt) {
		return nil, ErrNotFound
	}

	f := e.flash
	return &f, nil
}
