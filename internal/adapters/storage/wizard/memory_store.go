package wizard

import (
	"sync"
	"time"

	domain "academy/internal/domain/wizard"
)

// DefaultTTL is how long an abandoned wizard session survives before eviction.
const DefaultTTL = 2 * time.Hour

// MemoryStore holds in-progress application wizard sessions in memory.
// Wizard state is per-visit working state and is never written to the
// database; closing the browser discards it.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

type entry struct {
	session   domain.Session
	touchedAt time.Time
}

// NewMemoryStore creates a new in-memory wizard session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      DefaultTTL,
	}
}

// Put stores or replaces a wizard session.
// PRE: session.ID is non-empty
// POST: Session is stored and its eviction clock reset
func (ms *MemoryStore) Put(session domain.Session) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[session.ID] = entry{session: session, touchedAt: time.Now()}
}

// Get retrieves a wizard session by ID.
// PRE: id is non-empty
// POST: Returns the session if present and not expired
func (ms *MemoryStore) Get(id string) (domain.Session, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	e, ok := ms.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	if time.Since(e.touchedAt) > ms.ttl {
		delete(ms.sessions, id)
		return domain.Session{}, false
	}
	return e.session, true
}

// Delete removes a wizard session.
// PRE: id is non-empty
// POST: Session with given id is removed
func (ms *MemoryStore) Delete(id string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, id)
}

// Sweep evicts all expired sessions and returns how many were removed.
// POST: No expired sessions remain in the store
func (ms *MemoryStore) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	removed := 0
	for id, e := range ms.sessions {
		if time.Since(e.touchedAt) > ms.ttl {
			delete(ms.sessions, id)
			removed++
		}
	}
	return removed
}
