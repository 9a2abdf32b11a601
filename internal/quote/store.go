package quote

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the live sessions in memory, keyed by an opaque session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore returns an empty store using the wall clock.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session), now: time.Now}
}

// Create starts a new session. Quote numbers are unique among live sessions.
func (st *Store) Create() (string, *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	taken := make(map[string]bool, len(st.sessions))
	for _, s := range st.sessions {
		taken[s.quoteNumber()] = true
	}
	sess := NewSession(now)
	for taken[sess.state.QuoteNumber] {
		now = now.Add(time.Millisecond)
		sess = NewSession(now)
	}

	id := uuid.NewString()
	st.sessions[id] = sess
	return id, sess
}

// Get returns the session for id and marks it active.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		sess.Touch(st.now())
	}
	return sess, ok
}

// Delete drops the session for id.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Prune removes sessions idle for longer than maxIdle and returns how many were removed.
func (st *Store) Prune(maxIdle time.Duration) int {
	cutoff := st.now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len is the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
