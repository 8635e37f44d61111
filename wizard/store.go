package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one browser's wizard state. The per-session mutex serializes
// transitions so a session never has more than one in-flight submission chain.
type Session struct {
	ID         string
	Machine    *Machine
	OrderID    string // provider order handle while the payment step is open
	CreatedAt  time.Time
	LastActive time.Time

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Store holds live wizard sessions in memory. Drafts are ephemeral: a session
// that outlives the TTL without activity is swept, which is the server-side
// equivalent of the browser tab going away.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Create(submitter Submitter) *Session {
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		Machine:    NewMachine(submitter),
		CreatedAt:  now,
		LastActive: now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	st.mu.Lock()
	sess.LastActive = time.Now()
	st.mu.Unlock()

	return sess, true
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep removes sessions idle past the TTL and returns how many were dropped.
func (st *Store) Sweep() int {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if sess.LastActive.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
