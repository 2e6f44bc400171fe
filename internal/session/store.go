package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 30 * time.Minute

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Store keeps sessions by opaque id so one browser tab can upload, view the
// result and reset across requests. Sessions idle for longer than TTL are
// dropped on the next Create.
type Store struct {
	composer Composer
	TTL      time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewStore returns an empty Store whose sessions compose with c.
func NewStore(c Composer) *Store {
	return &Store{
		composer: c,
		TTL:      DefaultTTL,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Get returns the live session for id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	now := st.now()
	if now.Sub(e.lastSeen) > st.TTL {
		delete(st.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.sess, true
}

// Create registers a new Idle session and returns its id.
func (st *Store) Create() (string, *Session, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", nil, err
	}
	id := hex.EncodeToString(b)
	sess := New(st.composer)

	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	for k, e := range st.sessions {
		if now.Sub(e.lastSeen) > st.TTL {
			delete(st.sessions, k)
		}
	}
	st.sessions[id] = &entry{sess: sess, lastSeen: now}
	return id, sess, nil
}

// Len reports how many sessions are held.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
