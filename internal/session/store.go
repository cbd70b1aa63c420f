package session

import "sync"

// SubscriberFunc receives wire-level events for one session's stream.
type SubscriberFunc func(event string, data any)

// Store holds sessions and fans events out to stream subscribers. A
// deployment can swap in a persistent or TTL-evicting backend without
// touching the core.
type Store interface {
	Get(id string) (*Session, bool)
	Put(s *Session)
	Subscribe(id string, fn SubscriberFunc) (unsubscribe func())
	Publish(id string, event string, data any)
}

// MemoryStore is an in-process Store with no eviction.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	subs     map[string]map[int]SubscriberFunc
	nextSub  int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		subs:     make(map[string]map[int]SubscriberFunc),
	}
}

// Get returns a snapshot copy of a session, so callers can read it
// while the orchestrator keeps appending to the live one.
func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return s.snapshot(), true
}

// Put stores a snapshot of the session.
func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.snapshot()
}

// Subscribe registers a stream callback for a session. The returned
// function removes the subscription.
func (m *MemoryStore) Subscribe(id string, fn SubscriberFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.subs[id]
	if !ok {
		set = make(map[int]SubscriberFunc)
		m.subs[id] = set
	}
	key := m.nextSub
	m.nextSub++
	set[key] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		current, ok := m.subs[id]
		if !ok {
			return
		}
		delete(current, key)
		if len(current) == 0 {
			delete(m.subs, id)
		}
	}
}

// Publish synchronously invokes every subscriber registered for the
// session. Subscribers are responsible for their own buffering.
func (m *MemoryStore) Publish(id string, event string, data any) {
	m.mu.RLock()
	fns := make([]SubscriberFunc, 0, len(m.subs[id]))
	for _, fn := range m.subs[id] {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(event, data)
	}
}
