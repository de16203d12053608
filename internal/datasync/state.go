// Package datasync implements the fetch/save/delete protocol shared by every
// admin resource, and the per-resource list state it maintains.
package datasync

import (
	"sync"
	"time"
)

// Status tags a resource's list state.
type Status int

const (
	// Idle: never fetched.
	Idle Status = iota
	// Loading: a call is in flight.
	Loading
	// Loaded: the last call succeeded.
	Loaded
	// Failed: the last call failed; Message says why.
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is a snapshot of one resource's list state.
type State struct {
	Status Status

	// Items is the list from the last successful fetch, a []T for the
	// resource's record type. It survives later failures.
	Items interface{}

	// Message is set when Status is Failed.
	Message string

	// FetchedAt is when Items was last replaced.
	FetchedAt time.Time
}

// Store holds one State per resource key. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{states: make(map[string]State)}
}

// Get returns the state of key, Idle when never touched.
func (s *Store) Get(key string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[key]
}

// Keys returns every key with recorded state.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.states))
	for k := range s.states {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) update(key string, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.states[key]
	fn(&st)
	s.states[key] = st
}

// begin marks key as loading and clears any previous error.
func (s *Store) begin(key string) {
	s.update(key, func(st *State) {
		st.Status = Loading
		st.Message = ""
	})
}

// replace stores a freshly fetched list.
func (s *Store) replace(key string, items interface{}, at time.Time) {
	s.update(key, func(st *State) {
		st.Status = Loaded
		st.Items = items
		st.Message = ""
		st.FetchedAt = at
	})
}

// fail records msg and keeps the previous items.
func (s *Store) fail(key, msg string) {
	s.update(key, func(st *State) {
		st.Status = Failed
		st.Message = msg
	})
}

// ItemsOf returns the items held for key as []T, nil when none.
func ItemsOf[T any](s *Store, key string) []T {
	items, _ := s.Get(key).Items.([]T)
	return items
}
