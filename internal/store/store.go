package store

import "sync"

// Listener is called after every dispatch with the action and resulting state.
type Listener func(a Action, s State)

// Store is the single owner of State. Dispatches are applied one at a time;
// readers get a snapshot value that later dispatches never modify.
type Store struct {
	mu        sync.RWMutex
	notify    sync.Mutex // orders listener calls by dispatch
	state     State
	listeners []Listener
}

// New creates a Store seeded with initial.
func New(initial State) *Store {
	return &Store{state: initial}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and returns the new state. Listeners run after the
// state lock is released, in registration order, and see dispatches in the
// order they were applied. A listener must not call Dispatch.
func (s *Store) Dispatch(a Action) State {
	_, next := s.Apply(a)
	return next
}

// Apply is Dispatch that also returns the state a was applied to, so
// callers can tell what the action changed without racing other writers.
func (s *Store) Apply(a Action) (prev, next State) {
	s.mu.Lock()
	prev = s.state
	next = Reduce(prev, a)
	s.state = next
	listeners := s.listeners
	s.notify.Lock()
	s.mu.Unlock()
	defer s.notify.Unlock()

	for _, l := range listeners {
		l(a, next)
	}
	return prev, next
}

// Replace swaps the whole state, as when rehydrating from a snapshot.
// Listeners are not notified.
func (s *Store) Replace(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// Subscribe registers l for future dispatches.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
