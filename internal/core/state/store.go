// Package state holds the in-memory entity store. It is the single writer of the
// business state: every command runs to completion under one lock.
package state

import (
	"sync"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// ChangeHook is called after every committed write, outside the lock.
type ChangeHook func()

// Store owns the AppState and serializes all access to it.
type Store struct {
	mu       sync.RWMutex
	state    domain.AppState
	hooksMu  sync.Mutex
	onChange []ChangeHook
}

// NewStore creates a store seeded with initial.
func NewStore(initial domain.AppState) *Store {
	return &Store{state: initial}
}

// OnChange registers a hook fired after each successful Update.
func (s *Store) OnChange(hook ChangeHook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onChange = append(s.onChange, hook)
}

// Update runs fn with exclusive access to the state. If fn returns an error the
// change hooks are not fired; fn is responsible for not leaving partial writes.
func (s *Store) Update(fn func(st *domain.AppState) error) error {
	s.mu.Lock()
	err := fn(&s.state)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// View runs fn with shared read access. fn must not retain references into st.
func (s *Store) View(fn func(st *domain.AppState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace swaps in a whole new state, e.g. after a restore.
func (s *Store) Replace(next domain.AppState) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.hooksMu.Lock()
	hooks := append([]ChangeHook(nil), s.onChange...)
	s.hooksMu.Unlock()
	for _, hook := range hooks {
		hook()
	}
}
