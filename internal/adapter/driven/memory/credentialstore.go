// Package memory provides an in-process CredentialStore. It backs the
// KEYPANEL_STORE=memory mode and stands in for real stores in tests.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps a single credential in memory.
type CredentialStore struct {
	mu     sync.Mutex
	value  string
	writes []string
	err    error
}

// NewCredentialStore creates a store holding initial, or an empty store when
// initial is "".
func NewCredentialStore(initial string) *CredentialStore {
	return &CredentialStore{value: initial}
}

// Exists reports whether a non-empty credential is held.
func (s *CredentialStore) Exists(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.value != "", nil
}

// Get returns the held credential, or "" when none is held.
func (s *CredentialStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.value, nil
}

// Set replaces the held credential and records the write.
func (s *CredentialStore) Set(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.value = value
	s.writes = append(s.writes, value)
	return nil
}

// FailWith makes every subsequent operation return err. Pass nil to recover.
func (s *CredentialStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Writes returns every value passed to a successful Set, oldest first.
func (s *CredentialStore) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}
