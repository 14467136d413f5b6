// Package keyring stores the credential in the operating system keyring
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux).
package keyring

import (
	"context"
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps one credential under a keyring service/user pair.
type CredentialStore struct {
	service string
	user    string
}

// NewCredentialStore creates a store for the given keyring service and user.
func NewCredentialStore(service, user string) *CredentialStore {
	return &CredentialStore{service: service, user: user}
}

// Exists reports whether the keyring holds a credential for the pair.
func (s *CredentialStore) Exists(ctx context.Context) (bool, error) {
	value, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return value != "", nil
}

// Get returns the stored credential, or "" when none is stored.
func (s *CredentialStore) Get(_ context.Context) (string, error) {
	value, err := gokeyring.Get(s.service, s.user)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s/%s: %w", s.service, s.user, err)
	}
	return value, nil
}

// Set stores or replaces the credential.
func (s *CredentialStore) Set(_ context.Context, value string) error {
	if err := gokeyring.Set(s.service, s.user, value); err != nil {
		return fmt.Errorf("keyring set %s/%s: %w", s.service, s.user, err)
	}
	return nil
}
