package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when
// KEYPANEL_SECRET_KEY has not been configured for an encrypting store.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set KEYPANEL_SECRET_KEY")

// CredentialStore defines the driven port for persisting a single API
// credential. Adapters are bound to one credential at construction; the
// dialog never sees how or where the value is kept. Values cross this
// boundary as plaintext.
type CredentialStore interface {
	// Exists reports whether a credential is currently stored.
	Exists(ctx context.Context) (bool, error)

	// Get retrieves the stored credential.
	// Returns ("", nil) if no credential exists.
	Get(ctx context.Context) (string, error)

	// Set stores or replaces the credential. value is the raw, unmasked,
	// trimmed secret.
	Set(ctx context.Context, value string) error
}

// CredentialInspector is implemented by stores that keep metadata alongside
// the value. Callers type-assert a CredentialStore to discover it.
type CredentialInspector interface {
	// Inspect returns the stored record, or nil if no credential exists.
	Inspect(ctx context.Context) (*model.Credential, error)
}
