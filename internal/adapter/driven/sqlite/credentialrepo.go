package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.CredentialStore     = (*CredentialRepo)(nil)
	_ driven.CredentialInspector = (*CredentialRepo)(nil)
)

// CredentialRepo is the SQLite implementation of the CredentialStore port,
// bound to a single service row. Values are encrypted with AES-256-GCM
// before write and decrypted after read.
type CredentialRepo struct {
	db      *DB
	service string
	key     []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewCredentialRepo creates a CredentialRepo for service. key must be 32 bytes
// for AES-256-GCM, or nil to disable credential storage (reads and writes
// return driven.ErrEncryptionKeyNotSet).
func NewCredentialRepo(db *DB, service string, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, service: service, key: key}
}

// Exists reports whether a credential row exists for the service. It does
// not need the encryption key.
func (r *CredentialRepo) Exists(ctx context.Context) (bool, error) {
	const query = `SELECT COUNT(*) FROM credentials WHERE service = ?`
	var n int
	if err := r.db.Reader.QueryRowContext(ctx, query, r.service).Scan(&n); err != nil {
		return false, fmt.Errorf("check credential %q: %w", r.service, err)
	}
	return n > 0, nil
}

// Set stores or replaces the credential with the provided plaintext value.
func (r *CredentialRepo) Set(ctx context.Context, plaintext string) error {
	encrypted, err := r.encrypt(plaintext)
	if err != nil {
		return err
	}

	const query = `INSERT INTO credentials (service, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(service) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.Writer.ExecContext(ctx, query, r.service, encrypted); err != nil {
		return fmt.Errorf("set credential %q: %w", r.service, err)
	}
	return nil
}

// Get retrieves the plaintext credential.
// Returns ("", nil) if no credential exists.
func (r *CredentialRepo) Get(ctx context.Context) (string, error) {
	cred, err := r.Inspect(ctx)
	if err != nil || cred == nil {
		return "", err
	}
	return cred.Value, nil
}

// Inspect returns the full stored record with its value decrypted, or nil if
// no credential exists.
func (r *CredentialRepo) Inspect(ctx context.Context) (*model.Credential, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT id, service, value, updated_at FROM credentials WHERE service = ?`
	var (
		cred      model.Credential
		encrypted string
		updatedAt string
	)
	err := r.db.Reader.QueryRowContext(ctx, query, r.service).Scan(&cred.ID, &cred.Service, &encrypted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential %q: %w", r.service, err)
	}

	cred.Value, err = r.decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("decrypt credential %q: %w", r.service, err)
	}

	cred.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for credential %q: %w", r.service, err)
	}

	return &cred, nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded string
// containing the nonce (12 bytes) prepended to the ciphertext.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
