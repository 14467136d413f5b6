package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// testKey is a fixed 32-byte AES-256 key used only in tests.
var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestCredentialRepo_SetAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", testKey)
	ctx := context.Background()

	err := repo.Set(ctx, "AIzaSyABCDEFGHIJKLMNOPQRSTUVWXYZ1234")
	require.NoError(t, err)

	val, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaSyABCDEFGHIJKLMNOPQRSTUVWXYZ1234", val)
}

func TestCredentialRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", testKey)
	ctx := context.Background()

	ok, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	val, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestCredentialRepo_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "value"))

	ok, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredentialRepo_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "old-value"))
	require.NoError(t, repo.Set(ctx, "new-value"))

	val, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-value", val)

	var rows int
	require.NoError(t, db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestCredentialRepo_ServicesAreIsolated(t *testing.T) {
	db := setupTestDB(t)
	gemini := NewCredentialRepo(db, "gemini", testKey)
	other := NewCredentialRepo(db, "other", testKey)
	ctx := context.Background()

	require.NoError(t, gemini.Set(ctx, "gemini-key"))

	ok, err := other.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialRepo_ValueEncryptedAtRest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", testKey)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "AIzaSyPLAINTEXT"))

	var stored string
	require.NoError(t, db.Reader.QueryRowContext(ctx, `SELECT value FROM credentials WHERE service = 'gemini'`).Scan(&stored))
	assert.NotContains(t, stored, "AIzaSyPLAINTEXT")
}

func TestCredentialRepo_Inspect(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", testKey)
	ctx := context.Background()

	cred, err := repo.Inspect(ctx)
	require.NoError(t, err)
	assert.Nil(t, cred)

	require.NoError(t, repo.Set(ctx, "stored-value"))

	cred, err = repo.Inspect(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "gemini", cred.Service)
	assert.Equal(t, "stored-value", cred.Value)
	assert.WithinDuration(t, time.Now().UTC(), cred.UpdatedAt, time.Minute)
}

func TestCredentialRepo_NoKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, "gemini", nil)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Set(ctx, "value"), driven.ErrEncryptionKeyNotSet)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	ok, err := repo.Exists(ctx)
	require.NoError(t, err, "existence checks do not need the key")
	assert.False(t, ok)
}

func TestCredentialRepo_WrongKeyFailsToDecrypt(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewCredentialRepo(db, "gemini", testKey).Set(ctx, "value"))

	other := NewCredentialRepo(db, "gemini", []byte("fedcba9876543210fedcba9876543210"))
	_, err := other.Get(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt credential")
}
