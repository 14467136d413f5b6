package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_EmptyByDefault(t *testing.T) {
	store := NewCredentialStore("")
	ctx := context.Background()

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	val, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestCredentialStore_SetRecordsWrites(t *testing.T) {
	store := NewCredentialStore("old-value")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "first"))
	require.NoError(t, store.Set(ctx, "second"))

	val, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", val)
	assert.Equal(t, []string{"first", "second"}, store.Writes())
}

func TestCredentialStore_FailWith(t *testing.T) {
	store := NewCredentialStore("value")
	ctx := context.Background()
	boom := errors.New("disk full")

	store.FailWith(boom)
	assert.ErrorIs(t, store.Set(ctx, "new"), boom)
	_, err := store.Exists(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.Writes())

	store.FailWith(nil)
	assert.NoError(t, store.Set(ctx, "new"))
}
