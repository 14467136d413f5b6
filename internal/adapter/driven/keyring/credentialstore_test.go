package keyring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestCredentialStore_RoundTrip(t *testing.T) {
	gokeyring.MockInit()
	store := NewCredentialStore("keypanel-test", "gemini")
	ctx := context.Background()

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	val, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, store.Set(ctx, "AIzaSyABCDEFGHIJKLMNOPQRSTUVWXYZ1234"))

	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	val, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaSyABCDEFGHIJKLMNOPQRSTUVWXYZ1234", val)
}

func TestCredentialStore_UsersAreIsolated(t *testing.T) {
	gokeyring.MockInit()
	ctx := context.Background()

	require.NoError(t, NewCredentialStore("keypanel-test", "gemini").Set(ctx, "value"))

	ok, err := NewCredentialStore("keypanel-test", "someone-else").Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
