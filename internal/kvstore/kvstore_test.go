package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both backends must satisfy the same contract: set/get round trip,
// overwrite, absent keys, delete idempotence.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "accessToken", "tok-1"))
	v, ok, err := store.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", v)

	require.NoError(t, store.Set(ctx, "accessToken", "tok-2"))
	v, _, _ = store.Get(ctx, "accessToken")
	assert.Equal(t, "tok-2", v)

	// Empty string is a value, not absence.
	require.NoError(t, store.Set(ctx, "csrfToken", ""))
	v, ok, err = store.Get(ctx, "csrfToken")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, store.Delete(ctx, "accessToken"))
	_, ok, err = store.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "accessToken"), "deleting an absent key must not fail")
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	store, err := NewFile(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	runStoreContract(t, store)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "accessToken", "tok-1"))
	require.NoError(t, store.Set(ctx, "userInfo", `{"userName":"Test User"}`))
	require.NoError(t, store.Delete(ctx, "accessToken"))

	reopened, err := NewFile(path)
	require.NoError(t, err)

	_, ok, err := reopened.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.False(t, ok, "deleted keys must stay deleted across restarts")

	v, ok, err := reopened.Get(ctx, "userInfo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"userName":"Test User"}`, v)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")

	store, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "accessToken", "tok-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFile(path)
	assert.Error(t, err)
}
