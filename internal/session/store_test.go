package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabachok/dropclient/internal/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "fresh store holds no session")

	session := &domain.Session{
		AccessToken:     "access-1",
		RefreshToken:    "refresh-1",
		AccessExpiresAt: time.Now().Add(15 * time.Minute).UTC(),
		User:            &domain.User{ID: 3, Username: "kabachok", Email: "k@drop.io"},
		Balance:         250,
	}
	require.NoError(t, store.Save(session))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access-1", loaded.AccessToken)
	assert.Equal(t, "refresh-1", loaded.RefreshToken)
	assert.Equal(t, 250, loaded.Balance)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "kabachok", loaded.User.Username)
}

func TestFileStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, store.Save(&domain.Session{AccessToken: "secret"}))

	info, err := os.Stat(filepath.Join(dir, SessionFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "token file must be user-only")
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save(&domain.Session{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing an already-cleared store must not fail")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, SessionFileName), []byte("{not json"), 0o600))

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse session file")
}
