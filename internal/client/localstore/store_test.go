package localstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/remood/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func setupStore(t *testing.T, backend Backend) (*Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "remood.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := New(db, backend)
	require.NoError(t, err)
	return s, db
}

func slotsOf(t *testing.T, s *Store) (token, username, key string) {
	t.Helper()
	ctx := context.Background()
	var err error
	token, err = s.Token(ctx)
	require.NoError(t, err)
	username, err = s.Username(ctx)
	require.NoError(t, err)
	key, err = s.EncryptionKey(ctx)
	require.NoError(t, err)
	return token, username, key
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(nil, "vault")
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestStore_EmptySlots(t *testing.T) {
	s, _ := setupStore(t, BackendSQLite)

	token, username, key := slotsOf(t, s)
	assert.Empty(t, token)
	assert.Empty(t, username)
	assert.Empty(t, key)

	dark, err := s.DarkMode(context.Background())
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestStore_SaveSessionOverwritesPrevious(t *testing.T) {
	s, _ := setupStore(t, BackendSQLite)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, "t1", "alice", "k1"))
	require.NoError(t, s.SaveSession(ctx, "t2", "bob", "k2"))

	token, username, key := slotsOf(t, s)
	assert.Equal(t, "t2", token)
	assert.Equal(t, "bob", username)
	assert.Equal(t, "k2", key)
}

func TestStore_ClearSessionKeepsTheme(t *testing.T) {
	s, _ := setupStore(t, BackendSQLite)
	ctx := context.Background()

	require.NoError(t, s.SetDarkMode(ctx, true))
	require.NoError(t, s.SaveSession(ctx, "t", "alice", "k"))
	require.NoError(t, s.ClearSession(ctx))

	token, username, key := slotsOf(t, s)
	assert.Empty(t, token)
	assert.Empty(t, username)
	assert.Empty(t, key)

	dark, err := s.DarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
}

func TestStore_DarkModeRoundTrip(t *testing.T) {
	s, db := setupStore(t, BackendSQLite)
	ctx := context.Background()

	require.NoError(t, s.SetDarkMode(ctx, true))
	var raw string
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key='darkMode'`).Scan(&raw))
	assert.Equal(t, "true", raw)

	require.NoError(t, s.SetDarkMode(ctx, false))
	dark, err := s.DarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestStore_KeyringBackend(t *testing.T) {
	keyring.MockInit()
	s, db := setupStore(t, BackendKeyring)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, "t", "alice", "k-in-keyring"))

	_, _, key := slotsOf(t, s)
	assert.Equal(t, "k-in-keyring", key)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata WHERE key='encryption_key'`).Scan(&n))
	assert.Zero(t, n, "key must not be written to the database")

	require.NoError(t, s.ClearSession(ctx))
	_, _, key = slotsOf(t, s)
	assert.Empty(t, key)
}

func TestStore_ClearSessionReportsDatabaseErrors(t *testing.T) {
	s, db := setupStore(t, BackendSQLite)
	require.NoError(t, db.Close())

	assert.ErrorContains(t, s.ClearSession(context.Background()), "clear session")
}
