package localstore

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	store, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestMigrations_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, NewMigrationRunner(db).Run())
	require.NoError(t, NewMigrationRunner(db).Run())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetSetDelete(t *testing.T) {
	store := setupStore(t)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	got, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", got)

	require.NoError(t, store.Delete("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is fine.
	require.NoError(t, store.Delete("k"))
}

func TestToken_RoundTrip(t *testing.T) {
	store := setupStore(t)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetToken("abc123"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.ClearToken())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestHistory_RoundTrip(t *testing.T) {
	store := setupStore(t)

	entries, err := store.History()
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, store.SaveHistory([]string{"x", "y"}))
	entries, err = store.History()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, entries)
}

func TestHistory_CorruptValueDiscarded(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Set("search_history", "not json"))

	entries, err := store.History()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
