package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:cache_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS cache (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
DELETE FROM cache;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	v, at, err := repo.Get(ctx, "slots")
	require.NoError(t, err)
	require.Nil(t, v)
	require.True(t, at.IsZero())

	fetched := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, "slots", []byte(`[{"slotNumber":"A-1"}]`), fetched))

	v, at, err = repo.Get(ctx, "slots")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"slotNumber":"A-1"}]`), v)
	require.True(t, at.Equal(fetched))

	// upsert replaces the snapshot and the timestamp
	later := fetched.Add(time.Hour)
	require.NoError(t, repo.Put(ctx, "slots", []byte(`[]`), later))
	v, at, err = repo.Get(ctx, "slots")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), v)
	require.True(t, at.Equal(later))
}

func TestSQLiteRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Put(ctx, "slots", []byte(`[]`), time.Now()))
	require.NoError(t, repo.Put(ctx, "bookings", []byte(`[]`), time.Now()))
	require.NoError(t, repo.Clear(ctx))

	v, _, err := repo.Get(ctx, "slots")
	require.NoError(t, err)
	require.Nil(t, v)
}
