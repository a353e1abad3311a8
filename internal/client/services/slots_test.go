package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/cache"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

func setupCache(t *testing.T) cache.Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
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
	return cache.NewSQLiteRepository(db)
}

// fakeSlotsAPI stubs the slot listing; everything else panics via the
// embedded nil interface.
type fakeSlotsAPI struct {
	api.Client

	slots   []models.Slot
	err     error
	calls   int
	filters []models.SlotFilter
}

func (f *fakeSlotsAPI) Slots(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	f.calls++
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

func TestSlotList_CachesUnfilteredListing(t *testing.T) {
	ctx := context.Background()
	repo := setupCache(t)
	online := &fakeSlotsAPI{slots: []models.Slot{{ID: "s1", SlotNumber: "A-1"}}}
	svc := NewSlotService(online, repo, logging.NewDefault())

	got, err := svc.List(ctx, models.SlotFilter{})
	require.NoError(t, err)
	assert.False(t, got.FromCache)
	require.Len(t, got.Items, 1)

	// server goes away; the snapshot takes over
	offline := &fakeSlotsAPI{err: api.ErrUnavailable}
	svc = NewSlotService(offline, repo, logging.NewDefault())

	got, err = svc.List(ctx, models.SlotFilter{})
	require.NoError(t, err)
	assert.True(t, got.FromCache)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "A-1", got.Items[0].SlotNumber)
	assert.False(t, got.FetchedAt.IsZero())
}

func TestSlotList_NoCacheNoServer_ReturnsUnavailable(t *testing.T) {
	svc := NewSlotService(&fakeSlotsAPI{err: api.ErrUnavailable}, setupCache(t), logging.NewDefault())

	_, err := svc.List(context.Background(), models.SlotFilter{})
	assert.ErrorIs(t, err, api.ErrUnavailable)
}

func TestSlotList_FilteredQueriesSkipCache(t *testing.T) {
	ctx := context.Background()
	repo := setupCache(t)

	// seed the unfiltered snapshot
	seed := &fakeSlotsAPI{slots: []models.Slot{{ID: "s1"}}}
	_, err := NewSlotService(seed, repo, logging.NewDefault()).List(ctx, models.SlotFilter{})
	require.NoError(t, err)

	// an availability query while offline must fail, not show stale data
	offline := &fakeSlotsAPI{err: api.ErrUnavailable}
	svc := NewSlotService(offline, repo, logging.NewDefault())
	_, err = svc.List(ctx, models.SlotFilter{Date: "2026-09-01", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, api.ErrUnavailable)
}

func TestSlotList_OtherErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	repo := setupCache(t)

	seed := &fakeSlotsAPI{slots: []models.Slot{{ID: "s1"}}}
	_, err := NewSlotService(seed, repo, logging.NewDefault()).List(ctx, models.SlotFilter{})
	require.NoError(t, err)

	// an authorization failure must not be masked by the cache
	denied := &fakeSlotsAPI{err: api.ErrUnauthorized}
	_, err = NewSlotService(denied, repo, logging.NewDefault()).List(ctx, models.SlotFilter{})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}
