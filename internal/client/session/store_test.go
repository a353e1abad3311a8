package session

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/metadata"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

// fakeAPI stubs only the auth surface of api.Client; anything else panics
// via the embedded nil interface, which is exactly what these tests want.
type fakeAPI struct {
	api.Client

	mu               sync.Mutex
	loginCalls       int
	currentUserCalls int

	loginToken   string
	loginID      *models.Identity
	loginErr     error
	loginGate    chan struct{} // when non-nil, Login blocks until closed
	loginStarted chan struct{} // when non-nil, closed once Login is entered
	startedOnce  sync.Once

	currentUserID  *models.Identity
	currentUserErr error
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	f.mu.Lock()
	f.loginCalls++
	gate := f.loginGate
	f.mu.Unlock()
	if f.loginStarted != nil {
		f.startedOnce.Do(func() { close(f.loginStarted) })
	}
	if gate != nil {
		<-gate
	}
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	id := *f.loginID
	return f.loginToken, &id, nil
}

func (f *fakeAPI) Register(ctx context.Context, p models.RegisterProfile) (string, *models.Identity, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	id := *f.loginID
	return f.loginToken, &id, nil
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*models.Identity, error) {
	f.mu.Lock()
	f.currentUserCalls++
	f.mu.Unlock()
	if f.currentUserErr != nil {
		return nil, f.currentUserErr
	}
	id := *f.currentUserID
	return &id, nil
}

func newStore(t *testing.T, f *fakeAPI) (*Store, *CredentialStore) {
	t.Helper()
	creds := NewCredentialStore(metadata.NewSQLiteRepository(setupDB(t)))
	return NewStore(f, creds, logging.NewDefault()), creds
}

// ---- tests ----

func TestStore_StartsRestoring(t *testing.T) {
	store, _ := newStore(t, &fakeAPI{})
	snap := store.Snapshot()
	assert.True(t, snap.Restoring)
	assert.Nil(t, snap.Identity)
}

func TestRestore_NoToken_CompletesLoggedOut(t *testing.T) {
	f := &fakeAPI{}
	store, _ := newStore(t, f)

	require.NoError(t, store.Restore(context.Background()))

	snap := store.Snapshot()
	assert.False(t, snap.Restoring)
	assert.Nil(t, snap.Identity)
	assert.Equal(t, 0, f.currentUserCalls, "no token means no network call")
}

func TestRestore_RoundTripAfterLogin(t *testing.T) {
	// login on "first run", then restore on a fresh store over the same
	// storage, simulating an app reload
	ctx := context.Background()
	identity := &models.Identity{Name: "A", Email: "a@b.com", Role: models.RoleEmployee}

	db := setupDB(t)
	repo := metadata.NewSQLiteRepository(db)
	creds := NewCredentialStore(repo)

	login := &fakeAPI{loginToken: "T1", loginID: identity}
	first := NewStore(login, creds, logging.NewDefault())
	require.NoError(t, first.Restore(ctx))

	got, err := first.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	// reload: storage is pre-seeded, only the current-user endpoint runs
	reload := &fakeAPI{currentUserID: identity}
	second := NewStore(reload, creds, logging.NewDefault())
	require.NoError(t, second.Restore(ctx))

	snap := second.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "A", snap.Identity.Name)
	assert.Equal(t, models.RoleEmployee, snap.Identity.Role)
	assert.False(t, snap.Restoring)
	assert.Equal(t, 1, reload.currentUserCalls)
	assert.Equal(t, 0, reload.loginCalls, "restore must not call login")

	tok, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", tok)
}

func TestRestore_StaleToken_ClearsCredentials(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := metadata.NewSQLiteRepository(db)
	creds := NewCredentialStore(repo)
	require.NoError(t, creds.Save(ctx, "stale", &models.Identity{Name: "A"}))

	f := &fakeAPI{currentUserErr: api.ErrBadCredentials}
	store := NewStore(f, creds, logging.NewDefault())
	require.NoError(t, store.Restore(ctx), "restoration failure is recovered, not surfaced")

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Restoring)

	tok, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	id, err := creds.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestRestore_RunsOnce(t *testing.T) {
	ctx := context.Background()
	identity := &models.Identity{Name: "A", Role: models.RoleEmployee}

	db := setupDB(t)
	creds := NewCredentialStore(metadata.NewSQLiteRepository(db))
	require.NoError(t, creds.Save(ctx, "T1", identity))

	f := &fakeAPI{currentUserID: identity}
	store := NewStore(f, creds, logging.NewDefault())
	require.NoError(t, store.Restore(ctx))

	var notified int
	store.Subscribe(func(Snapshot) { notified++ })

	// second invocation is a no-op: no network call, no state change,
	// no transient restoring phase
	require.NoError(t, store.Restore(ctx))
	assert.Equal(t, 1, f.currentUserCalls)
	assert.Equal(t, 0, notified)
	assert.False(t, store.Snapshot().Restoring)
}

func TestLogin_FailurePropagatesUnchanged(t *testing.T) {
	f := &fakeAPI{loginErr: api.ErrBadCredentials}
	store, creds := newStore(t, f)
	require.NoError(t, store.Restore(context.Background()))

	_, err := store.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, api.ErrBadCredentials)
	assert.Nil(t, store.Snapshot().Identity)

	tok, err := creds.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestLogin_NormalizesUnknownRole(t *testing.T) {
	f := &fakeAPI{loginToken: "T1", loginID: &models.Identity{Name: "A", Role: "superuser"}}
	store, _ := newStore(t, f)
	require.NoError(t, store.Restore(context.Background()))

	id, err := store.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, id.Role, "unknown roles read as least privilege")
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{loginToken: "T1", loginID: &models.Identity{Name: "A", Role: models.RoleEmployee}}
	store, creds := newStore(t, f)
	require.NoError(t, store.Restore(ctx))

	_, err := store.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	store.Logout()
	store.Logout() // second call must be a clean no-op

	assert.Nil(t, store.Snapshot().Identity)
	tok, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestLogout_WinsOverInflightLogin(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	started := make(chan struct{})
	f := &fakeAPI{
		loginToken:   "T1",
		loginID:      &models.Identity{Name: "A", Role: models.RoleEmployee},
		loginGate:    gate,
		loginStarted: started,
	}
	store, creds := newStore(t, f)
	require.NoError(t, store.Restore(ctx))

	done := make(chan error, 1)
	go func() {
		_, err := store.Login(ctx, "a@b.com", "secret1")
		done <- err
	}()

	<-started // the login call is in flight and has captured its epoch
	store.Logout()
	close(gate) // the login call now resolves, after the logout

	err := <-done
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Nil(t, store.Snapshot().Identity, "cleared identity must not be resurrected")

	tok, terr := creds.Token(ctx)
	require.NoError(t, terr)
	assert.Empty(t, tok)
}

func TestExpire_ClearsAndNotifies(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{loginToken: "T1", loginID: &models.Identity{Name: "A", Role: models.RoleAdmin}}
	store, creds := newStore(t, f)
	require.NoError(t, store.Restore(ctx))

	_, err := store.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	var got []Snapshot
	store.Subscribe(func(s Snapshot) { got = append(got, s) })

	store.Expire(ctx)

	require.Len(t, got, 1)
	assert.Nil(t, got[0].Identity)
	tok, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
