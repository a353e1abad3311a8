// Package session is the single source of truth for "who is logged in".
// The store pairs an in-memory identity with the persisted credential pair
// and keeps the two consistent: every operation that writes one writes the
// other within the same operation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// ErrSuperseded is returned by Login/Register when a logout (or a forced
// expiry) landed while the network call was in flight. The cleared state
// wins; the result of the stale call is discarded.
var ErrSuperseded = errors.New("session cleared during operation")

// Snapshot is the observable session state consumed by route guards.
type Snapshot struct {
	Identity  *models.Identity
	Restoring bool
}

// Store is the session store. Guards and the REST client both read it by
// reference; nothing else in the client holds session state.
type Store struct {
	api   api.Client
	creds *CredentialStore
	log   logging.Logger

	mu        sync.Mutex
	identity  *models.Identity
	restoring bool
	restored  bool
	// epoch moves on every clearing write (logout, forced expiry).
	// In-flight operations capture it before their network call and
	// discard their result if it moved: logout always wins.
	epoch uint64
	subs  []func(Snapshot)
}

// NewStore creates the store in its bootstrap state: no identity, restoring
// set, waiting for the one Restore call.
func NewStore(apiClient api.Client, creds *CredentialStore, log logging.Logger) *Store {
	return &Store{
		api:       apiClient,
		creds:     creds,
		log:       log,
		restoring: true,
	}
}

// Credentials exposes the persisted credential pair (token source for the
// REST client, session expiry for the profile view).
func (s *Store) Credentials() *CredentialStore { return s.creds }

// Snapshot returns the current observable state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Identity: s.identity, Restoring: s.restoring}
}

// Subscribe registers fn to run after every state change. Callbacks run
// outside the store lock, in subscription order.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// notify must be called without the lock held.
func (s *Store) notify(snap Snapshot, subs []func(Snapshot)) {
	for _, fn := range subs {
		fn(snap)
	}
}

// Restore attempts the one silent restore from persisted credentials.
// It runs at most once per process: later calls are no-ops and never
// re-enter a restoring state visible to guards.
//
// No persisted token: completes immediately as logged out. Token present:
// asks the backend who the token belongs to; success refreshes the cached
// identity, any failure (stale token, unreachable server) clears both
// persisted entries and completes as logged out. Restoration failures are
// recovered here, never surfaced as user-facing errors.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return nil
	}
	s.restored = true
	epoch := s.epoch
	s.mu.Unlock()

	identity := s.restoreIdentity(ctx)

	s.mu.Lock()
	s.restoring = false
	if identity != nil && s.epoch == epoch {
		s.identity = identity
	}
	snap := Snapshot{Identity: s.identity, Restoring: s.restoring}
	subs := s.subs
	s.mu.Unlock()

	s.notify(snap, subs)
	return nil
}

func (s *Store) restoreIdentity(ctx context.Context) *models.Identity {
	token, err := s.creds.Token(ctx)
	if err != nil {
		s.log.Error(ctx, "reading persisted token", "err", err)
		return nil
	}
	if token == "" {
		return nil
	}

	id, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "silent restore failed, clearing credentials", "err", err)
		if cerr := s.creds.Clear(ctx); cerr != nil {
			s.log.Error(ctx, "clearing credentials", "err", cerr)
		}
		return nil
	}

	id.Role = models.ParseRole(string(id.Role))
	if err := s.creds.SaveIdentity(ctx, id); err != nil {
		s.log.Error(ctx, "refreshing cached identity", "err", err)
	}
	s.log.Info(ctx, "session restored", "user", id.Email, "role", id.Role)
	return id
}

// Login authenticates and, on success, persists the returned token and
// identity together and installs the identity. Failures propagate
// unchanged and leave the session untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	epoch := s.currentEpoch()
	token, id, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.install(ctx, epoch, token, id)
}

// Register has the same contract as Login, for account creation.
func (s *Store) Register(ctx context.Context, profile models.RegisterProfile) (*models.Identity, error) {
	epoch := s.currentEpoch()
	token, id, err := s.api.Register(ctx, profile)
	if err != nil {
		return nil, err
	}
	return s.install(ctx, epoch, token, id)
}

func (s *Store) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// install commits a successful authentication, unless a clearing write
// happened while the network call was in flight.
func (s *Store) install(ctx context.Context, epoch uint64, token string, id *models.Identity) (*models.Identity, error) {
	id.Role = models.ParseRole(string(id.Role))

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return nil, ErrSuperseded
	}
	if err := s.creds.Save(ctx, token, id); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("persisting credentials: %w", err)
	}
	s.identity = id
	snap := Snapshot{Identity: s.identity, Restoring: s.restoring}
	subs := s.subs
	s.mu.Unlock()

	s.notify(snap, subs)
	return id, nil
}

// RefreshIdentity installs a server-returned identity update (e.g. after a
// profile edit) and mirrors it to the persisted cache. Ignored when the
// session was cleared in the meantime.
func (s *Store) RefreshIdentity(ctx context.Context, id *models.Identity) {
	id.Role = models.ParseRole(string(id.Role))

	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return
	}
	if err := s.creds.SaveIdentity(ctx, id); err != nil {
		s.log.Error(ctx, "refreshing cached identity", "err", err)
	}
	s.identity = id
	snap := Snapshot{Identity: s.identity, Restoring: s.restoring}
	subs := s.subs
	s.mu.Unlock()

	s.notify(snap, subs)
}

// Logout clears persisted credentials and the in-memory identity. It is
// synchronous, idempotent, and cannot fail: storage errors are logged and
// the in-memory state is cleared regardless.
func (s *Store) Logout() {
	s.clear(context.Background(), "logout")
}

// Expire is the forced variant wired to the REST client's 401 handler:
// same clearing write, logged as an expiry.
func (s *Store) Expire(ctx context.Context) {
	s.clear(ctx, "session expired")
}

func (s *Store) clear(ctx context.Context, reason string) {
	s.mu.Lock()
	s.epoch++
	s.identity = nil
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error(ctx, "clearing credentials", "reason", reason, "err", err)
	}
	s.log.Info(ctx, "session cleared", "reason", reason)
	snap := Snapshot{Identity: s.identity, Restoring: s.restoring}
	subs := s.subs
	s.mu.Unlock()

	s.notify(snap, subs)
}
