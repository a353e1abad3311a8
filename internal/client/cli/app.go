package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/config"
	"github.com/kparkhq/kpark-cli/internal/client/guard"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/cache"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/metadata"
	"github.com/kparkhq/kpark-cli/internal/client/services"
	"github.com/kparkhq/kpark-cli/internal/client/session"
	"github.com/kparkhq/kpark-cli/internal/client/storage"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// Mode is the client's view of server reachability, updated by the
// background watcher. It only affects what the prompt shows and which
// screens fall back to cached data.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App owns the wiring of the interactive client: session store, services,
// guarded router, and the REPL.
type App struct {
	config   *config.Config
	db       *sql.DB
	api      api.Client
	store    *session.Store
	cache    cache.Repository
	slots    services.SlotService
	bookings services.BookingService
	waitlist services.WaitlistService
	admin    services.AdminService
	profile  services.ProfileService
	router   *Router
	log      logging.Logger
	reader   *bufio.Reader

	mu     sync.Mutex
	Mode   Mode
	notice string
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	creds := session.NewCredentialStore(metadata.NewSQLiteRepository(db))
	rest := api.NewRestClient(cfg.ServerBaseURL, creds, cfg.RequestTimeout, log)
	store := session.NewStore(rest, creds, log)
	cacheRepo := cache.NewSQLiteRepository(db)

	a := &App{
		config:   cfg,
		db:       db,
		api:      rest,
		store:    store,
		cache:    cacheRepo,
		slots:    services.NewSlotService(rest, cacheRepo, log),
		bookings: services.NewBookingService(rest, cacheRepo, log),
		waitlist: services.NewWaitlistService(rest, cacheRepo, log),
		admin:    services.NewAdminService(rest),
		profile:  services.NewProfileService(rest, store),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		Mode:     ModeOnline,
	}

	// A rejected token anywhere mid-session clears the store; the next
	// guarded navigation then lands on the login screen.
	rest.SetSessionExpiredHandler(func(ctx context.Context) {
		a.store.Expire(ctx)
		a.setNotice("Your session has expired, please log in again.")
	})

	store.Subscribe(func(snap session.Snapshot) {
		user := ""
		if snap.Identity != nil {
			user = snap.Identity.Email
		}
		log.Debug(context.Background(), "session changed", "user", user, "restoring", snap.Restoring)
	})

	a.router = newAppRouter(a)
	return a, nil
}

// newAppRouter builds the route table. Paths mirror the web application so
// guard redirect targets stay meaningful.
func newAppRouter(a *App) *Router {
	r := NewRouter("/dashboard")
	r.Handle("/login", guard.PublicOnly, a.viewLogin)
	r.Handle("/register", guard.PublicOnly, a.viewRegister)
	r.Handle("/admin/login", guard.PublicOnly, a.viewAdminLogin)
	r.Handle("/dashboard", guard.AuthenticatedOnly, a.viewDashboard)
	r.Handle("/slots", guard.AuthenticatedOnly, a.viewSlots)
	r.Handle("/bookings", guard.AuthenticatedOnly, a.viewBookings)
	r.Handle("/waitlist", guard.AuthenticatedOnly, a.viewWaitlist)
	r.Handle("/profile", guard.AuthenticatedOnly, a.viewProfile)
	r.Handle("/admin/dashboard", guard.AdminOnly, a.viewAdminDashboard)
	r.Handle("/admin/slots", guard.AdminOnly, a.viewAdminSlots)
	r.Handle("/admin/users", guard.AdminOnly, a.viewAdminUsers)
	r.Handle("/admin/bookings", guard.AdminOnly, a.viewAdminBookings)
	return r
}

// Run restores the persisted session, starts the connectivity watcher, and
// enters the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.db.Close() }()

	// The restore must finish before the first guard decision, otherwise
	// every navigation would report Loading.
	if err := a.store.Restore(ctx); err != nil {
		return err
	}
	if snap := a.store.Snapshot(); snap.Identity != nil {
		fmt.Printf("Welcome back, %s!\n", snap.Identity.Name)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Println("kpark CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
	return nil
}

// Open navigates to path through the guarded router and renders the screen
// it settles on.
func (a *App) Open(ctx context.Context, path string) error {
	snap := a.store.Snapshot()
	final, d, err := a.router.Resolve(path, snap)
	if err != nil {
		return err
	}
	if d.Action == guard.Loading {
		fmt.Println("Restoring your session, one moment...")
		return nil
	}
	return a.router.Render(ctx, final)
}

// Logout clears the session and drops cached snapshots so one user's data
// never shows for the next.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout()
	if err := a.cache.Clear(ctx); err != nil {
		a.log.Warn(ctx, "clearing offline cache failed", "err", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().Identity != nil
}

func (a *App) isAdmin() bool {
	id := a.store.Snapshot().Identity
	return id != nil && id.Role.IsAdmin()
}

func (a *App) getStatus() string {
	s := ""
	if id := a.store.Snapshot().Identity; id != nil {
		s = id.Email + " "
	}
	a.mu.Lock()
	s += string(a.Mode)
	a.mu.Unlock()
	return fmt.Sprintf("(%s)", s)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.notice = fmt.Sprintf("Switched to %s mode.", mode)
	}
}

func (a *App) setNotice(msg string) {
	a.mu.Lock()
	a.notice = msg
	a.mu.Unlock()
}

// Notice returns and clears the pending one-shot message. Background
// goroutines (the watcher, the session-expiry hook) leave messages here
// for the REPL to surface before the next prompt.
func (a *App) Notice() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.notice
	a.notice = ""
	return n
}

// StartOnlineStatusWatcher periodically pings the server and flips Mode
// between online and offline. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
