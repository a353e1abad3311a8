package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kparkhq/kpark-cli/internal/client/guard"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/session"
)

func anon() session.Snapshot {
	return session.Snapshot{}
}

func employee() session.Snapshot {
	return session.Snapshot{Identity: &models.Identity{ID: "u1", Role: models.RoleEmployee}}
}

func admin() session.Snapshot {
	return session.Snapshot{Identity: &models.Identity{ID: "a1", Role: models.RoleAdmin}}
}

// appRoutes builds the production route table; render funcs are never
// invoked by Resolve so the zero App is enough.
func appRoutes(t *testing.T) *Router {
	t.Helper()
	return newAppRouter(&App{})
}

func TestResolve_AnonymousIsSentToLogin(t *testing.T) {
	r := appRoutes(t)

	for _, path := range []string{"/dashboard", "/slots", "/bookings", "/waitlist", "/profile"} {
		final, d, err := r.Resolve(path, anon())
		require.NoError(t, err, path)
		assert.Equal(t, "/login", final, path)
		assert.Equal(t, guard.Render, d.Action, path)
	}
}

func TestResolve_AnonymousAdminScreensUseAdminLogin(t *testing.T) {
	r := appRoutes(t)

	for _, path := range []string{"/admin/dashboard", "/admin/users", "/admin/bookings", "/admin/slots"} {
		final, d, err := r.Resolve(path, anon())
		require.NoError(t, err, path)
		assert.Equal(t, "/admin/login", final, path)
		assert.Equal(t, guard.Render, d.Action, path)
	}
}

func TestResolve_LoggedInSkipsLoginScreens(t *testing.T) {
	r := appRoutes(t)

	for _, path := range []string{"/login", "/register", "/admin/login"} {
		final, _, err := r.Resolve(path, employee())
		require.NoError(t, err, path)
		assert.Equal(t, "/dashboard", final, path)
	}
}

func TestResolve_EmployeeNeverReachesAdmin(t *testing.T) {
	r := appRoutes(t)

	final, d, err := r.Resolve("/admin/users", employee())
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", final)
	assert.Equal(t, guard.Render, d.Action)
}

func TestResolve_AdminReachesAdmin(t *testing.T) {
	r := appRoutes(t)

	for _, path := range []string{"/admin/dashboard", "/admin/users", "/admin/bookings", "/admin/slots"} {
		final, d, err := r.Resolve(path, admin())
		require.NoError(t, err, path)
		assert.Equal(t, path, final, path)
		assert.Equal(t, guard.Render, d.Action, path)
	}
}

func TestResolve_UnknownPathFallsBackGuarded(t *testing.T) {
	r := appRoutes(t)

	// the fallback route is still guarded, so anonymous lands on login
	final, _, err := r.Resolve("/no-such-screen", anon())
	require.NoError(t, err)
	assert.Equal(t, "/login", final)

	final, _, err = r.Resolve("/no-such-screen", employee())
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", final)
}

func TestResolve_RestoringAlwaysLoading(t *testing.T) {
	r := appRoutes(t)
	snap := session.Snapshot{Restoring: true, Identity: admin().Identity}

	for _, path := range []string{"/login", "/dashboard", "/admin/users"} {
		_, d, err := r.Resolve(path, snap)
		require.NoError(t, err, path)
		assert.Equal(t, guard.Loading, d.Action, path)
	}
}

func TestResolve_RedirectLoopIsBounded(t *testing.T) {
	// a table whose guards bounce a navigation back and forth must error
	// out instead of spinning
	r := NewRouter("/dashboard")
	r.Handle("/dashboard", guard.AuthenticatedOnly, nil)

	_, _, err := r.Resolve("/dashboard", anon())
	require.Error(t, err)
}
