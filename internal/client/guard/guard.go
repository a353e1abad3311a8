// Package guard decides whether a navigation target may render, given the
// current session state. Policies are pure functions so the router can
// re-evaluate them on every navigation without side effects.
package guard

import "github.com/kparkhq/kpark-cli/internal/client/models"

// Policy names the access rule attached to a route.
type Policy int

const (
	// PublicOnly screens (login pages): logged-in users are sent to the
	// dashboard instead.
	PublicOnly Policy = iota
	// AuthenticatedOnly screens: anonymous users are sent to the login page.
	AuthenticatedOnly
	// AdminOnly screens: anonymous users go to the admin login, ordinary
	// users back to their dashboard.
	AdminOnly
)

// Action is the outcome of a policy evaluation.
type Action int

const (
	Render Action = iota
	Loading
	Redirect
)

// Decision is what the router does with the navigation.
type Decision struct {
	Action Action
	// Target is the redirect destination; empty unless Action == Redirect.
	Target string
}

// Evaluate applies a policy to the session state.
//
// While the silent restore is still running, every policy yields Loading
// no matter what identity is present: rendering a redirect off a default
// nil identity before the restore finishes would bounce a logged-in user
// through the login page on every reload. The restoring check therefore
// strictly precedes any identity check.
//
// A non-admin or unrecognized role never renders admin content.
func Evaluate(p Policy, identity *models.Identity, restoring bool) Decision {
	if restoring {
		return Decision{Action: Loading}
	}

	switch p {
	case PublicOnly:
		if identity != nil {
			return Decision{Action: Redirect, Target: "/dashboard"}
		}
		return Decision{Action: Render}

	case AuthenticatedOnly:
		if identity == nil {
			return Decision{Action: Redirect, Target: "/login"}
		}
		return Decision{Action: Render}

	case AdminOnly:
		if identity == nil {
			return Decision{Action: Redirect, Target: "/admin/login"}
		}
		if !identity.Role.IsAdmin() {
			return Decision{Action: Redirect, Target: "/dashboard"}
		}
		return Decision{Action: Render}
	}

	// unknown policy: fail closed, same as an anonymous user on a
	// protected screen
	return Decision{Action: Redirect, Target: "/login"}
}
