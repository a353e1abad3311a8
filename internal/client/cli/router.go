package cli

import (
	"context"
	"fmt"

	"github.com/kparkhq/kpark-cli/internal/client/guard"
	"github.com/kparkhq/kpark-cli/internal/client/session"
)

// RenderFunc draws one screen. It is only invoked after the route's guard
// has allowed the navigation.
type RenderFunc func(ctx context.Context) error

type route struct {
	policy guard.Policy
	render RenderFunc
}

// Router maps paths to guarded screens. Navigation to an unknown path lands
// on the fallback route, which is itself guarded, so a typo never bypasses
// a policy.
type Router struct {
	routes   map[string]route
	fallback string
}

// maxRedirects bounds guard-driven redirect chains. The longest legitimate
// chain is two hops (unknown -> fallback -> login), so hitting the bound
// means two guards are bouncing a navigation between each other.
const maxRedirects = 4

func NewRouter(fallback string) *Router {
	return &Router{routes: map[string]route{}, fallback: fallback}
}

// Handle registers a screen under path with its access policy.
func (r *Router) Handle(path string, p guard.Policy, render RenderFunc) {
	r.routes[path] = route{policy: p, render: render}
}

// Resolve follows guard decisions from path until it reaches a screen that
// renders or a Loading verdict. It returns the final path and decision.
func (r *Router) Resolve(path string, snap session.Snapshot) (string, guard.Decision, error) {
	for i := 0; i < maxRedirects; i++ {
		rt, ok := r.routes[path]
		if !ok {
			path = r.fallback
			continue
		}
		d := guard.Evaluate(rt.policy, snap.Identity, snap.Restoring)
		if d.Action == guard.Redirect {
			path = d.Target
			continue
		}
		return path, d, nil
	}
	return "", guard.Decision{}, fmt.Errorf("navigation to %q did not settle after %d redirects", path, maxRedirects)
}

// Render draws the screen registered under path.
func (r *Router) Render(ctx context.Context, path string) error {
	rt, ok := r.routes[path]
	if !ok {
		return fmt.Errorf("no screen registered for %q", path)
	}
	return rt.render(ctx)
}
