// Package cli provides the interactive kpark command-line client.
//
// It wires configuration, the local sqlite store, the REST API client, and
// an interactive REPL whose screens mirror the web application: dashboard,
// slot map, bookings, waitlist, profile, and the admin console. Every
// screen sits behind a route guard evaluated against the session store, so
// anonymous users land on the login screen and non-admins never see admin
// content.
//
// Typical flow: restore the persisted session, start a background
// connectivity watcher, and dispatch user commands through the guarded
// router. The REPL is started via App.Run(ctx), which blocks until the
// user exits.
package cli
