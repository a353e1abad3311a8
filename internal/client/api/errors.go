package api

import "errors"

var (
	// ErrUnavailable means the request never produced an HTTP response
	// (connection refused, timeout, DNS failure).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend rejected the bearer token on an
	// authenticated call. The client reacts globally: credentials are
	// cleared and the session-expiry handler fires.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadCredentials means a login or register attempt was rejected.
	// Handled locally by the calling view, never globally.
	ErrBadCredentials = errors.New("invalid credentials")

	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")

	// ErrSlotTaken means the requested booking window is already taken;
	// the backend may suggest joining the waitlist instead.
	ErrSlotTaken = errors.New("slot not available")
)

// Error is the typed failure returned for any non-2xx backend response.
// Message carries the backend's human-readable text for inline display.
type Error struct {
	Status          int
	Message         string
	SuggestWaitlist bool

	kind error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.kind.Error()
}

// Unwrap lets callers match the sentinel with errors.Is, e.g.
// errors.Is(err, api.ErrSlotTaken).
func (e *Error) Unwrap() error { return e.kind }

// AsError extracts the *Error from err's chain, or nil.
func AsError(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
