package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/services"
)

// describeErr turns API errors into user-facing messages. Backend-provided
// messages win when present; sentinels cover the transport-level cases the
// backend never saw.
func describeErr(err error) string {
	if apiErr := api.AsError(err); apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "server is unreachable, try again later"
	case errors.Is(err, api.ErrBadCredentials):
		return "invalid email or password"
	case errors.Is(err, api.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.Is(err, api.ErrForbidden):
		return "you are not allowed to do that"
	case errors.Is(err, api.ErrNotFound):
		return "not found"
	case errors.Is(err, api.ErrSlotTaken):
		return "slot is already taken for that window"
	}
	return err.Error()
}

// printListingNote tells the user when a screen is showing cached data
// instead of a live listing.
func printListingNote[T any](l services.Listing[T]) {
	if l.FromCache {
		fmt.Printf("(offline: showing data fetched %s)\n", l.FetchedAt.Local().Format("2006-01-02 15:04"))
	}
}

// fmtDeadline renders a confirmation deadline with the remaining time.
func fmtDeadline(t *time.Time) string {
	if t == nil {
		return ""
	}
	left := time.Until(*t).Round(time.Minute)
	if left < 0 {
		return fmt.Sprintf("%s (passed)", t.Local().Format("15:04"))
	}
	return fmt.Sprintf("%s (%s left)", t.Local().Format("15:04"), left)
}
