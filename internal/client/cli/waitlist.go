package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// viewWaitlist lists the user's waitlist entries. Notified entries show
// their confirmation deadline; confirming one converts it into a booking.
func (a *App) viewWaitlist(ctx context.Context) error {
	listing, err := a.waitlist.My(ctx)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	printListingNote(listing)

	if len(listing.Items) == 0 {
		fmt.Println("You are not on the waitlist.")
		return nil
	}
	fmt.Println("== My waitlist ==")
	for _, w := range listing.Items {
		fmt.Println(" " + formatWaitlistEntry(w))
	}

	if listing.FromCache {
		return nil
	}

	line, err := getSimpleText(a.reader, "Action: confirm <id> | leave <id> (blank to go back)", os.Stdout)
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)
	if len(parts) != 2 {
		fmt.Println("Usage: confirm|leave <id>")
		return nil
	}
	cmd, id := parts[0], parts[1]

	switch cmd {
	case "confirm":
		b, err := a.waitlist.Confirm(ctx, id)
		if err != nil {
			fmt.Println(describeErr(err))
			return nil
		}
		fmt.Println("Confirmed! Your booking:", formatBooking(*b))
		return a.Open(ctx, "/bookings")

	case "leave":
		if err := a.waitlist.Leave(ctx, id); err != nil {
			fmt.Println(describeErr(err))
			return nil
		}
		fmt.Println("Left the waitlist.")
		return a.viewWaitlist(ctx)

	default:
		fmt.Println("Unknown action:", cmd)
	}
	return nil
}

func formatWaitlistEntry(w models.WaitlistEntry) string {
	s := fmt.Sprintf("%s  %s %s %s-%s  [%s]", w.ID, w.SlotType, w.BookingDate, w.PreferredStartTime, w.PreferredEndTime, w.Status)
	switch w.Status {
	case models.WaitlistWaiting:
		s += fmt.Sprintf("  position %d", w.Position)
	case models.WaitlistNotified:
		s += fmt.Sprintf("  confirm before %s", fmtDeadline(w.ConfirmationDeadline))
	}
	return s
}
