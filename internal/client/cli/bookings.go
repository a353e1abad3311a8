package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// viewBookings lists the user's bookings and offers the in-place actions
// the backend supports: mark arrival, extend, cancel.
func (a *App) viewBookings(ctx context.Context) error {
	listing, err := a.bookings.My(ctx, models.BookingFilter{})
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	printListingNote(listing)

	if len(listing.Items) == 0 {
		fmt.Println("No bookings yet. Book a slot from the (s)lots screen.")
		return nil
	}
	fmt.Println("== My bookings ==")
	for _, b := range listing.Items {
		fmt.Println(" " + formatBooking(b))
	}

	if listing.FromCache {
		return nil
	}

	line, err := getSimpleText(a.reader, "Action: arrive <id> | extend <id> <minutes> | cancel <id> <reason> (blank to go back)", os.Stdout)
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		fmt.Println("Usage: arrive|extend|cancel <id> ...")
		return nil
	}
	cmd, id := parts[0], parts[1]

	switch cmd {
	case "arrive":
		b, err := a.bookings.MarkArrival(ctx, id)
		if err != nil {
			fmt.Println(describeErr(err))
			return nil
		}
		fmt.Println("Arrival recorded:", formatBooking(*b))
		return a.viewBookings(ctx)

	case "extend":
		if len(parts) < 3 {
			fmt.Println("Usage: extend <id> <minutes>")
			return nil
		}
		minutes, aerr := strconv.Atoi(parts[2])
		if aerr != nil || minutes <= 0 {
			fmt.Println("Minutes must be a positive number.")
			return nil
		}
		if b := findBooking(listing.Items, id); b != nil && !b.CanExtend() {
			fmt.Printf("This booking cannot be extended (limit is %d extensions).\n", models.MaxExtensions)
			return nil
		}
		b, err := a.bookings.Extend(ctx, id, minutes)
		if err != nil {
			fmt.Println(describeErr(err))
			return nil
		}
		fmt.Println("Extended:", formatBooking(*b))
		return a.viewBookings(ctx)

	case "cancel":
		reason := strings.Join(parts[2:], " ")
		b, err := a.bookings.Cancel(ctx, id, reason)
		if err != nil {
			fmt.Println(describeErr(err))
			return nil
		}
		fmt.Println("Cancelled:", formatBooking(*b))
		return a.viewBookings(ctx)

	default:
		fmt.Println("Unknown action:", cmd)
	}
	return nil
}

func findBooking(bookings []models.Booking, id string) *models.Booking {
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i]
		}
	}
	return nil
}
