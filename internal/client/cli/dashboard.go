package cli

import (
	"context"
	"fmt"

	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// viewDashboard is the landing screen: active bookings plus any waitlist
// entries that need a confirmation before their deadline.
func (a *App) viewDashboard(ctx context.Context) error {
	id := a.store.Snapshot().Identity
	fmt.Printf("== Dashboard: %s ==\n", id.Name)

	if slots, err := a.slots.List(ctx, models.SlotFilter{}); err == nil {
		active := 0
		for _, s := range slots.Items {
			if s.IsActive {
				active++
			}
		}
		fmt.Printf("Facility: %d slots (%d active).\n", len(slots.Items), active)
	}

	bookings, err := a.bookings.My(ctx, models.BookingFilter{Status: models.BookingActive})
	if err != nil {
		fmt.Println(describeErr(err))
	} else {
		printListingNote(bookings)
		if len(bookings.Items) == 0 {
			fmt.Println("No active bookings.")
		}
		for _, b := range bookings.Items {
			fmt.Println(" " + formatBooking(b))
		}
	}

	waiting, err := a.waitlist.My(ctx)
	if err != nil {
		return nil
	}
	for _, w := range waiting.Items {
		if w.Status == models.WaitlistNotified {
			fmt.Printf("A %s slot opened for %s! Confirm on the (w)aitlist screen before %s.\n",
				w.SlotType, w.BookingDate, fmtDeadline(w.ConfirmationDeadline))
		}
	}
	return nil
}

func formatBooking(b models.Booking) string {
	slot := "?"
	if b.Slot != nil {
		slot = b.Slot.SlotNumber
	}
	s := fmt.Sprintf("%s  slot %s  %s %s-%s  [%s]", b.ID, slot, b.BookingDate, b.StartTime, b.EndTime, b.Status)
	if b.ExtensionCount > 0 {
		s += fmt.Sprintf("  extended x%d", b.ExtensionCount)
	}
	if b.ArrivedAt != nil {
		s += "  arrived"
	}
	return s
}
