package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// viewSlots shows the slot map, optionally filtered to a booking window,
// and lets the user book a slot in place. When the chosen window is taken
// the user is offered a waitlist spot instead, mirroring the backend's
// suggestion.
func (a *App) viewSlots(ctx context.Context) error {
	filter, err := a.promptSlotFilter()
	if err != nil {
		return err
	}

	listing, err := a.slots.List(ctx, filter)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	printListingNote(listing)

	if len(listing.Items) == 0 {
		fmt.Println("No slots found.")
		return nil
	}
	fmt.Println("== Slots ==")
	for _, s := range listing.Items {
		avail := ""
		if filter.Date != "" && !s.IsAvailable {
			avail = "  (taken)"
		}
		fmt.Printf(" %s  %-6s floor %-3s %-12s %-8s%s\n", s.ID, s.SlotNumber, s.Floor, s.SlotType, s.Category, avail)
	}

	if listing.FromCache {
		return nil
	}

	slotID, err := getSimpleText(a.reader, "Slot id to book (blank to go back)", os.Stdout)
	if err != nil || slotID == "" {
		return err
	}
	return a.bookSlot(ctx, slotID, filter, listing.Items)
}

// promptSlotFilter asks for an optional booking window. A blank date means
// an unfiltered listing, which is the cacheable one.
func (a *App) promptSlotFilter() (models.SlotFilter, error) {
	var f models.SlotFilter
	var err error

	if f.Date, err = getSimpleText(a.reader, "Date YYYY-MM-DD (blank for all slots)", os.Stdout); err != nil {
		return f, err
	}
	if f.Date == "" {
		return f, nil
	}
	if f.StartTime, err = getSimpleText(a.reader, "Start time HH:MM", os.Stdout); err != nil {
		return f, err
	}
	if f.EndTime, err = getSimpleText(a.reader, "End time HH:MM", os.Stdout); err != nil {
		return f, err
	}

	st, err := getSimpleText(a.reader, "Slot type two-wheeler/four-wheeler (blank for any)", os.Stdout)
	if err != nil {
		return f, err
	}
	f.SlotType = models.SlotType(st)
	return f, nil
}

func (a *App) bookSlot(ctx context.Context, slotID string, f models.SlotFilter, slots []models.Slot) error {
	req := models.BookingRequest{SlotID: slotID, BookingDate: f.Date, StartTime: f.StartTime, EndTime: f.EndTime}
	var err error

	// without a window filter the booking window still has to come from somewhere
	if req.BookingDate == "" {
		if req.BookingDate, err = getSimpleText(a.reader, "Booking date YYYY-MM-DD", os.Stdout); err != nil {
			return err
		}
		if req.StartTime, err = getSimpleText(a.reader, "Start time HH:MM", os.Stdout); err != nil {
			return err
		}
		if req.EndTime, err = getSimpleText(a.reader, "End time HH:MM", os.Stdout); err != nil {
			return err
		}
	}

	booking, err := a.bookings.Book(ctx, req)
	if err == nil {
		fmt.Println("Booked:", formatBooking(*booking))
		return a.Open(ctx, "/bookings")
	}
	if !errors.Is(err, api.ErrSlotTaken) {
		fmt.Println(describeErr(err))
		return nil
	}

	fmt.Println(describeErr(err))
	join, cerr := GetConfirm(a.reader, "Join the waitlist for this window instead?", os.Stdout)
	if cerr != nil || !join {
		return cerr
	}

	slotType := slotTypeOf(slotID, slots)
	if slotType == "" {
		st, terr := getSimpleText(a.reader, "Slot type two-wheeler/four-wheeler", os.Stdout)
		if terr != nil {
			return terr
		}
		slotType = models.SlotType(st)
	}

	entry, werr := a.waitlist.Join(ctx, models.WaitlistRequest{
		SlotType:           slotType,
		BookingDate:        req.BookingDate,
		PreferredStartTime: req.StartTime,
		PreferredEndTime:   req.EndTime,
	})
	if werr != nil {
		fmt.Println(describeErr(werr))
		return nil
	}
	fmt.Printf("Joined the waitlist at position %d.\n", entry.Position)
	return nil
}

func slotTypeOf(slotID string, slots []models.Slot) models.SlotType {
	for _, s := range slots {
		if s.ID == slotID {
			return s.SlotType
		}
	}
	return ""
}
