package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// viewAdminDashboard shows the facility summary and, on request, the
// occupancy series for a date range.
func (a *App) viewAdminDashboard(ctx context.Context) error {
	stats, err := a.admin.Dashboard(ctx)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}

	fmt.Println("== Admin dashboard ==")
	fmt.Println(" Total slots:          ", stats.TotalSlots)
	fmt.Println(" Active bookings today:", stats.ActiveBookingsToday)
	fmt.Println(" Registered users:     ", stats.TotalUsers)
	fmt.Println(" Waitlist length:      ", stats.WaitlistLength)

	show, err := GetConfirm(a.reader, "Show occupancy analytics?", os.Stdout)
	if err != nil || !show {
		return err
	}

	from, err := getSimpleText(a.reader, "From date YYYY-MM-DD", os.Stdout)
	if err != nil {
		return err
	}
	to, err := getSimpleText(a.reader, "To date YYYY-MM-DD", os.Stdout)
	if err != nil {
		return err
	}

	points, err := a.admin.Occupancy(ctx, from, to)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	for _, p := range points {
		fmt.Printf(" %s  %5.1f%%  (%d bookings)\n", p.Date, p.Occupancy*100, p.Bookings)
	}
	return nil
}

// viewAdminSlots manages the slot inventory: add, edit, deactivate.
func (a *App) viewAdminSlots(ctx context.Context) error {
	listing, err := a.slots.List(ctx, models.SlotFilter{})
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	printListingNote(listing)

	fmt.Println("== Slot inventory ==")
	for _, s := range listing.Items {
		state := "active"
		if !s.IsActive {
			state = "inactive"
		}
		fmt.Printf(" %s  %-6s floor %-3s %-12s %-8s %s\n", s.ID, s.SlotNumber, s.Floor, s.SlotType, s.Category, state)
	}

	if listing.FromCache {
		return nil
	}

	line, err := getSimpleText(a.reader, "Action: add | edit <id> | delete <id> (blank to go back)", os.Stdout)
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)

	switch parts[0] {
	case "add":
		spec, serr := a.promptSlotSpec(models.SlotSpec{})
		if serr != nil {
			return serr
		}
		s, cerr := a.slots.Create(ctx, spec)
		if cerr != nil {
			fmt.Println(describeErr(cerr))
			return nil
		}
		fmt.Printf("Created slot %s (%s).\n", s.SlotNumber, s.ID)
		return a.viewAdminSlots(ctx)

	case "edit":
		if len(parts) != 2 {
			fmt.Println("Usage: edit <id>")
			return nil
		}
		current, gerr := a.slots.Get(ctx, parts[1])
		if gerr != nil {
			fmt.Println(describeErr(gerr))
			return nil
		}
		spec, serr := a.promptSlotSpec(models.SlotSpec{
			SlotNumber: current.SlotNumber,
			SlotType:   current.SlotType,
			Category:   current.Category,
			Floor:      current.Floor,
		})
		if serr != nil {
			return serr
		}
		s, uerr := a.slots.Update(ctx, parts[1], spec)
		if uerr != nil {
			fmt.Println(describeErr(uerr))
			return nil
		}
		fmt.Printf("Updated slot %s.\n", s.SlotNumber)
		return a.viewAdminSlots(ctx)

	case "delete":
		if len(parts) != 2 {
			fmt.Println("Usage: delete <id>")
			return nil
		}
		ok, cerr := GetConfirm(a.reader, "Delete slot "+parts[1]+"?", os.Stdout)
		if cerr != nil || !ok {
			return cerr
		}
		if derr := a.slots.Delete(ctx, parts[1]); derr != nil {
			fmt.Println(describeErr(derr))
			return nil
		}
		fmt.Println("Slot deleted.")
		return a.viewAdminSlots(ctx)

	default:
		fmt.Println("Unknown action:", parts[0])
	}
	return nil
}

func (a *App) promptSlotSpec(def models.SlotSpec) (models.SlotSpec, error) {
	var spec models.SlotSpec
	var err error

	if spec.SlotNumber, err = GetTextDefault(a.reader, "Slot number", def.SlotNumber, os.Stdout); err != nil {
		return spec, err
	}
	st, err := GetTextDefault(a.reader, "Slot type two-wheeler/four-wheeler", string(def.SlotType), os.Stdout)
	if err != nil {
		return spec, err
	}
	spec.SlotType = models.SlotType(st)
	cat, err := GetTextDefault(a.reader, "Category general/reserved/visitor", string(def.Category), os.Stdout)
	if err != nil {
		return spec, err
	}
	spec.Category = models.SlotCategory(cat)
	if spec.Floor, err = GetTextDefault(a.reader, "Floor", def.Floor, os.Stdout); err != nil {
		return spec, err
	}
	return spec, nil
}

// viewAdminUsers lists accounts, optionally filtered by role, and applies
// role or activation changes.
func (a *App) viewAdminUsers(ctx context.Context) error {
	roleFilter, err := getSimpleText(a.reader, "Filter by role admin/manager/employee (blank for all)", os.Stdout)
	if err != nil {
		return err
	}

	users, err := a.admin.Users(ctx, models.Role(roleFilter))
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}

	fmt.Println("== Users ==")
	for _, u := range users {
		state := "active"
		if !u.IsActive {
			state = "disabled"
		}
		fmt.Printf(" %s  %-24s %-28s %-8s %s\n", u.ID, u.Name, u.Email, u.Role, state)
	}

	line, err := getSimpleText(a.reader, "Action: role <id> <role> | enable <id> | disable <id> (blank to go back)", os.Stdout)
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		fmt.Println("Usage: role|enable|disable <id> ...")
		return nil
	}

	var patch models.UserPatch
	switch parts[0] {
	case "role":
		if len(parts) != 3 {
			fmt.Println("Usage: role <id> <role>")
			return nil
		}
		role := string(models.ParseRole(parts[2]))
		patch.Role = &role
	case "enable":
		active := true
		patch.IsActive = &active
	case "disable":
		active := false
		patch.IsActive = &active
	default:
		fmt.Println("Unknown action:", parts[0])
		return nil
	}

	u, err := a.admin.UpdateUser(ctx, parts[1], patch)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	fmt.Printf("Updated %s (role %s, active %v).\n", u.Email, u.Role, u.IsActive)
	return a.viewAdminUsers(ctx)
}

// viewAdminBookings lists every booking with optional filters and lets the
// admin force-cancel one on a user's behalf.
func (a *App) viewAdminBookings(ctx context.Context) error {
	var f models.BookingFilter
	var err error

	if f.Date, err = getSimpleText(a.reader, "Filter by date YYYY-MM-DD (blank for all)", os.Stdout); err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Filter by status active/completed/cancelled/expired (blank for all)", os.Stdout)
	if err != nil {
		return err
	}
	f.Status = models.BookingStatus(status)

	bookings, err := a.bookings.All(ctx, f)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}

	fmt.Println("== All bookings ==")
	for _, b := range bookings {
		user := "?"
		if b.User != nil {
			user = b.User.Email
		}
		fmt.Printf(" %s  %s\n", user, formatBooking(b))
	}

	line, err := getSimpleText(a.reader, "Action: cancel <id> <reason> (blank to go back)", os.Stdout)
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)
	if len(parts) < 3 || parts[0] != "cancel" {
		fmt.Println("Usage: cancel <id> <reason>")
		return nil
	}

	b, err := a.admin.OverrideBooking(ctx, parts[1], models.BookingOverride{
		Action: "cancel",
		Reason: strings.Join(parts[2:], " "),
	})
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	fmt.Println("Cancelled:", formatBooking(*b))
	return a.viewAdminBookings(ctx)
}
