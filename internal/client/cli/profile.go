package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/common"
)

// viewProfile shows the account details and session expiry, and lets the
// user edit the profile or change the password.
func (a *App) viewProfile(ctx context.Context) error {
	info, err := a.profile.Info(ctx)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	id := info.Identity

	fmt.Println("== Profile ==")
	fmt.Println(" Name:   ", id.Name)
	fmt.Println(" Email:  ", id.Email)
	fmt.Println(" Phone:  ", id.Phone)
	fmt.Println(" Vehicle:", id.VehicleNumber)
	fmt.Println(" Role:   ", id.Role)
	if !info.Expiry.IsZero() {
		fmt.Println(" Session valid until:", info.Expiry.Local().Format("2006-01-02 15:04"))
	}

	line, err := getSimpleText(a.reader, "Action: edit | password (blank to go back)", os.Stdout)
	if err != nil || line == "" {
		return err
	}

	switch line {
	case "edit":
		return a.editProfile(ctx, id)
	case "password":
		return a.changePassword(ctx)
	default:
		fmt.Println("Unknown action:", line)
	}
	return nil
}

// editProfile prompts for the editable fields; Enter keeps the current value.
func (a *App) editProfile(ctx context.Context, id *models.Identity) error {
	var upd models.ProfileUpdate
	var err error

	if upd.Name, err = GetTextDefault(a.reader, "Name", id.Name, os.Stdout); err != nil {
		return err
	}
	if upd.Phone, err = GetTextDefault(a.reader, "Phone", id.Phone, os.Stdout); err != nil {
		return err
	}
	if upd.VehicleNumber, err = GetTextDefault(a.reader, "Vehicle number", id.VehicleNumber, os.Stdout); err != nil {
		return err
	}

	updated, err := a.profile.Update(ctx, upd)
	if err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	fmt.Printf("Profile updated, %s.\n", updated.Name)
	return nil
}

func (a *App) changePassword(ctx context.Context) error {
	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.profile.ChangePassword(ctx, string(current), string(next)); err != nil {
		fmt.Println(describeErr(err))
		return nil
	}
	fmt.Println("Password changed.")
	return nil
}
