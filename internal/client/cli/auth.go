package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/session"
	"github.com/kparkhq/kpark-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// viewLogin prompts for credentials and authenticates through the session
// store. On success it moves straight to the dashboard.
func (a *App) viewLogin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.store.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			return nil
		}
		fmt.Println(describeErr(err))
		return nil
	}

	fmt.Printf("Welcome, %s!\n", id.Name)
	return a.Open(ctx, "/dashboard")
}

// viewAdminLogin is the admin entry point. Authentication is the same; a
// non-admin account is rejected and logged straight back out so a plain
// user never holds a session obtained through the admin door.
func (a *App) viewAdminLogin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter admin email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.store.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			return nil
		}
		fmt.Println(describeErr(err))
		return nil
	}

	if !id.Role.IsAdmin() {
		fmt.Println("This account has no administrator access.")
		a.store.Logout()
		return nil
	}

	fmt.Printf("Welcome, %s!\n", id.Name)
	return a.Open(ctx, "/admin/dashboard")
}

// viewRegister collects a new account profile and signs the user in.
func (a *App) viewRegister(ctx context.Context) error {
	var profile models.RegisterProfile
	var err error

	if profile.Name, err = getSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if profile.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}
	if profile.Phone, err = getSimpleText(a.reader, "Phone (optional)", os.Stdout); err != nil {
		return err
	}
	if profile.VehicleNumber, err = getSimpleText(a.reader, "Vehicle number (optional)", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	profile.Password = string(password)

	id, err := a.store.Register(ctx, profile)
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			return nil
		}
		fmt.Println(describeErr(err))
		return nil
	}

	fmt.Printf("Account created. Welcome, %s!\n", id.Name)
	return a.Open(ctx, "/dashboard")
}
