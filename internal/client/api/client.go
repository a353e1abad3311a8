// Package api implements the REST client for the kpark backend: a typed
// method per endpoint over a shared HTTP wrapper that attaches the bearer
// token to every request and enforces the global reaction to authorization
// failures.
package api

import (
	"context"

	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// Client is the backend API surface consumed by the session store and the
// application services. All methods honor context cancellation.
type Client interface {
	Close() error

	// liveness
	Ping(ctx context.Context) error

	// auth
	Login(ctx context.Context, email, password string) (string, *models.Identity, error)
	Register(ctx context.Context, profile models.RegisterProfile) (string, *models.Identity, error)
	CurrentUser(ctx context.Context) (*models.Identity, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error)
	UpdatePassword(ctx context.Context, current, next string) error

	// slots
	Slots(ctx context.Context, f models.SlotFilter) ([]models.Slot, error)
	Slot(ctx context.Context, id string) (*models.Slot, error)
	CreateSlot(ctx context.Context, spec models.SlotSpec) (*models.Slot, error)
	UpdateSlot(ctx context.Context, id string, spec models.SlotSpec) (*models.Slot, error)
	DeleteSlot(ctx context.Context, id string) error

	// bookings
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	MyBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	AllBookings(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	Booking(ctx context.Context, id string) (*models.Booking, error)
	MarkArrival(ctx context.Context, id string) (*models.Booking, error)
	ExtendBooking(ctx context.Context, id string, extraMinutes int) (*models.Booking, error)
	CancelBooking(ctx context.Context, id, reason string) (*models.Booking, error)

	// waitlist
	JoinWaitlist(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error)
	MyWaitlist(ctx context.Context) ([]models.WaitlistEntry, error)
	AllWaitlist(ctx context.Context) ([]models.WaitlistEntry, error)
	LeaveWaitlist(ctx context.Context, id string) error
	ConfirmWaitlist(ctx context.Context, id string) (*models.Booking, error)

	// admin
	AdminDashboard(ctx context.Context) (*models.DashboardStats, error)
	Users(ctx context.Context, role models.Role) ([]models.Identity, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.Identity, error)
	OverrideBooking(ctx context.Context, id string, ov models.BookingOverride) (*models.Booking, error)
	Occupancy(ctx context.Context, from, to string) ([]models.OccupancyPoint, error)
}
