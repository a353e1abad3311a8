package services

import (
	"context"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
)

// AdminService defines the management operations behind the admin screens.
// All of them are online-only; admin data is never cached locally.
type AdminService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	Users(ctx context.Context, role models.Role) ([]models.Identity, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.Identity, error)
	OverrideBooking(ctx context.Context, id string, ov models.BookingOverride) (*models.Booking, error)
	Occupancy(ctx context.Context, from, to string) ([]models.OccupancyPoint, error)
}

type adminService struct {
	api api.Client
}

func NewAdminService(apiClient api.Client) AdminService {
	return &adminService{api: apiClient}
}

func (s *adminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return s.api.AdminDashboard(ctx)
}

func (s *adminService) Users(ctx context.Context, role models.Role) ([]models.Identity, error) {
	return s.api.Users(ctx, role)
}

func (s *adminService) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.Identity, error) {
	return s.api.UpdateUser(ctx, id, patch)
}

func (s *adminService) OverrideBooking(ctx context.Context, id string, ov models.BookingOverride) (*models.Booking, error) {
	return s.api.OverrideBooking(ctx, id, ov)
}

func (s *adminService) Occupancy(ctx context.Context, from, to string) ([]models.OccupancyPoint, error) {
	return s.api.Occupancy(ctx, from, to)
}
