package services

import (
	"context"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/cache"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// WaitlistService defines waitlist operations for the views.
type WaitlistService interface {
	Join(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error)
	My(ctx context.Context) (Listing[models.WaitlistEntry], error)
	All(ctx context.Context) ([]models.WaitlistEntry, error)
	Leave(ctx context.Context, id string) error
	// Confirm accepts a notified entry before its deadline; the backend
	// converts it into a booking.
	Confirm(ctx context.Context, id string) (*models.Booking, error)
}

type waitlistService struct {
	api   api.Client
	cache cache.Repository
	log   logging.Logger
}

func NewWaitlistService(apiClient api.Client, cacheRepo cache.Repository, log logging.Logger) WaitlistService {
	return &waitlistService{api: apiClient, cache: cacheRepo, log: log}
}

const cacheKeyWaitlist = "waitlist"

func (s *waitlistService) Join(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error) {
	return s.api.JoinWaitlist(ctx, req)
}

func (s *waitlistService) My(ctx context.Context) (Listing[models.WaitlistEntry], error) {
	return fetchList(ctx, s.cache, s.log, cacheKeyWaitlist, func(ctx context.Context) ([]models.WaitlistEntry, error) {
		return s.api.MyWaitlist(ctx)
	})
}

func (s *waitlistService) All(ctx context.Context) ([]models.WaitlistEntry, error) {
	return s.api.AllWaitlist(ctx)
}

func (s *waitlistService) Leave(ctx context.Context, id string) error {
	return s.api.LeaveWaitlist(ctx, id)
}

func (s *waitlistService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	return s.api.ConfirmWaitlist(ctx, id)
}
