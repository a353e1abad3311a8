package services

import (
	"context"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/cache"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// BookingService defines booking operations for the views. Mutations always
// require the network; only the unfiltered "my bookings" listing has an
// offline snapshot.
type BookingService interface {
	Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	My(ctx context.Context, f models.BookingFilter) (Listing[models.Booking], error)
	All(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	MarkArrival(ctx context.Context, id string) (*models.Booking, error)
	Extend(ctx context.Context, id string, extraMinutes int) (*models.Booking, error)
	Cancel(ctx context.Context, id, reason string) (*models.Booking, error)
}

type bookingService struct {
	api   api.Client
	cache cache.Repository
	log   logging.Logger
}

func NewBookingService(apiClient api.Client, cacheRepo cache.Repository, log logging.Logger) BookingService {
	return &bookingService{api: apiClient, cache: cacheRepo, log: log}
}

const cacheKeyBookings = "bookings"

func (s *bookingService) Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	return s.api.CreateBooking(ctx, req)
}

func (s *bookingService) My(ctx context.Context, f models.BookingFilter) (Listing[models.Booking], error) {
	if f != (models.BookingFilter{}) {
		bs, err := s.api.MyBookings(ctx, f)
		if err != nil {
			return Listing[models.Booking]{}, err
		}
		return Listing[models.Booking]{Items: bs}, nil
	}
	return fetchList(ctx, s.cache, s.log, cacheKeyBookings, func(ctx context.Context) ([]models.Booking, error) {
		return s.api.MyBookings(ctx, f)
	})
}

func (s *bookingService) All(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	return s.api.AllBookings(ctx, f)
}

func (s *bookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.api.Booking(ctx, id)
}

func (s *bookingService) MarkArrival(ctx context.Context, id string) (*models.Booking, error) {
	return s.api.MarkArrival(ctx, id)
}

func (s *bookingService) Extend(ctx context.Context, id string, extraMinutes int) (*models.Booking, error) {
	return s.api.ExtendBooking(ctx, id, extraMinutes)
}

func (s *bookingService) Cancel(ctx context.Context, id, reason string) (*models.Booking, error) {
	return s.api.CancelBooking(ctx, id, reason)
}
