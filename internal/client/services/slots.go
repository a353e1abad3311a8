package services

import (
	"context"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/cache"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// SlotService defines slot operations for the views.
type SlotService interface {
	// List fetches slots; with a zero filter the result is cached for
	// offline display. Filtered availability queries are never served
	// from cache: stale availability is worse than no availability.
	List(ctx context.Context, f models.SlotFilter) (Listing[models.Slot], error)
	Get(ctx context.Context, id string) (*models.Slot, error)
	Create(ctx context.Context, spec models.SlotSpec) (*models.Slot, error)
	Update(ctx context.Context, id string, spec models.SlotSpec) (*models.Slot, error)
	Delete(ctx context.Context, id string) error
}

type slotService struct {
	api   api.Client
	cache cache.Repository
	log   logging.Logger
}

func NewSlotService(apiClient api.Client, cacheRepo cache.Repository, log logging.Logger) SlotService {
	return &slotService{api: apiClient, cache: cacheRepo, log: log}
}

const cacheKeySlots = "slots"

func (s *slotService) List(ctx context.Context, f models.SlotFilter) (Listing[models.Slot], error) {
	if f != (models.SlotFilter{}) {
		slots, err := s.api.Slots(ctx, f)
		if err != nil {
			return Listing[models.Slot]{}, err
		}
		return Listing[models.Slot]{Items: slots}, nil
	}
	return fetchList(ctx, s.cache, s.log, cacheKeySlots, func(ctx context.Context) ([]models.Slot, error) {
		return s.api.Slots(ctx, f)
	})
}

func (s *slotService) Get(ctx context.Context, id string) (*models.Slot, error) {
	return s.api.Slot(ctx, id)
}

func (s *slotService) Create(ctx context.Context, spec models.SlotSpec) (*models.Slot, error) {
	return s.api.CreateSlot(ctx, spec)
}

func (s *slotService) Update(ctx context.Context, id string, spec models.SlotSpec) (*models.Slot, error) {
	return s.api.UpdateSlot(ctx, id, spec)
}

func (s *slotService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteSlot(ctx, id)
}
