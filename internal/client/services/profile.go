package services

import (
	"context"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/session"
)

// ProfileService updates the user's own account. Successful profile edits
// flow back into the session store so every screen sees the new identity.
type ProfileService interface {
	Update(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error)
	ChangePassword(ctx context.Context, current, next string) error
	Info(ctx context.Context) (models.SessionInfo, error)
}

type profileService struct {
	api   api.Client
	store *session.Store
}

func NewProfileService(apiClient api.Client, store *session.Store) ProfileService {
	return &profileService{api: apiClient, store: store}
}

func (s *profileService) Update(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	id, err := s.api.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	s.store.RefreshIdentity(ctx, id)
	return id, nil
}

func (s *profileService) ChangePassword(ctx context.Context, current, next string) error {
	return s.api.UpdatePassword(ctx, current, next)
}

func (s *profileService) Info(ctx context.Context) (models.SessionInfo, error) {
	expiry, err := s.store.Credentials().TokenExpiry(ctx)
	if err != nil {
		return models.SessionInfo{}, err
	}
	return models.SessionInfo{
		Identity: s.store.Snapshot().Identity,
		Expiry:   expiry,
	}, nil
}
