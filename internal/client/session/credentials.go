package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kparkhq/kpark-cli/internal/client/models"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/metadata"
)

// Storage keys for the persisted credential pair. Written and cleared
// together, never one without the other.
const (
	keyToken    = "token"
	keyIdentity = "identity"
)

// CredentialStore owns the persisted credential pair: the opaque bearer
// token and a cached copy of the identity. It implements api.TokenSource,
// so every outgoing request reads the live persisted token.
type CredentialStore struct {
	repo metadata.Repository
}

func NewCredentialStore(repo metadata.Repository) *CredentialStore {
	return &CredentialStore{repo: repo}
}

// Token returns the persisted bearer token, or "" when logged out.
func (c *CredentialStore) Token(ctx context.Context) (string, error) {
	v, err := c.repo.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Identity returns the cached identity. A missing or unreadable cache reads
// as nil: a corrupt entry means "no session", not an error the user sees.
func (c *CredentialStore) Identity(ctx context.Context) (*models.Identity, error) {
	v, err := c.repo.Get(ctx, keyIdentity)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var id models.Identity
	if err := json.Unmarshal(v, &id); err != nil {
		return nil, nil
	}
	id.Role = models.ParseRole(string(id.Role))
	return &id, nil
}

// Save persists the token and the identity cache in one transaction.
func (c *CredentialStore) Save(ctx context.Context, token string, id *models.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	return c.repo.SetAll(ctx, map[string][]byte{
		keyToken:    []byte(token),
		keyIdentity: b,
	})
}

// SaveIdentity refreshes only the cached identity, keeping the current
// token. Used after a successful silent restore or a profile update.
func (c *CredentialStore) SaveIdentity(ctx context.Context, id *models.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	return c.repo.Set(ctx, keyIdentity, b)
}

// Clear removes both entries in one transaction. Clearing an already-empty
// store succeeds.
func (c *CredentialStore) Clear(ctx context.Context) error {
	return c.repo.DeleteAll(ctx, keyToken, keyIdentity)
}

// TokenExpiry decodes the exp claim of the persisted token without
// verifying the signature (verification is the backend's job; this is for
// display only). Returns the zero time when there is no token or no claim.
func (c *CredentialStore) TokenExpiry(ctx context.Context) (time.Time, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if token == "" {
		return time.Time{}, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
