// Package services contains the application services of the kpark client:
// thin orchestration over the API client, plus an offline read cache so
// list screens can still show the last known data when the server is
// unreachable.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kparkhq/kpark-cli/internal/client/api"
	"github.com/kparkhq/kpark-cli/internal/client/repositories/cache"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// Listing wraps a fetched list with its provenance: fresh from the server,
// or a cached snapshot with its fetch time.
type Listing[T any] struct {
	Items     []T
	FromCache bool
	FetchedAt time.Time
}

// fetchList runs fetch and caches the result under key. When the server is
// unreachable and a snapshot exists, the snapshot is returned instead of
// the error. Any other failure passes through.
func fetchList[T any](ctx context.Context, repo cache.Repository, log logging.Logger, key string, fetch func(context.Context) ([]T, error)) (Listing[T], error) {
	items, err := fetch(ctx)
	if err == nil {
		if b, merr := json.Marshal(items); merr == nil {
			if perr := repo.Put(ctx, key, b, time.Now()); perr != nil {
				log.Warn(ctx, "caching snapshot failed", "key", key, "err", perr)
			}
		}
		return Listing[T]{Items: items, FetchedAt: time.Now()}, nil
	}

	if !errors.Is(err, api.ErrUnavailable) {
		return Listing[T]{}, err
	}

	raw, at, cerr := repo.Get(ctx, key)
	if cerr != nil || raw == nil {
		return Listing[T]{}, err
	}
	var cached []T
	if uerr := json.Unmarshal(raw, &cached); uerr != nil {
		return Listing[T]{}, err
	}
	log.Info(ctx, "server unreachable, serving cached snapshot", "key", key, "age", time.Since(at))
	return Listing[T]{Items: cached, FromCache: true, FetchedAt: at}, nil
}
