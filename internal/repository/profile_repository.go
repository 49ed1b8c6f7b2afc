package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"business-console/internal/entity"
	"business-console/internal/keyspace"
	"business-console/internal/kv"
)

// ProfileRepository owns the single, non-namespaced profile record.
type ProfileRepository struct {
	store kv.Store
}

func NewProfileRepository(store kv.Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// Load returns ErrProfileNotFound when no profile exists yet. Corrupt content
// is logged and reported the same way.
func (r *ProfileRepository) Load(ctx context.Context) (*entity.Profile, error) {
	raw, err := r.store.Get(ctx, keyspace.ProfileKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	var profile entity.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		logger.Error().Err(err).Msg("Corrupt profile record")
		return nil, fmt.Errorf("%w: %v", ErrProfileNotFound, err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	b, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := r.store.Set(ctx, keyspace.ProfileKey, b); err != nil {
		logger.Error().Err(err).Msg("Error writing profile")
		return writeError(err)
	}
	return nil
}
