package repository

import (
	"context"
	"errors"

	"business-console/internal/keyspace"
	"business-console/internal/kv"
)

// OnboardingRepository owns the flag recording that the product tour ran.
type OnboardingRepository struct {
	store kv.Store
}

func NewOnboardingRepository(store kv.Store) *OnboardingRepository {
	return &OnboardingRepository{store: store}
}

// Shown reports false when the flag is absent, unreadable or not "true".
func (r *OnboardingRepository) Shown(ctx context.Context) bool {
	raw, err := r.store.Get(ctx, keyspace.TourKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Error().Err(err).Msg("Error reading tour flag")
		}
		return false
	}
	return string(raw) == "true"
}

func (r *OnboardingRepository) MarkShown(ctx context.Context) error {
	if err := r.store.Set(ctx, keyspace.TourKey, []byte("true")); err != nil {
		return writeError(err)
	}
	return nil
}
