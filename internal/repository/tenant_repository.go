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

// TenantRepository loads and saves one tenant's Dataset.
//
// Field saves and Update are read-modify-write without isolation: a save
// made by another process between the read and the write is lost. The last
// physical write wins.
type TenantRepository struct {
	store    kv.Store
	profiles *ProfileRepository
	defaults *entity.Dataset
}

func NewTenantRepository(store kv.Store, profiles *ProfileRepository) *TenantRepository {
	return &TenantRepository{store: store, profiles: profiles, defaults: DefaultDataset()}
}

// Load merges defaults, the persisted entry and the profile. It never writes
// and never fails; problems are logged and fall back to defaults.
func (r *TenantRepository) Load(ctx context.Context, tenantID string) *entity.Dataset {
	ds, _ := r.load(ctx, tenantID)
	return ds
}

// LoadOrInitialize is Load plus persisting the result when the tenant has no
// entry yet. A failure of that write is logged and does not affect the
// returned dataset.
func (r *TenantRepository) LoadOrInitialize(ctx context.Context, tenantID string) *entity.Dataset {
	ds, missing := r.load(ctx, tenantID)
	if missing && !keyspace.IsAnonymous(tenantID) {
		key := keyspace.TenantKey(tenantID)
		if err := r.write(ctx, key, ds); err != nil {
			logger.Error().Err(err).Msgf("Error persisting initial dataset for %s", key)
		} else {
			logger.Info().Msgf("Initialized dataset for %s", key)
		}
	}
	return ds
}

// Exists reports whether the tenant has a persisted entry. The anonymous
// tenant never has one.
func (r *TenantRepository) Exists(ctx context.Context, tenantID string) (bool, error) {
	if keyspace.IsAnonymous(tenantID) {
		return false, nil
	}
	_, err := r.store.Get(ctx, keyspace.TenantKey(tenantID))
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// load reports missing=true only when the store positively has no entry.
func (r *TenantRepository) load(ctx context.Context, tenantID string) (ds *entity.Dataset, missing bool) {
	key := keyspace.TenantKey(tenantID)
	ds = r.defaults.Clone()

	raw, err := r.store.Get(ctx, key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		missing = true
	case err != nil:
		logger.Error().Err(err).Msgf("Error reading dataset %s, using defaults", key)
		return r.defaults.Clone(), false
	default:
		if ds, err = decodeDataset(key, raw, ds); err != nil {
			logger.Error().Err(err).Msgf("Corrupt dataset %s, using defaults", key)
			return r.defaults.Clone(), false
		}
	}

	if r.profiles != nil {
		profile, err := r.profiles.Load(ctx)
		if err == nil {
			ds.User = entity.ProjectUser(*profile, r.defaults.User)
		} else if !errors.Is(err, ErrProfileNotFound) {
			logger.Error().Err(err).Msg("Error reading profile, keeping dataset user")
		}
	}
	return ds, missing
}

// Save writes ds as the tenant's whole dataset, bypassing the merge.
func (r *TenantRepository) Save(ctx context.Context, tenantID string, ds *entity.Dataset) error {
	if keyspace.IsAnonymous(tenantID) {
		return ErrAnonymousTenant
	}
	return r.write(ctx, keyspace.TenantKey(tenantID), ds)
}

// SaveField replaces one member of the tenant's dataset and writes the whole
// merged dataset back.
func (r *TenantRepository) SaveField(ctx context.Context, tenantID string, field entity.Field, value any) error {
	if keyspace.IsAnonymous(tenantID) {
		return ErrAnonymousTenant
	}
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if field == entity.FieldUser {
		return fmt.Errorf("%w: user is derived from the business profile", ErrInvalidField)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidField, field, err)
	}
	if err := applyField(&entity.Dataset{}, field, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidField, field, err)
	}

	ds := r.LoadOrInitialize(ctx, tenantID)
	if err := applyField(ds, field, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidField, field, err)
	}
	return r.Save(ctx, tenantID, ds)
}

// Update loads the dataset, lets fn change it, and writes it back. Nothing is
// written when fn returns an error.
func (r *TenantRepository) Update(ctx context.Context, tenantID string, fn func(*entity.Dataset) error) error {
	if keyspace.IsAnonymous(tenantID) {
		return ErrAnonymousTenant
	}
	ds := r.LoadOrInitialize(ctx, tenantID)
	if err := fn(ds); err != nil {
		return err
	}
	return r.Save(ctx, tenantID, ds)
}

// storedDataset is the persisted shape of a Dataset. User is projected from
// the profile on every load, so it is left out of the stored entry.
type storedDataset struct {
	*entity.Dataset
	User *struct{} `json:"user,omitempty"`
}

func (r *TenantRepository) write(ctx context.Context, key string, ds *entity.Dataset) error {
	b, err := json.Marshal(storedDataset{Dataset: ds})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := r.store.Set(ctx, key, b); err != nil {
		logger.Error().Err(err).Msgf("Error writing dataset %s", key)
		return writeError(err)
	}
	return nil
}
