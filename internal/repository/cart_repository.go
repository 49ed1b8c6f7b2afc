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

// CartRepository mirrors the visitor cart to the fixed cart key. The cart is
// scoped to the installation, not to a tenant.
type CartRepository struct {
	store kv.Store
}

func NewCartRepository(store kv.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Load returns the persisted items, dropping entries without an id or with a
// quantity below one. Missing or corrupt content yields an empty cart.
func (r *CartRepository) Load(ctx context.Context) []entity.CartItem {
	raw, err := r.store.Get(ctx, keyspace.CartKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Error().Err(err).Msg("Error reading cart, starting empty")
		}
		return []entity.CartItem{}
	}

	var items []entity.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Error().Err(err).Msg("Corrupt cart, starting empty")
		return []entity.CartItem{}
	}

	out := make([]entity.CartItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	if len(out) != len(items) {
		logger.Warn().Msgf("Dropped %d invalid cart item(s)", len(items)-len(out))
	}
	return out
}

func (r *CartRepository) Save(ctx context.Context, items []entity.CartItem) error {
	if items == nil {
		items = []entity.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := r.store.Set(ctx, keyspace.CartKey, b); err != nil {
		logger.Error().Err(err).Msg("Error writing cart")
		return writeError(err)
	}
	return nil
}
