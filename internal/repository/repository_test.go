package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-console/internal/entity"
	"business-console/internal/keyspace"
	"business-console/internal/kv"
)

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	repo := NewProfileRepository(store)

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	profile := &entity.Profile{StoredUsername: "acme", StoredPassword: "hash", BusinessName: "Acme"}
	require.NoError(t, repo.Save(ctx, profile))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	require.NoError(t, store.Set(ctx, keyspace.ProfileKey, []byte("[")))
	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRepositoryQuota(t *testing.T) {
	repo := NewProfileRepository(kv.NewMemoryStore(10))
	err := repo.Save(context.Background(), &entity.Profile{StoredUsername: "acme"})
	assert.ErrorIs(t, err, ErrStorageExhausted)
}

func TestOnboardingRepository(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	repo := NewOnboardingRepository(store)

	assert.False(t, repo.Shown(ctx))
	require.NoError(t, repo.MarkShown(ctx))
	assert.True(t, repo.Shown(ctx))

	store.getErr = errors.New("unavailable")
	assert.False(t, repo.Shown(ctx))

	store.setErr = kv.ErrQuotaExceeded
	assert.ErrorIs(t, repo.MarkShown(ctx), ErrStorageExhausted)
}

func TestCartRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(kv.NewMemoryStore(0))

	assert.Equal(t, []entity.CartItem{}, repo.Load(ctx))

	items := []entity.CartItem{
		{ShowcaseItem: entity.ShowcaseItem{ID: "a", Name: "A", Price: 5, Published: true}, Quantity: 2},
		{ShowcaseItem: entity.ShowcaseItem{ID: "b", Name: "B", Price: 12, Published: true}, Quantity: 1},
	}
	require.NoError(t, repo.Save(ctx, items))
	assert.Equal(t, items, repo.Load(ctx))

	require.NoError(t, repo.Save(ctx, nil))
	assert.Equal(t, []entity.CartItem{}, repo.Load(ctx))
}

func TestCartRepositoryDropsInvalidItems(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	repo := NewCartRepository(store)

	require.NoError(t, store.Set(ctx, keyspace.CartKey, []byte(`[
		{"id": "a", "name": "A", "price": 5, "quantity": 2},
		{"id": "", "name": "no id", "price": 1, "quantity": 1},
		{"id": "b", "name": "B", "price": 1, "quantity": 0},
		{"id": "a", "name": "A again", "price": 5, "quantity": 1}
	]`)))

	items := repo.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartRepositoryCorruptContent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, keyspace.CartKey, []byte(`{"not":"a list"}`)))

	assert.Equal(t, []entity.CartItem{}, NewCartRepository(store).Load(ctx))
}
