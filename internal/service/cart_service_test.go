package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-console/internal/entity"
	"business-console/internal/kv"
	"business-console/internal/repository"
)

type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (n *recordingNotifier) Notify(_ context.Context, note Notification) {
	n.mu.Lock()
	n.notes = append(n.notes, note)
	n.mu.Unlock()
}

var (
	itemA = entity.ShowcaseItem{ID: "a", Name: "Lace front", Price: 5.0, Published: true}
	itemB = entity.ShowcaseItem{ID: "b", Name: "Croissant box", Price: 12.0, Published: true}
)

func newCart(t *testing.T, store kv.Store) (*CartService, *recordingNotifier) {
	t.Helper()
	notes := &recordingNotifier{}
	return NewCartService(context.Background(), repository.NewCartRepository(store), notes), notes
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	cart, notes := newCart(t, kv.NewMemoryStore(0))

	_, err := cart.AddItem(ctx, itemA)
	require.NoError(t, err)
	added, err := cart.AddItem(ctx, itemA)
	require.NoError(t, err)

	assert.Equal(t, 2, added.Quantity)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Len(t, notes.notes, 2)
	assert.Equal(t, "Added to cart", notes.notes[0].Title)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))

	_, _ = cart.AddItem(ctx, itemB)
	_, _ = cart.AddItem(ctx, itemA)
	_, _ = cart.AddItem(ctx, itemB)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestAddItemRejectsMissingID(t *testing.T) {
	cart, notes := newCart(t, kv.NewMemoryStore(0))
	_, err := cart.AddItem(context.Background(), entity.ShowcaseItem{Name: "nameless"})
	assert.ErrorIs(t, err, ErrInvalidCartItem)
	assert.Empty(t, cart.Items())
	assert.Empty(t, notes.notes)
}

func TestTotalIsExactSum(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))

	_, _ = cart.AddItem(ctx, itemA)
	_, _ = cart.AddItem(ctx, itemA)
	_, _ = cart.AddItem(ctx, itemB)

	assert.True(t, decimal.NewFromFloat(22.0).Equal(cart.Total()), "got %s", cart.Total())
	assert.Equal(t, 3, cart.Count())
}

func TestTotalHasNoFloatDrift(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))

	_, _ = cart.AddItem(ctx, entity.ShowcaseItem{ID: "x", Price: 0.1})
	_, _ = cart.AddItem(ctx, entity.ShowcaseItem{ID: "y", Price: 0.2})
	require.NoError(t, cart.UpdateQuantity(ctx, "x", 3))

	assert.Equal(t, "0.5", cart.Total().String())
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))
	_, _ = cart.AddItem(ctx, itemA)
	_, _ = cart.AddItem(ctx, itemB)

	require.NoError(t, cart.UpdateQuantity(ctx, "a", 1000))
	assert.Equal(t, 1000, cart.Items()[0].Quantity)

	require.NoError(t, cart.UpdateQuantity(ctx, "a", 0))
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)

	require.NoError(t, cart.UpdateQuantity(ctx, "b", -3))
	assert.Empty(t, cart.Items())

	// unknown id is a no-op
	require.NoError(t, cart.UpdateQuantity(ctx, "zzz", 4))
	assert.Empty(t, cart.Items())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))
	_, _ = cart.AddItem(ctx, itemA)

	require.NoError(t, cart.RemoveItem(ctx, "missing"))
	assert.Len(t, cart.Items(), 1)

	require.NoError(t, cart.RemoveItem(ctx, "a"))
	assert.Empty(t, cart.Items())
	assert.True(t, cart.Total().IsZero())
}

func TestCartIsMirroredToStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	cart, _ := newCart(t, store)

	_, _ = cart.AddItem(ctx, itemA)
	_, _ = cart.AddItem(ctx, itemB)
	require.NoError(t, cart.UpdateQuantity(ctx, "b", 4))

	reopened, _ := newCart(t, store)
	assert.Equal(t, cart.Items(), reopened.Items())
	assert.True(t, decimal.NewFromInt(53).Equal(reopened.Total()))

	require.NoError(t, cart.Clear(ctx))
	reopened, _ = newCart(t, store)
	assert.Empty(t, reopened.Items())
}

func TestFailedWriteLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	cart, notes := newCart(t, store)
	_, err := cart.AddItem(ctx, itemA)
	require.NoError(t, err)

	store.SetQuota(1)
	_, err = cart.AddItem(ctx, itemB)
	assert.ErrorIs(t, err, repository.ErrStorageExhausted)
	assert.ErrorIs(t, cart.UpdateQuantity(ctx, "a", 7), repository.ErrStorageExhausted)
	assert.ErrorIs(t, cart.Clear(ctx), repository.ErrStorageExhausted)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Len(t, notes.notes, 1)

	store.SetQuota(0)
	_, err = cart.AddItem(ctx, itemB)
	require.NoError(t, err)
	assert.Len(t, cart.Items(), 2)
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))
	_, _ = cart.AddItem(ctx, itemA)

	items := cart.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cart.AddItem(ctx, itemA)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, cart.Items()[0].Quantity)
}

func TestRemoveSubmitted(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))
	for i := 0; i < 3; i++ {
		_, _ = cart.AddItem(ctx, itemA)
	}
	_, _ = cart.AddItem(ctx, itemB)

	require.NoError(t, cart.RemoveSubmitted(ctx, []entity.CartItem{
		{ShowcaseItem: itemA, Quantity: 2},
		{ShowcaseItem: itemB, Quantity: 5},
		{ShowcaseItem: entity.ShowcaseItem{ID: "gone"}, Quantity: 1},
	}))
	assert.Equal(t, []entity.CartItem{{ShowcaseItem: itemA, Quantity: 1}}, cart.Items())
}
