package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-console/internal/entity"
	"business-console/internal/kv"
	"business-console/internal/repository"
)

type fakeCreator struct {
	calls  int
	last   entity.CreateOrderRequest
	resp   *entity.CreateOrderResponse
	err    error
	during func()
}

func (f *fakeCreator) CreateOrder(_ context.Context, req entity.CreateOrderRequest) (*entity.CreateOrderResponse, error) {
	f.calls++
	f.last = req
	if f.during != nil {
		f.during()
	}
	return f.resp, f.err
}

func filledCart(t *testing.T) (*CartService, *kv.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	cart, _ := newCart(t, store)
	_, err := cart.AddItem(ctx, itemA)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, itemA)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, itemB)
	require.NoError(t, err)
	return cart, store
}

var buyer = entity.Contact{Name: "Ada", Phone: "+15550100"}

func TestSubmitEmptyCartDoesNotCallCreator(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t, kv.NewMemoryStore(0))
	creator := &fakeCreator{}
	checkout := NewCheckoutService(creator, cart)

	order, err := checkout.Submit(ctx, "acmeco", cart.Items(), buyer)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
	assert.Zero(t, creator.calls)
	assert.Empty(t, cart.Items())
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	cart, _ := filledCart(t)
	creator := &fakeCreator{}
	checkout := NewCheckoutService(creator, cart)

	_, err := checkout.Submit(ctx, "", cart.Items(), buyer)
	assert.ErrorIs(t, err, ErrMissingTenant)

	_, err = checkout.Submit(ctx, "acmeco", cart.Items(), entity.Contact{Name: "  ", Phone: "123"})
	assert.ErrorIs(t, err, ErrMissingContact)

	_, err = checkout.Submit(ctx, "acmeco", cart.Items(), entity.Contact{Name: "Ada"})
	assert.ErrorIs(t, err, ErrMissingContact)

	assert.Zero(t, creator.calls)
	assert.Len(t, cart.Items(), 2)
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	cart, store := filledCart(t)
	created := &entity.Order{ID: "order-1", TenantID: "acmeco", Status: "pending"}
	creator := &fakeCreator{resp: &entity.CreateOrderResponse{Success: true, Order: created}}
	checkout := NewCheckoutService(creator, cart)

	order, err := checkout.Submit(ctx, "acmeco", cart.Items(), entity.Contact{Name: " Ada ", Phone: " +15550100 "})
	require.NoError(t, err)
	assert.Equal(t, created, order)
	assert.Equal(t, 1, creator.calls)

	assert.Equal(t, "acmeco", creator.last.TenantID)
	assert.Equal(t, buyer, creator.last.Contact)
	require.Len(t, creator.last.Items, 2)
	assert.Equal(t, entity.OrderLine{ID: "a", Name: "Lace front", Price: 5.0, Quantity: 2}, creator.last.Items[0])
	assert.Equal(t, entity.OrderLine{ID: "b", Name: "Croissant box", Price: 12.0, Quantity: 1}, creator.last.Items[1])

	assert.Empty(t, cart.Items())
	assert.Empty(t, repository.NewCartRepository(store).Load(ctx))
}

func TestSubmitKeepsItemsAddedDuringSubmission(t *testing.T) {
	ctx := context.Background()
	cart, store := filledCart(t)
	itemC := entity.ShowcaseItem{ID: "c", Name: "Edge brush", Price: 3.5}
	creator := &fakeCreator{resp: &entity.CreateOrderResponse{Success: true, Order: &entity.Order{ID: "order-3"}}}
	creator.during = func() {
		// another request adds to the cart while the order is in flight
		_, err := cart.AddItem(ctx, itemA)
		require.NoError(t, err)
		_, err = cart.AddItem(ctx, itemC)
		require.NoError(t, err)
	}
	checkout := NewCheckoutService(creator, cart)

	_, err := checkout.Submit(ctx, "acmeco", cart.Items(), buyer)
	require.NoError(t, err)

	want := []entity.CartItem{
		{ShowcaseItem: itemA, Quantity: 1},
		{ShowcaseItem: itemC, Quantity: 1},
	}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, repository.NewCartRepository(store).Load(ctx))
}

func TestSubmitRejectedKeepsCart(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		resp   *entity.CreateOrderResponse
		err    error
		reason string
	}{
		{"rejected with message", &entity.CreateOrderResponse{Success: false, Error: "shop closed"}, nil, "shop closed"},
		{"rejected without message", &entity.CreateOrderResponse{Success: false}, nil, fallbackRejection},
		{"nil response", nil, nil, fallbackRejection},
		{"transport failure", nil, errors.New("connection refused"), fallbackRejection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, _ := filledCart(t)
			creator := &fakeCreator{resp: tt.resp, err: tt.err}
			checkout := NewCheckoutService(creator, cart)

			order, err := checkout.Submit(ctx, "acmeco", cart.Items(), buyer)
			assert.Nil(t, order)

			var rejected *RejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.reason, rejected.Reason)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Equal(t, 1, creator.calls)
			assert.Len(t, cart.Items(), 2)
		})
	}
}

func TestSubmitReportsSuccessWhenClearFails(t *testing.T) {
	ctx := context.Background()
	cart, store := filledCart(t)
	creator := &fakeCreator{resp: &entity.CreateOrderResponse{Success: true, Order: &entity.Order{ID: "order-2"}}}
	checkout := NewCheckoutService(creator, cart)

	store.SetQuota(1)
	order, err := checkout.Submit(ctx, "acmeco", cart.Items(), buyer)
	require.NoError(t, err)
	assert.Equal(t, "order-2", order.ID)
	assert.Len(t, cart.Items(), 2)
}
