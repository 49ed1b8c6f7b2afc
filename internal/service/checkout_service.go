package service

import (
	"context"
	"errors"
	"strings"

	"business-console/internal/entity"
)

var (
	ErrMissingTenant  = errors.New("this showcase cannot receive orders: no business selected")
	ErrEmptyCart      = errors.New("your cart is empty")
	ErrMissingContact = errors.New("name and phone number are required")
)

const fallbackRejection = "order could not be submitted"

// RejectedError is returned when the order-creation collaborator refuses or
// fails an order. Reason is safe to show to the buyer.
type RejectedError struct {
	Reason string
	Err    error
}

func (e *RejectedError) Error() string { return e.Reason }

func (e *RejectedError) Unwrap() error { return e.Err }

// OrderCreator turns a checkout request into an order record.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req entity.CreateOrderRequest) (*entity.CreateOrderResponse, error)
}

type cartSettler interface {
	RemoveSubmitted(ctx context.Context, submitted []entity.CartItem) error
}

// CheckoutService submits the cart as an order, at most once per call.
type CheckoutService struct {
	creator OrderCreator
	cart    cartSettler
}

func NewCheckoutService(creator OrderCreator, cart cartSettler) *CheckoutService {
	return &CheckoutService{creator: creator, cart: cart}
}

// Submit validates the request, calls the order creator once, and takes the
// submitted items out of the cart only when the order was confirmed. Nothing
// is retried.
func (s *CheckoutService) Submit(ctx context.Context, tenantID string, items []entity.CartItem, contact entity.Contact) (*entity.Order, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	if contact.Name == "" || contact.Phone == "" {
		return nil, ErrMissingContact
	}

	resp, err := s.creator.CreateOrder(ctx, entity.CreateOrderRequest{
		TenantID: tenantID,
		Items:    entity.LinesFromCart(items),
		Contact:  contact,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating order for tenant %s", tenantID)
		return nil, &RejectedError{Reason: fallbackRejection, Err: err}
	}
	if resp == nil || !resp.Success {
		reason := fallbackRejection
		if resp != nil && resp.Error != "" {
			reason = resp.Error
		}
		logger.Warn().Msgf("Order for tenant %s rejected: %s", tenantID, reason)
		return nil, &RejectedError{Reason: reason}
	}

	// The order exists; a failed cart write is logged, not reported.
	if err := s.cart.RemoveSubmitted(ctx, items); err != nil {
		logger.Error().Err(err).Msg("Order created but cart could not be updated")
	}

	return resp.Order, nil
}
