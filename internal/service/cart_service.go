package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"business-console/internal/entity"
	"business-console/internal/repository"
)

var ErrInvalidCartItem = errors.New("cart item must have an id")

// CartService holds the visitor cart in memory and mirrors every change to
// the cart repository. A mutation whose write fails is not applied.
type CartService struct {
	mu       sync.Mutex
	repo     *repository.CartRepository
	notifier Notifier
	items    []entity.CartItem
}

// NewCartService loads the persisted cart once; later reads are served from memory.
func NewCartService(ctx context.Context, repo *repository.CartRepository, notifier Notifier) *CartService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &CartService{
		repo:     repo,
		notifier: notifier,
		items:    repo.Load(ctx),
	}
}

// Items returns a copy of the cart in insertion order.
func (s *CartService) Items() []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// AddItem increments the quantity of an item already in the cart, or
// appends it with quantity 1.
func (s *CartService) AddItem(ctx context.Context, item entity.ShowcaseItem) (entity.CartItem, error) {
	if item.ID == "" {
		return entity.CartItem{}, ErrInvalidCartItem
	}

	s.mu.Lock()
	next := cloneItems(s.items)
	idx := indexOf(next, item.ID)
	if idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, entity.CartItem{ShowcaseItem: item, Quantity: 1})
		idx = len(next) - 1
	}
	added := next[idx]
	err := s.commitLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return entity.CartItem{}, err
	}

	s.notifier.Notify(ctx, Notification{
		Title:   "Added to cart",
		Message: fmt.Sprintf("%s has been added to your cart.", item.Name),
	})
	return added, nil
}

// RemoveItem deletes the item; an unknown id is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

// UpdateQuantity sets the quantity of an item. quantity <= 0 removes it.
// There is no upper bound.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		return s.removeLocked(ctx, id)
	}
	idx := indexOf(s.items, id)
	if idx < 0 {
		return nil
	}
	next := cloneItems(s.items)
	next[idx].Quantity = quantity
	return s.commitLocked(ctx, next)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, []entity.CartItem{})
}

// RemoveSubmitted takes the submitted quantities out of the cart in one
// write. Units added after the submission was taken stay in the cart.
func (s *CartService) RemoveSubmitted(ctx context.Context, submitted []entity.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := make(map[string]int, len(submitted))
	for _, item := range submitted {
		taken[item.ID] += item.Quantity
	}
	next := make([]entity.CartItem, 0, len(s.items))
	for _, item := range s.items {
		item.Quantity -= taken[item.ID]
		if item.Quantity > 0 {
			next = append(next, item)
		}
	}
	return s.commitLocked(ctx, next)
}

// Total is the exact sum of price * quantity, recomputed on every call.
func (s *CartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count is the number of units in the cart.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

func (s *CartService) removeLocked(ctx context.Context, id string) error {
	idx := indexOf(s.items, id)
	if idx < 0 {
		return nil
	}
	next := make([]entity.CartItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	return s.commitLocked(ctx, next)
}

// commitLocked persists next and only then makes it the current cart.
func (s *CartService) commitLocked(ctx context.Context, next []entity.CartItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		logger.Error().Err(err).Msg("Error saving cart, change discarded")
		return err
	}
	s.items = next
	return nil
}

func indexOf(items []entity.CartItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []entity.CartItem) []entity.CartItem {
	out := make([]entity.CartItem, len(items))
	copy(out, items)
	return out
}
