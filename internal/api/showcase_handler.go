package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"business-console/internal/entity"
	"business-console/internal/repository"
	"business-console/internal/service"
)

// ShowcaseHandler serves the public storefront and the visitor cart.
type ShowcaseHandler struct {
	tenants  *repository.TenantRepository
	cart     *service.CartService
	checkout *service.CheckoutService
	tour     *repository.OnboardingRepository
}

func NewShowcaseHandler(tenants *repository.TenantRepository, cart *service.CartService, checkout *service.CheckoutService, tour *repository.OnboardingRepository) *ShowcaseHandler {
	return &ShowcaseHandler{tenants: tenants, cart: cart, checkout: checkout, tour: tour}
}

type cartView struct {
	Items []entity.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func (h *ShowcaseHandler) view() cartView {
	return cartView{Items: h.cart.Items(), Total: h.cart.Total(), Count: h.cart.Count()}
}

// knownTenant reports whether tenantID has a stored dataset. An unreadable
// store is logged and treated as known so the showcase degrades to defaults.
func (h *ShowcaseHandler) knownTenant(c echo.Context, tenantID string) bool {
	ok, err := h.tenants.Exists(c.Request().Context(), tenantID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error looking up tenant %s", tenantID)
		return true
	}
	return ok
}

// GetShowcase lists published items --> GET /showcase/:tenant
func (h *ShowcaseHandler) GetShowcase(c echo.Context) error {
	tenantID := c.Param("tenant")
	if !h.knownTenant(c, tenantID) {
		return c.JSON(404, map[string]string{"error": "Business not found"})
	}
	ds := h.tenants.Load(c.Request().Context(), tenantID)
	return c.JSON(200, map[string]interface{}{
		"business": ds.User,
		"items":    ds.PublishedShowcase(),
	})
}

// GetCart --> GET /cart
func (h *ShowcaseHandler) GetCart(c echo.Context) error {
	return c.JSON(200, h.view())
}

// AddItem adds a published showcase item --> POST /cart/items
func (h *ShowcaseHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	req := struct {
		TenantID string `json:"tenantId"`
		ItemID   string `json:"itemId"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if !h.knownTenant(c, req.TenantID) {
		return c.JSON(404, map[string]string{"error": "Business not found"})
	}

	var item *entity.ShowcaseItem
	for _, published := range h.tenants.Load(ctx, req.TenantID).PublishedShowcase() {
		if published.ID == req.ItemID {
			item = &published
			break
		}
	}
	if item == nil {
		return c.JSON(404, map[string]string{"error": "Item not found"})
	}

	if _, err := h.cart.AddItem(ctx, *item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, h.view())
}

// UpdateItem sets an item's quantity --> PATCH /cart/items/:id
func (h *ShowcaseHandler) UpdateItem(c echo.Context) error {
	req := struct {
		Quantity int `json:"quantity"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := h.cart.UpdateQuantity(c.Request().Context(), c.Param("id"), req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, h.view())
}

// RemoveItem --> DELETE /cart/items/:id
func (h *ShowcaseHandler) RemoveItem(c echo.Context) error {
	if err := h.cart.RemoveItem(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, h.view())
}

// ClearCart --> DELETE /cart
func (h *ShowcaseHandler) ClearCart(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, h.view())
}

// Checkout submits the cart as an order --> POST /cart/checkout
func (h *ShowcaseHandler) Checkout(c echo.Context) error {
	req := struct {
		TenantID string         `json:"tenantId"`
		Contact  entity.Contact `json:"contact"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	order, err := h.checkout.Submit(c.Request().Context(), req.TenantID, h.cart.Items(), req.Contact)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// GetTour --> GET /tour
func (h *ShowcaseHandler) GetTour(c echo.Context) error {
	return c.JSON(200, map[string]bool{"shown": h.tour.Shown(c.Request().Context())})
}

// MarkTourShown --> PUT /tour
func (h *ShowcaseHandler) MarkTourShown(c echo.Context) error {
	if err := h.tour.MarkShown(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
