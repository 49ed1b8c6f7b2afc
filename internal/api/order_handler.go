package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"business-console/internal/entity"
	"business-console/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder records an order for a tenant --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	req := entity.CreateOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, entity.CreateOrderResponse{Error: "Invalid request payload"})
	}
	req.IdempotentKey = c.Request().Header.Get("Idempotent-Key")

	resp, err := h.orderService.CreateOrder(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating order for tenant %s", req.TenantID)
		return c.JSON(500, entity.CreateOrderResponse{Error: "the order could not be created"})
	}
	if !resp.Success {
		if resp.Error == service.ErrDuplicateOrder.Error() {
			return c.JSON(http.StatusConflict, resp)
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return c.JSON(http.StatusCreated, resp)
}
