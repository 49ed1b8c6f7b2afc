package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"business-console/internal/entity"
)

// OrderClient creates orders on another console instance over HTTP.
type OrderClient struct {
	orderServiceURL string
	httpClient      *http.Client
}

func NewOrderClient(orderServiceURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		orderServiceURL: orderServiceURL,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

// CreateOrder posts req to <url>/orders. A non-2xx answer that carries
// {"error": ...} is returned as a rejected response, not as an error.
func (c *OrderClient) CreateOrder(ctx context.Context, req entity.CreateOrderRequest) (*entity.CreateOrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/orders", c.orderServiceURL), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.IdempotentKey != "" {
		httpReq.Header.Set("Idempotent-Key", req.IdempotentKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out entity.CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.Success = false
	}
	return &out, nil
}
