package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"business-console/internal/entity"
	"business-console/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	ErrDuplicateOrder  = errors.New("idempotent key already exists")
	ErrUnknownBusiness = errors.New("unknown business")
)

// MessageWriter is the part of *kafka.Writer the order service needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderService is the order-creation collaborator behind checkout: it
// records orders in the receiving tenant's dataset and announces them.
type OrderService struct {
	tenants     *repository.TenantRepository
	kafkaWriter MessageWriter
	rdb         *redis.Client
	now         func() time.Time
}

// NewOrderService creates a new instance of OrderService. kafkaWriter and
// rdb are optional.
func NewOrderService(tenants *repository.TenantRepository, kafkaWriter MessageWriter, rdb *redis.Client) *OrderService {
	return &OrderService{
		tenants:     tenants,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
		now:         time.Now,
	}
}

// CreateOrder appends a pending order to the tenant's orders. Business
// failures come back as a response with Success=false; the error return is
// reserved for infrastructure failures.
func (s *OrderService) CreateOrder(ctx context.Context, req entity.CreateOrderRequest) (*entity.CreateOrderResponse, error) {
	if reason := validateOrderRequest(req); reason != "" {
		return &entity.CreateOrderResponse{Success: false, Error: reason}, nil
	}

	known, err := s.tenants.Exists(ctx, req.TenantID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error looking up tenant %s", req.TenantID)
		return nil, err
	}
	if !known {
		return &entity.CreateOrderResponse{Success: false, Error: ErrUnknownBusiness.Error()}, nil
	}

	fresh, err := s.validateIdempotentKey(ctx, req.IdempotentKey)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking idempotent key")
		return nil, err
	}
	if !fresh {
		return &entity.CreateOrderResponse{Success: false, Error: ErrDuplicateOrder.Error()}, nil
	}

	order := entity.Order{
		ID:            uuid.NewString(),
		TenantID:      req.TenantID,
		Items:         req.Items,
		Contact:       req.Contact,
		Status:        "pending",
		CreatedAt:     s.now().UTC(),
		IdempotentKey: req.IdempotentKey,
	}
	for _, line := range req.Items {
		order.Quantity += line.Quantity
	}
	order.Total = entity.LinesTotal(req.Items).InexactFloat64()

	err = s.tenants.Update(ctx, req.TenantID, func(ds *entity.Dataset) error {
		ds.Orders = append(ds.Orders, order)
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error saving order for tenant %s", req.TenantID)
		s.releaseIdempotentKey(ctx, req.IdempotentKey)
		if errors.Is(err, repository.ErrStorageExhausted) {
			return &entity.CreateOrderResponse{Success: false, Error: "the business cannot accept orders right now: storage is full"}, nil
		}
		return &entity.CreateOrderResponse{Success: false, Error: "the order could not be saved"}, nil
	}

	if err := s.publishOrderEvent(ctx, &order, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order %s", order.ID)
	}

	return &entity.CreateOrderResponse{Success: true, Order: &order}, nil
}

func validateOrderRequest(req entity.CreateOrderRequest) string {
	if req.TenantID == "" {
		return "tenant is required"
	}
	if len(req.Items) == 0 {
		return "order has no items"
	}
	for _, line := range req.Items {
		if line.ID == "" {
			return "order item is missing an id"
		}
		if line.Quantity < 1 {
			return fmt.Sprintf("invalid quantity for %s", line.Name)
		}
		if line.Price < 0 {
			return fmt.Sprintf("invalid price for %s", line.Name)
		}
	}
	if req.Contact.Name == "" || req.Contact.Phone == "" {
		return "contact name and phone are required"
	}
	return ""
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, key string) error {
	if s.kafkaWriter == nil {
		return nil
	}
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	// order-created-<id>
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%s", key, order.ID)),
		Value: orderJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

// validateIdempotentKey claims key for 24 hours. It reports false when the
// key was already claimed. An empty key or a missing redis client skips the check.
func (s *OrderService) validateIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil || key == "" {
		return true, nil
	}
	return s.rdb.SetNX(ctx, idempotentRedisKey(key), "exists", 24*time.Hour).Result()
}

// releaseIdempotentKey gives back a key claimed for an order that was not
// saved, so the buyer can retry it.
func (s *OrderService) releaseIdempotentKey(ctx context.Context, key string) {
	if s.rdb == nil || key == "" {
		return
	}
	if err := s.rdb.Del(ctx, idempotentRedisKey(key)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error releasing idempotent key %s", key)
	}
}

func idempotentRedisKey(key string) string {
	return fmt.Sprintf("idempotent-key:%s", key)
}
