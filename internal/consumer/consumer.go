package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"business-console/internal/entity"
	"business-console/internal/service"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

const readRetryDelay = time.Second

// Consumer turns order events into notifications for the business owner.
type Consumer struct {
	notifier   service.Notifier
	retryDelay time.Duration
}

func NewConsumer(notifier service.Notifier) *Consumer {
	if notifier == nil {
		notifier = service.LogNotifier{}
	}
	return &Consumer{notifier: notifier, retryDelay: readRetryDelay}
}

// Start reads order events until ctx is cancelled. A failed read is retried
// after retryDelay.
func (c *Consumer) Start(ctx context.Context, reader MessageReader) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info().Msg("Order consumer stopped")
				return
			}
			log.Error().Msgf("Error reading message: %v", err)
			select {
			case <-ctx.Done():
				log.Info().Msg("Order consumer stopped")
				return
			case <-time.After(c.retryDelay):
			}
			continue
		}
		c.processMessage(ctx, msg)
	}
}

// processMessage handles one event. Keys look like "order-created-<orderID>".
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	parts := strings.SplitN(string(msg.Key), "-", 3)
	if len(parts) != 3 || parts[0] != "order" {
		log.Error().Msgf("Unexpected message key: %q", msg.Key)
		return
	}

	var order entity.Order
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	switch parts[1] {
	case "created":
		c.notifier.Notify(ctx, service.Notification{
			Title:   "New order",
			Message: fmt.Sprintf("%s ordered %d item(s) for %s.", order.Contact.Name, order.Quantity, decimal.NewFromFloat(order.Total).String()),
		})
	default:
		log.Error().Msgf("Unknown order event: %s", parts[1])
	}
}
