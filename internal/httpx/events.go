package httpx

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/malafaareh/storefront/internal/kafka"
	"github.com/malafaareh/storefront/internal/orders"
	"github.com/malafaareh/storefront/internal/redisx"
)

func cacheStatus(ctx context.Context, rdb *redis.Client, o *orders.Order) {
	redisx.CacheStatus(ctx, rdb, o.ID, kafkax.MustMarshal(statusBody{UserID: o.UserID, Status: o.Status}))
}

func publishOrderCreated(p *kafkax.Producer, producer string, o *orders.Order) {
	publishOrderEvent(p, producer, orders.EventOrderCreated, o.ID, orders.OrderCreatedPayload{
		OrderID:  o.ID,
		UserID:   o.UserID,
		Items:    o.Items,
		Total:    o.Total,
		Currency: o.Currency,
	})
}

func publishOrderStatus(p *kafkax.Producer, producer string, o *orders.Order) {
	publishOrderEvent(p, producer, orders.EventOrderStatus, o.ID, orders.OrderStatusPayload{
		OrderID: o.ID,
		Status:  o.Status,
	})
}

func publishOrderEvent(p *kafkax.Producer, producer, eventType, orderID string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
	)
}
