// Package fulfillment moves freshly placed orders into processing. It
// consumes order.placed events; the stock for those orders was already
// reserved inside the placement transaction, so the worker only advances the
// status graph and announces the change.
package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/yashdharmal/shopline/internal/kafka"
	"github.com/yashdharmal/shopline/internal/orders"
	"github.com/yashdharmal/shopline/internal/redisx"
)

type Service struct {
	Store          orders.Store
	Redis          *redis.Client
	StatusProducer *kafkax.Producer
	ServiceName    string
}

// HandleOrderPlaced is the consumer handler for the order.placed topic.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// Event redelivery is expected; dedup on event id.
	dkey := fmt.Sprintf(redisx.KeyDedup, "fulfillment", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	o, err := s.Store.UpdateStatus(ctx, p.OrderID, orders.StatusProcessing)
	switch {
	case errors.Is(err, orders.ErrInvalidStatusTransition):
		// Someone got there first (completed or cancelled); nothing to do.
		return nil
	case errors.Is(err, orders.ErrNotFound):
		log.Printf("order %s gone before fulfillment", p.OrderID)
		return nil
	case err != nil:
		return err
	}

	_ = s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrder, p.OrderID)).Err()

	ev := orders.NewEnvelope(orders.EventOrderStatusChanged, s.ServiceName, env.TraceID, p.OrderID,
		orders.OrderStatusChangedPayload{OrderID: p.OrderID, From: orders.StatusPending, To: o.Status})
	s.StatusProducer.Publish(orders.PartitionKey(p.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}
