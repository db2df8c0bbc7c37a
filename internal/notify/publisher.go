// Package notify publishes site domain events (orders, registrations,
// contact messages) to a message broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	OrderCreated        = "order.created"
	OrderStatusUpdated  = "order.status_updated"
	OrderCancelled      = "order.cancelled"
	RegistrationCreated = "registration.created"
	ContactReceived     = "contact.received"
)

type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
	Close() error
}

// Envelope is the JSON body every broker receives.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEnvelope(eventType, key string, payload any) (Envelope, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("marshal payload: %w", err)
	}

	env := Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return env, body, nil
}

type Config struct {
	Broker           string
	KafkaBrokers     []string
	KafkaTopic       string
	RabbitMQURL      string
	RabbitMQExchange string
}

func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	switch cfg.Broker {
	case "", "none":
		return NopPublisher{}, nil
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
	default:
		return nil, fmt.Errorf("unknown broker %q", cfg.Broker)
	}
}

// PublishAsync sends the event without blocking the caller. Failures are
// logged only. When p is a *TrackedPublisher its Close waits for the send.
func PublishAsync(p Publisher, logger *zap.Logger, eventType, key string, payload any) {
	if p == nil {
		return
	}
	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := p.Publish(ctx, eventType, key, payload); err != nil {
			logger.Error("Failed to publish event",
				zap.String("type", eventType),
				zap.String("key", key),
				zap.Error(err))
		}
	}

	if tracked, ok := p.(*TrackedPublisher); ok {
		tracked.inflight.Add(1)
		go func() {
			defer tracked.inflight.Done()
			send()
		}()
		return
	}
	go send()
}

// TrackedPublisher drains in-flight PublishAsync calls before closing the
// underlying publisher.
type TrackedPublisher struct {
	Publisher
	inflight sync.WaitGroup
}

func Tracked(p Publisher) *TrackedPublisher {
	return &TrackedPublisher{Publisher: p}
}

func (p *TrackedPublisher) Close() error {
	p.inflight.Wait()
	return p.Publisher.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
