// Package eventbus wraps watermill-nats so modules publish domain events
// without touching transport details.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	nc "github.com/nats-io/nats.go"

	"github.com/mundo-prode/prode-backend/internal/observability/attr"
)

// EventBus publishes domain events to downstream consumers.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// NATSEventBus is the JetStream-backed EventBus used in production.
type NATSEventBus struct {
	publisher message.Publisher
}

var _ EventBus = (*NATSEventBus)(nil)

func natsOptions() []nc.Option {
	return []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}
}

func jetStreamConfig() wnats.JetStreamConfig {
	return wnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
	}
}

// New connects a JetStream publisher at natsURL.
func New(natsURL string, logger watermill.LoggerAdapter) (*NATSEventBus, error) {
	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       natsOptions(),
			Marshaler:         &wnats.GobMarshaler{},
			JetStream:         jetStreamConfig(),
			SubjectCalculator: wnats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("eventbus.New: failed to create NATS publisher: %w", err)
	}
	return &NATSEventBus{publisher: publisher}, nil
}

// NewSubscriber connects a JetStream subscriber for the watermill router.
func NewSubscriber(natsURL string, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:               natsURL,
			NatsOptions:       natsOptions(),
			Unmarshaler:       &wnats.GobMarshaler{},
			JetStream:         jetStreamConfig(),
			SubjectCalculator: wnats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("eventbus.NewSubscriber: failed to create NATS subscriber: %w", err)
	}
	return subscriber, nil
}

// Publish JSON-encodes payload and publishes it on topic, carrying the
// correlation ID from ctx in the message metadata.
func (b *NATSEventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("eventbus.Publish: failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if correlationID := attr.CorrelationIDFromContext(ctx); correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("eventbus.Publish: failed to publish %s: %w", topic, err)
	}
	return nil
}

func (b *NATSEventBus) Close() error {
	return b.publisher.Close()
}
