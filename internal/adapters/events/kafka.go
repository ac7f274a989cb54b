// Package events publishes domain events raised by aggregates.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// Record header names.
const (
	HeaderEventName = "event-name"
	HeaderEventID   = "event-id"
)

// Envelope is the JSON value written for every event.
type Envelope struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregate_id"`
	OccurredOn  time.Time `json:"occurred_on"`
	Payload     any       `json:"payload"`
}

// NewEnvelope wraps event for transport.
func NewEnvelope(event domain.DomainEvent) Envelope {
	return Envelope{
		ID:          event.EventID(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID().Value(),
		OccurredOn:  event.OccurredOn(),
		Payload:     event,
	}
}

// producer is the subset of *kgo.Client used for publishing.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher writes events to a Kafka topic, keyed by aggregate ID so
// that events of one aggregate stay ordered within a partition.
type KafkaPublisher struct {
	producer producer
	topic    string
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaClient creates a franz-go client for cfg.
func NewKafkaClient(cfg *config.EventsConfig) (*kgo.Client, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.AllowAutoTopicCreation(),
	}
	if cfg.DeliveryTimeout > 0 {
		opts = append(opts, kgo.RecordDeliveryTimeout(cfg.DeliveryTimeout))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}

	return client, nil
}

// NewKafkaPublisher creates a publisher producing to topic.
func NewKafkaPublisher(p producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic}
}

// Publish implements ports.EventPublisher. Events are produced synchronously;
// broker failures are reported as *domain.UnavailableError. A cancelled or
// expired ctx is returned wrapped as is, so it never counts against the
// brokers.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(events))

	for _, event := range events {
		value, err := json.Marshal(NewEnvelope(event))
		if err != nil {
			return fmt.Errorf("encoding event %s: %w", event.EventName(), err)
		}

		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(event.AggregateID().Value()),
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: HeaderEventName, Value: []byte(event.EventName())},
				{Key: HeaderEventID, Value: []byte(event.EventID())},
			},
			Timestamp: event.OccurredOn(),
		})
	}

	if err := p.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("producing events: %w", err)
		}

		return domain.NewUnavailableError("kafka", err.Error())
	}

	return nil
}

// KafkaHealthChecker pings the brokers.
type KafkaHealthChecker struct {
	client *kgo.Client
}

// NewKafkaHealthChecker creates a health checker for client.
func NewKafkaHealthChecker(client *kgo.Client) *KafkaHealthChecker {
	return &KafkaHealthChecker{client: client}
}

// Name implements ports.HealthChecker.
func (h *KafkaHealthChecker) Name() string {
	return "kafka"
}

// Check implements ports.HealthChecker.
func (h *KafkaHealthChecker) Check(ctx context.Context) error {
	return h.client.Ping(ctx)
}
