package events

import (
	"context"
	"log/slog"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/logging"
)

// LogPublisher writes events to the request logger. Used when no broker is
// configured.
type LogPublisher struct{}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish implements ports.EventPublisher.
func (LogPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	logger := logging.FromContext(ctx)

	for _, event := range events {
		logger.InfoContext(ctx, "domain event",
			slog.String("event_name", event.EventName()),
			slog.String("event_id", event.EventID()),
			slog.String("aggregate_id", event.AggregateID().Value()),
			slog.Time("occurred_on", event.OccurredOn()),
		)
	}

	return nil
}

// NoopPublisher discards events.
type NoopPublisher struct{}

// Publish implements ports.EventPublisher.
func (NoopPublisher) Publish(context.Context, ...domain.DomainEvent) error {
	return nil
}
