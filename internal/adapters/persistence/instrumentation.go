// Package persistence holds what the repository adapters share: tracing and
// metrics around every repository operation.
package persistence

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
)

const instrumentationName = "github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence"

// Instrumentation records a span and a duration sample per operation.
type Instrumentation struct {
	system   string
	entity   string
	tracer   trace.Tracer
	duration metric.Float64Histogram
}

// NewInstrumentation creates instrumentation for a store. system is the
// database system name reported in spans (postgres, sqlite, redis).
func NewInstrumentation(system, entity string) *Instrumentation {
	meter := otel.Meter(instrumentationName)

	// A failing instrument falls back to a no-op histogram.
	duration, _ := meter.Float64Histogram(
		"db.client.operation.duration",
		metric.WithDescription("Duration of repository operations"),
		metric.WithUnit("s"),
	)

	return &Instrumentation{
		system:   system,
		entity:   entity,
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
	}
}

// Start opens a span for operation. The returned func ends it and must be
// called with the operation's final error.
func (i *Instrumentation) Start(ctx context.Context, operation string) (context.Context, func(error)) {
	start := time.Now()
	attrs := []attribute.KeyValue{
		attribute.String("db.system", i.system),
		attribute.String("db.operation", operation),
		attribute.String("domain.entity", i.entity),
	}

	ctx, span := i.tracer.Start(ctx, i.entity+"Repository."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(err error) {
		outcome := "success"

		switch {
		case err == nil:
		case domain.IsNotFound(err), domain.IsInvalidArgument(err), domain.IsConflict(err):
			// Contract failures are expected outcomes, not span errors.
			outcome = "rejected"
			span.SetAttributes(attribute.String("error.type", err.Error()))
		default:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		if i.duration != nil {
			i.duration.Record(ctx, time.Since(start).Seconds(),
				metric.WithAttributes(append(attrs, attribute.String("outcome", outcome))...),
			)
		}

		span.End()
	}
}
