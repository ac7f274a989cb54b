package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
)

func TestInstrumentation_Start(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvents int
	}{
		{name: "success", err: nil, wantStatus: codes.Unset},
		{name: "not found is rejected", err: domain.NewEntityNotFoundError("Example", domain.RandomUUID()), wantStatus: codes.Unset},
		{name: "conflict is rejected", err: domain.NewConflictError("Example", "exists"), wantStatus: codes.Unset},
		{name: "failure is recorded", err: errors.New("connection reset"), wantStatus: codes.Error, wantEvents: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := NewInstrumentation("sqlite", "Example")

			_, done := inst.Start(context.Background(), "Save")
			done(tt.err)

			spans := recorder.Ended()
			require.NotEmpty(t, spans)

			span := spans[len(spans)-1]
			assert.Equal(t, "ExampleRepository.Save", span.Name())
			assert.Equal(t, tt.wantStatus, span.Status().Code)
			assert.Len(t, span.Events(), tt.wantEvents)
			assert.Contains(t, span.Attributes(), attribute.String("db.system", "sqlite"))
			assert.Contains(t, span.Attributes(), attribute.String("db.operation", "Save"))
		})
	}
}
