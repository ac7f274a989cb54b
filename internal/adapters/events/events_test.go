package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/logging"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)

	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}

	return results
}

func TestKafkaPublisher_Publish(t *testing.T) {
	e := example.Create("Ada", 36)
	recorded := e.Events()

	p := &fakeProducer{}
	pub := NewKafkaPublisher(p, "example-events")

	require.NoError(t, pub.Publish(context.Background(), recorded...))
	require.Len(t, p.records, 1)

	rec := p.records[0]
	assert.Equal(t, "example-events", rec.Topic)
	assert.Equal(t, e.ID().Value(), string(rec.Key))
	assert.Equal(t, []kgo.RecordHeader{
		{Key: HeaderEventName, Value: []byte(example.EventCreated)},
		{Key: HeaderEventID, Value: []byte(recorded[0].EventID())},
	}, rec.Headers)

	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Value, &env))
	assert.Equal(t, example.EventCreated, env["name"])
	assert.Equal(t, e.ID().Value(), env["aggregate_id"])
	assert.Equal(t, map[string]any{"name": "Ada", "age": float64(36)}, env["payload"])
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	p := &fakeProducer{}

	require.NoError(t, NewKafkaPublisher(p, "t").Publish(context.Background()))
	assert.Empty(t, p.records)
}

func TestKafkaPublisher_BrokerFailure(t *testing.T) {
	p := &fakeProducer{err: errors.New("broker down")}
	e := example.Create("Ada", 36)

	err := NewKafkaPublisher(p, "t").Publish(context.Background(), e.Events()...)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaPublisher_ContextErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "cancelled", err: context.Canceled},
		{name: "deadline exceeded", err: context.DeadlineExceeded},
		{name: "wrapped", err: fmt.Errorf("producing: %w", context.Canceled)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProducer{err: tt.err}

			err := NewKafkaPublisher(p, "t").Publish(context.Background(), example.Create("Ada", 36).Events()...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, domain.IsUnavailable(err))
		})
	}
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := logging.WithContext(context.Background(), logger)

	e := example.Create("Ada", 36)
	e.ChangeAge(40)

	require.NoError(t, NewLogPublisher().Publish(ctx, e.Events()...))

	out := buf.String()
	assert.Contains(t, out, `"event_name":"example.created"`)
	assert.Contains(t, out, `"event_name":"example.age_changed"`)
	assert.Contains(t, out, e.ID().Value())
}

func TestNoopPublisher_Publish(t *testing.T) {
	e := example.Create("Ada", 36)

	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), e.Events()...))
}
