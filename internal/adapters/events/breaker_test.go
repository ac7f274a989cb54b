package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
)

type stubPublisher struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubPublisher) Publish(_ context.Context, _ ...domain.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return s.err
}

func (s *stubPublisher) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

var errBrokerDown = domain.NewUnavailableError("kafka", "broker down")

func newBreaker(t *testing.T, next *stubPublisher, maxFailures int) (*BreakingPublisher, *time.Time) {
	t.Helper()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	p := NewBreakingPublisher(next, config.BreakerConfig{
		MaxFailures:       maxFailures,
		OpenTimeout:       30 * time.Second,
		HalfOpenSuccesses: 2,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.now = func() time.Time { return now }

	return p, &now
}

func publishOne(p *BreakingPublisher) error {
	return p.Publish(context.Background(), example.Create("Ada", 36).Events()...)
}

func TestBreakingPublisher_InitialState(t *testing.T) {
	p, _ := newBreaker(t, &stubPublisher{}, 3)

	assert.Equal(t, BreakerClosed, p.State())
	assert.NoError(t, publishOne(p))
}

func TestBreakingPublisher_Opens(t *testing.T) {
	next := &stubPublisher{err: errBrokerDown}
	p, _ := newBreaker(t, next, 3)

	for range 2 {
		require.Error(t, publishOne(p))
		assert.Equal(t, BreakerClosed, p.State())
	}

	require.Error(t, publishOne(p))
	assert.Equal(t, BreakerOpen, p.State())

	err := publishOne(p)
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, 3, next.calls)
}

func TestBreakingPublisher_SuccessResetsFailures(t *testing.T) {
	next := &stubPublisher{err: errBrokerDown}
	p, _ := newBreaker(t, next, 3)

	_ = publishOne(p)
	_ = publishOne(p)

	next.fail(nil)
	require.NoError(t, publishOne(p))

	next.fail(errBrokerDown)
	_ = publishOne(p)
	_ = publishOne(p)
	assert.Equal(t, BreakerClosed, p.State())

	_ = publishOne(p)
	assert.Equal(t, BreakerOpen, p.State())
}

func TestBreakingPublisher_IgnoresOtherErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "encoding error", err: errors.New("encoding event: unsupported value")},
		{name: "cancelled", err: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newBreaker(t, &stubPublisher{err: tt.err}, 1)

			assert.ErrorIs(t, publishOne(p), tt.err)
			assert.Equal(t, BreakerClosed, p.State())
		})
	}
}

func TestBreakingPublisher_CancelledKafkaPublishStaysClosed(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "cancelled", err: context.Canceled},
		{name: "deadline exceeded", err: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kafka := NewKafkaPublisher(&fakeProducer{err: tt.err}, "example-events")
			p := NewBreakingPublisher(kafka, config.BreakerConfig{
				MaxFailures:       2,
				OpenTimeout:       30 * time.Second,
				HalfOpenSuccesses: 1,
			}, slog.New(slog.NewTextHandler(io.Discard, nil)))

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			for range 3 {
				err := p.Publish(ctx, example.Create("Ada", 36).Events()...)

				require.ErrorIs(t, err, tt.err)
				assert.False(t, domain.IsUnavailable(err))
			}

			assert.Equal(t, BreakerClosed, p.State())
			assert.NoError(t, p.Check(context.Background()))
		})
	}
}

func TestBreakingPublisher_HalfOpen(t *testing.T) {
	tests := []struct {
		name     string
		probeErr []error
		expected BreakerState
	}{
		{name: "probe succeeds once", probeErr: []error{nil}, expected: BreakerHalfOpen},
		{name: "probes close the breaker", probeErr: []error{nil, nil}, expected: BreakerClosed},
		{name: "probe failure reopens", probeErr: []error{errBrokerDown}, expected: BreakerOpen},
		{name: "late failure reopens", probeErr: []error{nil, errBrokerDown}, expected: BreakerOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &stubPublisher{err: errBrokerDown}
			p, now := newBreaker(t, next, 1)

			_ = publishOne(p)
			require.Equal(t, BreakerOpen, p.State())

			*now = now.Add(10 * time.Second)
			require.Error(t, publishOne(p))
			assert.Equal(t, BreakerOpen, p.State())

			*now = now.Add(30 * time.Second)

			for _, err := range tt.probeErr {
				next.fail(err)
				_ = publishOne(p)
			}

			assert.Equal(t, tt.expected, p.State())
		})
	}
}

func TestBreakingPublisher_Disabled(t *testing.T) {
	next := &stubPublisher{err: errBrokerDown}
	p, _ := newBreaker(t, next, 0)

	for range 10 {
		_ = publishOne(p)
	}

	assert.Equal(t, BreakerClosed, p.State())
	assert.Equal(t, 10, next.calls)
}

func TestBreakingPublisher_PublishNothing(t *testing.T) {
	next := &stubPublisher{}
	p, _ := newBreaker(t, next, 1)

	require.NoError(t, p.Publish(context.Background()))
	assert.Zero(t, next.calls)
}

func TestBreakingPublisher_Concurrent(t *testing.T) {
	next := &stubPublisher{}
	p := NewBreakingPublisher(next, config.BreakerConfig{
		MaxFailures:       50,
		OpenTimeout:       time.Second,
		HalfOpenSuccesses: 5,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup

	for i := range 500 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if i%2 == 0 {
				next.fail(errBrokerDown)
			} else {
				next.fail(nil)
			}

			_ = publishOne(p)
		}()
	}

	wg.Wait()

	assert.Contains(t, []BreakerState{BreakerClosed, BreakerOpen, BreakerHalfOpen}, p.State())
}

func TestBreakingPublisher_Check(t *testing.T) {
	next := &stubPublisher{err: errBrokerDown}
	p, now := newBreaker(t, next, 1)

	assert.Equal(t, "event-breaker", p.Name())
	require.NoError(t, p.Check(context.Background()))

	require.Error(t, publishOne(p))

	err := p.Check(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	*now = now.Add(31 * time.Second)
	next.fail(nil)
	require.NoError(t, publishOne(p))
	assert.Equal(t, BreakerHalfOpen, p.State())
	assert.NoError(t, p.Check(context.Background()), "a probing breaker is not reported as failed")
}

func TestBreakerState_String(t *testing.T) {
	tests := []struct {
		state    BreakerState
		expected string
	}{
		{BreakerClosed, "closed"},
		{BreakerOpen, "open"},
		{BreakerHalfOpen, "half-open"},
		{BreakerState(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
