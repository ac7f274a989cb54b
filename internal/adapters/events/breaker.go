package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// BreakerState is the state of a BreakingPublisher.
type BreakerState int

const (
	// BreakerClosed forwards every publish.
	BreakerClosed BreakerState = iota

	// BreakerOpen rejects publishes until the open timeout elapses.
	BreakerOpen

	// BreakerHalfOpen forwards publishes to probe the broker.
	BreakerHalfOpen
)

// String returns the state name used in logs.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakingPublisher stops calling a failing broker. Only unavailability
// counts as a failure; encoding errors and cancelled contexts leave the state
// alone.
//
// Transitions:
//   - closed to open after MaxFailures consecutive failures
//   - open to half-open once OpenTimeout has passed
//   - half-open to closed after HalfOpenSuccesses consecutive successes
//   - half-open to open on any failure
type BreakingPublisher struct {
	next   ports.EventPublisher
	cfg    config.BreakerConfig
	logger *slog.Logger

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time

	now func() time.Time
}

var (
	_ ports.EventPublisher = (*BreakingPublisher)(nil)
	_ ports.HealthChecker  = (*BreakingPublisher)(nil)
)

// NewBreakingPublisher guards next. A zero MaxFailures disables the breaker.
func NewBreakingPublisher(next ports.EventPublisher, cfg config.BreakerConfig, logger *slog.Logger) *BreakingPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &BreakingPublisher{
		next:   next,
		cfg:    cfg,
		logger: logger,
		state:  BreakerClosed,
		now:    time.Now,
	}
}

// State reports the current breaker state.
func (p *BreakingPublisher) State() BreakerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Name implements ports.HealthChecker.
func (p *BreakingPublisher) Name() string {
	return "event-breaker"
}

// Check implements ports.HealthChecker. It fails while the breaker is open.
func (p *BreakingPublisher) Check(context.Context) error {
	if state := p.State(); state == BreakerOpen {
		return domain.NewUnavailableError("kafka", "circuit "+state.String())
	}

	return nil
}

// Publish implements ports.EventPublisher.
func (p *BreakingPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	if !p.allow() {
		return domain.NewUnavailableError("kafka", "circuit open")
	}

	err := p.next.Publish(ctx, events...)
	p.record(err)

	return err
}

func (p *BreakingPublisher) allow() bool {
	if p.cfg.MaxFailures <= 0 {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == BreakerOpen && p.now().Sub(p.openedAt) >= p.cfg.OpenTimeout {
		p.transition(BreakerHalfOpen)
	}

	return p.state != BreakerOpen
}

func (p *BreakingPublisher) record(err error) {
	if p.cfg.MaxFailures <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err == nil:
		p.failures = 0

		if p.state == BreakerHalfOpen {
			p.successes++
			if p.successes >= max(p.cfg.HalfOpenSuccesses, 1) {
				p.transition(BreakerClosed)
			}
		}

	case domain.IsUnavailable(err):
		p.failures++

		if p.state == BreakerHalfOpen || p.failures >= p.cfg.MaxFailures {
			p.openedAt = p.now()
			p.transition(BreakerOpen)
		}
	}
}

// transition must be called with mu held.
func (p *BreakingPublisher) transition(to BreakerState) {
	if p.state == to {
		return
	}

	from := p.state
	p.state = to
	p.failures = 0
	p.successes = 0

	p.logger.Warn("event breaker state changed",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)
}
