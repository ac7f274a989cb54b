// Package app contains the application services that run use cases against
// the domain through ports.
//
// Services load aggregates from repositories, let the aggregates enforce
// their rules, persist the result and publish the events the aggregates
// recorded. HTTP and storage concerns stay in the adapters.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/logging"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// Operation names, used in logs and metrics.
const (
	OpCreateExample = "CreateExample"
	OpChangeExample = "ChangeExample"
)

var exampleEntity = domain.TypeName[*example.Example]()

// ErrNothingToChange is wrapped when a change request carries no fields.
var ErrNothingToChange = errors.New("at least one of name or age must be provided")

// CreateExampleInput carries the data for a new example.
type CreateExampleInput struct {
	Name string
	Age  int
}

// ChangeExampleInput carries the fields to change. Nil fields are left as
// they are.
type ChangeExampleInput struct {
	Name *string
	Age  *int
}

func (in ChangeExampleInput) empty() bool {
	return in.Name == nil && in.Age == nil
}

// ExampleServiceConfig holds the dependencies of ExampleService.
type ExampleServiceConfig struct {
	Repository example.Repository
	Publisher  ports.EventPublisher
	Metrics    *Metrics
	Logger     *slog.Logger
}

// ExampleService runs the example use cases.
type ExampleService struct {
	repo      example.Repository
	publisher ports.EventPublisher
	metrics   *Metrics
	logger    *slog.Logger
	executor  *Executor
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ...domain.DomainEvent) error { return nil }

// NewExampleService creates the service. It panics without a repository.
func NewExampleService(cfg ExampleServiceConfig) *ExampleService {
	if cfg.Repository == nil {
		panic("app: ExampleService requires a repository")
	}

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = noopPublisher{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.ExampleService"))

	return &ExampleService{
		repo:      cfg.Repository,
		publisher: publisher,
		metrics:   cfg.Metrics,
		logger:    logger,
		executor:  NewExecutor(logger),
	}
}

// CreateExample creates and stores a new example. Rule violations are
// returned as *domain.EntityValidationError carrying every message.
func (s *ExampleService) CreateExample(ctx context.Context, in CreateExampleInput) (*example.Example, error) {
	op := Operation[CreateExampleInput, *example.Example, *example.Example, *example.Example]{
		Name: OpCreateExample,
		Validate: func(ctx context.Context, _ CreateExampleInput) error {
			return ctx.Err()
		},
		Perform: func(_ context.Context, in CreateExampleInput) (*example.Example, error) {
			return example.Create(in.Name, in.Age), nil
		},
		Verify: func(_ context.Context, _ CreateExampleInput, e *example.Example) (*example.Example, error) {
			return s.verify(OpCreateExample, e)
		},
		Archive: func(ctx context.Context, _ CreateExampleInput, e *example.Example) error {
			return s.repo.Save(ctx, e)
		},
		Respond: func(_ context.Context, _ CreateExampleInput, e *example.Example) (*example.Example, error) {
			return e, nil
		},
	}

	created, err := Execute(ctx, s.executor, op, in)
	if err != nil {
		return nil, fmt.Errorf("creating example: %w", err)
	}

	s.metrics.exampleCreated()
	s.publish(ctx, created)

	return created, nil
}

// GetExample loads one example.
func (s *ExampleService) GetExample(ctx context.Context, rawID string) (*example.Example, error) {
	id, err := example.NewID(rawID)
	if err != nil {
		return nil, err
	}

	return s.load(ctx, id)
}

// ListExamples returns every stored example in insertion order.
func (s *ExampleService) ListExamples(ctx context.Context) ([]*example.Example, error) {
	items, err := s.repo.FindMany(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing examples: %w", err)
	}

	return items, nil
}

// GetExamples returns the stored examples among rawIDs. Unknown identifiers
// are skipped.
func (s *ExampleService) GetExamples(ctx context.Context, rawIDs []string) ([]*example.Example, error) {
	ids, err := example.ParseIDs(rawIDs)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("getting examples: %w", err)
	}

	return items, nil
}

// ChangeExample applies the requested changes to a stored example. The stored
// state is only replaced when every change passes validation.
func (s *ExampleService) ChangeExample(ctx context.Context, rawID string, in ChangeExampleInput) (*example.Example, error) {
	id, err := example.NewID(rawID)
	if err != nil {
		return nil, err
	}

	ctx = s.scoped(ctx, id)

	op := Operation[ChangeExampleInput, *example.Example, *example.Example, *example.Example]{
		Name: OpChangeExample,
		Validate: func(_ context.Context, in ChangeExampleInput) error {
			if in.empty() {
				return domain.NewInvalidArgumentError(ErrNothingToChange.Error())
			}

			return nil
		},
		Perform: func(ctx context.Context, in ChangeExampleInput) (*example.Example, error) {
			current, err := s.load(ctx, id)
			if err != nil {
				return nil, err
			}

			// Work on a copy so a rejected change never reaches a store
			// that hands out shared pointers.
			changed := example.New(current.ID(), current.Name(), current.Age())

			if in.Name != nil {
				changed.ChangeName(*in.Name)
			}

			if in.Age != nil {
				changed.ChangeAge(*in.Age)
			}

			return changed, nil
		},
		Verify: func(_ context.Context, _ ChangeExampleInput, e *example.Example) (*example.Example, error) {
			return s.verify(OpChangeExample, e)
		},
		Archive: func(ctx context.Context, _ ChangeExampleInput, e *example.Example) error {
			return s.repo.Update(ctx, e)
		},
		Respond: func(_ context.Context, _ ChangeExampleInput, e *example.Example) (*example.Example, error) {
			return e, nil
		},
	}

	changed, err := Execute(ctx, s.executor, op, in)
	if err != nil {
		return nil, fmt.Errorf("changing example: %w", err)
	}

	s.publish(ctx, changed)

	return changed, nil
}

// DeleteExample removes one example.
func (s *ExampleService) DeleteExample(ctx context.Context, rawID string) error {
	id, err := example.NewID(rawID)
	if err != nil {
		return err
	}

	ctx = s.scoped(ctx, id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting example: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "example deleted")

	return nil
}

// DeleteExamples removes every example in rawIDs, or none when any of them
// is not stored.
func (s *ExampleService) DeleteExamples(ctx context.Context, rawIDs []string) error {
	if len(rawIDs) == 0 {
		return domain.NewInvalidArgumentError(domain.EmptyIDsMessage)
	}

	ids, err := example.ParseIDs(rawIDs)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteManyByIDs(ctx, ids); err != nil {
		return fmt.Errorf("deleting examples: %w", err)
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "examples deleted", slog.Int("count", len(ids)))

	return nil
}

// CheckExamples partitions rawIDs into stored and unknown identifiers.
func (s *ExampleService) CheckExamples(ctx context.Context, rawIDs []string) (domain.ExistsResult[example.ID], error) {
	if len(rawIDs) == 0 {
		return domain.ExistsResult[example.ID]{}, domain.NewInvalidArgumentError(domain.EmptyIDsMessage)
	}

	ids, err := example.ParseIDs(rawIDs)
	if err != nil {
		return domain.ExistsResult[example.ID]{}, err
	}

	result, err := s.repo.ExistsByID(ctx, ids)
	if err != nil {
		return domain.ExistsResult[example.ID]{}, fmt.Errorf("checking examples: %w", err)
	}

	return result, nil
}

func (s *ExampleService) load(ctx context.Context, id example.ID) (*example.Example, error) {
	found, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting example: %w", err)
	}

	if !ok {
		return nil, domain.NewEntityNotFoundError(s.repo.EntityName(), id)
	}

	return found, nil
}

func (s *ExampleService) verify(operation string, e *example.Example) (*example.Example, error) {
	if e.Notification().HasErrors() {
		s.metrics.validationFailed(operation)

		return nil, domain.NewEntityValidationError(e.Notification())
	}

	return e, nil
}

// publish hands the recorded events to the publisher. The aggregate is
// already stored, so a failure is logged and not returned.
func (s *ExampleService) publish(ctx context.Context, e *example.Example) {
	recorded := e.Events()
	if len(recorded) == 0 {
		return
	}

	defer e.ClearEvents()

	// The write is already committed; a client that goes away must not drop
	// its events. The publisher bounds delivery on its own.
	ctx = s.scoped(context.WithoutCancel(ctx), e.ID())

	if err := s.publisher.Publish(ctx, recorded...); err != nil {
		s.metrics.publishFailed()
		logging.FromContext(ctx).ErrorContext(ctx, "publishing domain events failed",
			slog.Int("events", len(recorded)),
			slog.Any("error", err),
		)

		return
	}

	for _, event := range recorded {
		s.metrics.eventPublished(event.EventName())
	}
}

// scoped returns ctx with a logger naming the example being handled.
func (s *ExampleService) scoped(ctx context.Context, id example.ID) context.Context {
	ctx = logging.WithContext(ctx, logging.FromContextOr(ctx, s.logger))
	return logging.WithAggregate(ctx, exampleEntity, id.Value())
}
