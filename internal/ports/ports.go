// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
//
// Aggregate repositories are declared next to their aggregates in the domain
// layer (see domain.Repository); the ports here cover everything else.
package ports

import (
	"context"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
)

// ModelMapper converts between an aggregate and its storage record.
//
// ToDomain must revalidate the rehydrated aggregate and return a
// *domain.EntityValidationError when the record breaks the current rules.
type ModelMapper[A, M any] interface {
	ToModel(aggregate A) M
	ToDomain(model M) (A, error)
}

// EventPublisher delivers domain events outside the process.
// Implementations may use message brokers, logs, or other mechanisms.
type EventPublisher interface {
	// Publish sends the events in order.
	// Returns domain.ErrUnavailable if the messaging system is unreachable.
	Publish(ctx context.Context, events ...domain.DomainEvent) error
}
