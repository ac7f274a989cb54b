// Package memory provides an in-process repository backed by an ordered slice.
//
// The repository is meant for tests, demos and local runs: lookups are linear
// scans and there is no locking, so it assumes a single writer.
package memory

import (
	"context"
	"slices"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
)

// Repository implements domain.Repository over a slice kept in insertion order.
type Repository[ID domain.Identifier, A domain.Aggregate[ID]] struct {
	items      []A
	entityName string
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	entityName string
}

// WithEntityName overrides the type name used in error messages.
func WithEntityName(name string) Option {
	return func(o *options) { o.entityName = name }
}

// NewRepository creates an empty repository.
func NewRepository[ID domain.Identifier, A domain.Aggregate[ID]](opts ...Option) *Repository[ID, A] {
	o := options{entityName: domain.TypeName[A]()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Repository[ID, A]{entityName: o.entityName}
}

// NewExampleRepository creates an in-memory example.Repository.
func NewExampleRepository() *Repository[example.ID, *example.Example] {
	return NewRepository[example.ID, *example.Example]()
}

// Save appends aggregate. Duplicate identifiers are not rejected.
func (r *Repository[ID, A]) Save(_ context.Context, aggregate A) error {
	r.items = append(r.items, aggregate)
	return nil
}

// SaveMany appends every aggregate in order.
func (r *Repository[ID, A]) SaveMany(_ context.Context, aggregates []A) error {
	r.items = append(r.items, aggregates...)
	return nil
}

// FindByID returns the first aggregate with id.
func (r *Repository[ID, A]) FindByID(_ context.Context, id ID) (A, bool, error) {
	i := r.indexOf(id)
	if i < 0 {
		var zero A
		return zero, false, nil
	}

	return r.items[i], true, nil
}

// FindMany returns every aggregate in insertion order.
func (r *Repository[ID, A]) FindMany(_ context.Context) ([]A, error) {
	return slices.Clone(r.items), nil
}

// FindManyByIDs returns the aggregates matching any of ids, in store order.
func (r *Repository[ID, A]) FindManyByIDs(_ context.Context, ids []ID) ([]A, error) {
	out := make([]A, 0, len(ids))

	for _, item := range r.items {
		if containsID(ids, item.ID()) {
			out = append(out, item)
		}
	}

	return out, nil
}

// Update replaces the stored aggregate with the same identifier in place.
func (r *Repository[ID, A]) Update(_ context.Context, aggregate A) error {
	i := r.indexOf(aggregate.ID())
	if i < 0 {
		return domain.NewEntityNotFoundError(r.entityName, aggregate.ID())
	}

	r.items[i] = aggregate

	return nil
}

// Delete removes the aggregate with id.
func (r *Repository[ID, A]) Delete(_ context.Context, id ID) error {
	i := r.indexOf(id)
	if i < 0 {
		return domain.NewEntityNotFoundError(r.entityName, id)
	}

	r.items = slices.Delete(r.items, i, i+1)

	return nil
}

// DeleteManyByIDs removes every aggregate matching ids, or nothing at all
// when any identifier is missing.
func (r *Repository[ID, A]) DeleteManyByIDs(_ context.Context, ids []ID) error {
	var missing []domain.Identifier

	for _, id := range ids {
		if r.indexOf(id) < 0 {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		return domain.NewEntityNotFoundError(r.entityName, missing...)
	}

	r.items = slices.DeleteFunc(r.items, func(item A) bool {
		return containsID(ids, item.ID())
	})

	return nil
}

// ExistsByID partitions ids by presence.
func (r *Repository[ID, A]) ExistsByID(_ context.Context, ids []ID) (domain.ExistsResult[ID], error) {
	if len(ids) == 0 {
		return domain.ExistsResult[ID]{}, domain.NewInvalidArgumentError(domain.EmptyIDsMessage)
	}

	return domain.PartitionIDs(ids, func(id ID) bool {
		return r.indexOf(id) >= 0
	}), nil
}

// EntityName implements domain.Repository.
func (r *Repository[ID, A]) EntityName() string {
	return r.entityName
}

// Len returns the number of stored aggregates.
func (r *Repository[ID, A]) Len() int {
	return len(r.items)
}

func (r *Repository[ID, A]) indexOf(id ID) int {
	return slices.IndexFunc(r.items, func(item A) bool {
		return item.ID().Equals(id)
	})
}

func containsID[ID domain.Identifier](ids []ID, id ID) bool {
	return slices.ContainsFunc(ids, func(candidate ID) bool {
		return candidate.Equals(id)
	})
}
