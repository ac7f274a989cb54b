package domain

import (
	"context"
	"reflect"
)

// Aggregate is the constraint satisfied by aggregate roots stored in a Repository.
type Aggregate[ID Identifier] interface {
	ID() ID
	Notification() *Notification
	Events() []DomainEvent
	ClearEvents()
}

// ExistsResult partitions identifiers by presence in a store. Every queried
// identifier appears exactly once across both lists.
type ExistsResult[ID Identifier] struct {
	Exists    []ID
	NotExists []ID
}

// Repository is the persistence contract shared by every store.
//
// Implementations return *EntityNotFoundError for Update, Delete and
// DeleteManyByIDs when identifiers are missing, and *InvalidArgumentError
// for ExistsByID with no identifiers.
type Repository[ID Identifier, A Aggregate[ID]] interface {
	Save(ctx context.Context, aggregate A) error
	SaveMany(ctx context.Context, aggregates []A) error

	// FindByID reports whether the aggregate exists instead of failing.
	FindByID(ctx context.Context, id ID) (A, bool, error)
	FindMany(ctx context.Context) ([]A, error)

	// FindManyByIDs returns matches in store order, not input order.
	FindManyByIDs(ctx context.Context, ids []ID) ([]A, error)

	Update(ctx context.Context, aggregate A) error
	Delete(ctx context.Context, id ID) error

	// DeleteManyByIDs removes nothing unless every identifier exists.
	DeleteManyByIDs(ctx context.Context, ids []ID) error
	ExistsByID(ctx context.Context, ids []ID) (ExistsResult[ID], error)

	// EntityName is the aggregate type name used in error messages.
	EntityName() string
}

// EmptyIDsMessage is the message of the InvalidArgumentError returned for an
// empty identifier list.
const EmptyIDsMessage = "ids must be an array with at least one element"

// TypeName returns the bare type name of A, dereferencing pointers.
func TypeName[A any]() string {
	t := reflect.TypeFor[A]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

// PartitionIDs splits ids into those accepted by present and the rest,
// dropping repeated values while keeping first-seen order.
func PartitionIDs[ID Identifier](ids []ID, present func(ID) bool) ExistsResult[ID] {
	result := ExistsResult[ID]{Exists: []ID{}, NotExists: []ID{}}
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id.Value()]; dup {
			continue
		}

		seen[id.Value()] = struct{}{}

		if present(id) {
			result.Exists = append(result.Exists, id)
		} else {
			result.NotExists = append(result.NotExists, id)
		}
	}

	return result
}
