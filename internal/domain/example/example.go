// Package example models the Example aggregate: a named person whose age
// must be of legal age.
package example

import (
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
)

// Field names used in notifications.
const (
	FieldName = "name"
	FieldAge  = "age"
)

// ID identifies an Example.
type ID struct {
	domain.UUID
}

// NewID parses value into an ID.
func NewID(value string) (ID, error) {
	u, err := domain.NewUUID(value)
	if err != nil {
		return ID{}, err
	}

	return ID{UUID: u}, nil
}

// MustID is like NewID but panics on malformed input.
func MustID(value string) ID {
	return ID{UUID: domain.MustUUID(value)}
}

// RandomID generates a new ID.
func RandomID() ID {
	return ID{UUID: domain.RandomUUID()}
}

// ParseIDs parses every value, failing on the first malformed one.
func ParseIDs(values []string) ([]ID, error) {
	ids := make([]ID, 0, len(values))

	for _, v := range values {
		id, err := NewID(v)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// Equals reports whether other is an example ID with the same value.
func (id ID) Equals(other domain.ValueObject) bool {
	return domain.SameValue(id, other)
}

// Example is the aggregate root of this context.
type Example struct {
	domain.AggregateRoot[ID]

	name string
	age  int
}

// New rehydrates an Example without validating it.
func New(id ID, name string, age int) *Example {
	return &Example{
		AggregateRoot: domain.NewAggregateRoot(id),
		name:          name,
		age:           age,
	}
}

// Rehydrate rebuilds a stored Example and checks it against the current
// rules, returning a *domain.EntityValidationError when it no longer passes.
func Rehydrate(id, name string, age int) (*Example, error) {
	exampleID, err := NewID(id)
	if err != nil {
		return nil, err
	}

	e := New(exampleID, name, age)
	e.Validate()

	if e.Notification().HasErrors() {
		return nil, domain.NewEntityValidationError(e.Notification())
	}

	return e, nil
}

// Create builds a new Example with a random ID and validates it. Invalid input
// is reported through Notification, never as an error, and records no Created
// event.
func Create(name string, age int) *Example {
	e := New(RandomID(), name, age)
	e.Validate()

	if !e.Notification().HasErrors() {
		e.ApplyEvent(Created{BaseEvent: domain.NewBaseEvent(e.ID()), Name: name, Age: age})
	}

	return e
}

// Validate runs the example rules. When fields are named, stale messages of
// those fields are dropped first; other fields are left untouched.
func (e *Example) Validate(fields ...string) {
	n := e.Notification()
	for _, f := range fields {
		n.ClearField(f)
	}

	rules.Validate(n, e, fields...)
}

// Name returns the example name.
func (e *Example) Name() string {
	return e.name
}

// Age returns the example age.
func (e *Example) Age() int {
	return e.age
}

// ChangeName renames the example and revalidates the name.
func (e *Example) ChangeName(name string) {
	previous := e.name
	e.name = name
	e.Validate(FieldName)
	e.ApplyEvent(NameChanged{BaseEvent: domain.NewBaseEvent(e.ID()), Previous: previous, Current: name})
}

// ChangeAge updates the age and revalidates it.
func (e *Example) ChangeAge(age int) {
	previous := e.age
	e.age = age
	e.Validate(FieldAge)
	e.ApplyEvent(AgeChanged{BaseEvent: domain.NewBaseEvent(e.ID()), Previous: previous, Current: age})
}

// Repository persists Example aggregates.
type Repository = domain.Repository[ID, *Example]
