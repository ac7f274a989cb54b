package domain

import (
	"github.com/google/uuid"
)

// Identifier is a value object that identifies an entity.
type Identifier interface {
	ValueObject

	// Value returns the canonical textual form.
	Value() string
	String() string
}

// UUID is an identifier backed by a universally unique identifier.
type UUID struct {
	value string
}

// NewUUID parses value and returns an InvalidIdentifierError when it is not
// a canonical UUID.
func NewUUID(value string) (UUID, error) {
	// uuid.Parse also accepts urn: and braced forms; only the hyphenated
	// 36-character form is canonical.
	if len(value) != 36 {
		return UUID{}, NewInvalidIdentifierError(value)
	}

	parsed, err := uuid.Parse(value)
	if err != nil {
		return UUID{}, NewInvalidIdentifierError(value)
	}

	return UUID{value: parsed.String()}, nil
}

// MustUUID is like NewUUID but panics on malformed input.
func MustUUID(value string) UUID {
	id, err := NewUUID(value)
	if err != nil {
		panic(err)
	}

	return id
}

// RandomUUID generates a random version 4 identifier.
func RandomUUID() UUID {
	return UUID{value: uuid.NewString()}
}

// Value returns the canonical lowercase form.
func (u UUID) Value() string {
	return u.value
}

// String implements fmt.Stringer.
func (u UUID) String() string {
	return u.value
}

// IsZero reports whether u was never assigned a value.
func (u UUID) IsZero() bool {
	return u.value == ""
}

// Equals reports whether other is a UUID carrying the same value.
func (u UUID) Equals(other ValueObject) bool {
	return SameValue(u, other)
}
