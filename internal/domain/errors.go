// Package domain contains the shared kernel used to model aggregates:
// value objects, identifiers, entities, aggregate roots, notifications
// and the repository contract.
//
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates one or more requested entities do not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates an entity violates its business rules.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidArgument indicates a caller passed a malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidIdentifier indicates an identifier value is malformed.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrConflict indicates a state conflict such as a duplicate identifier.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// DefaultValidationMessage is the message used by EntityValidationError
// when none is given.
const DefaultValidationMessage = "invalid entity"

// EntityNotFoundError reports every identifier that could not be found.
type EntityNotFoundError struct {
	Entity string
	IDs    []string
}

// Error implements the error interface.
func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with id(s) %s not found", e.Entity, strings.Join(e.IDs, ", "))
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *EntityNotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewEntityNotFoundError creates a not found error for one or more identifiers.
func NewEntityNotFoundError(entity string, ids ...Identifier) error {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.Value())
	}

	return &EntityNotFoundError{Entity: entity, IDs: values}
}

// EntityValidationError carries the exported notification of an invalid entity.
type EntityValidationError struct {
	Errors  []any
	Message string
}

// Error implements the error interface.
func (e *EntityValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultValidationMessage
	}

	return fmt.Sprintf("%s: %d error(s)", msg, e.CountErrors())
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *EntityValidationError) Unwrap() error {
	return ErrValidation
}

// CountErrors returns the number of exported entries.
func (e *EntityValidationError) CountErrors() int {
	return len(e.Errors)
}

// NewEntityValidationError creates a validation error from a notification.
func NewEntityValidationError(n *Notification) error {
	return &EntityValidationError{Errors: n.ToJSON(), Message: DefaultValidationMessage}
}

// NewEntityValidationErrorWithMessage creates a validation error with a custom message.
func NewEntityValidationErrorWithMessage(n *Notification, message string) error {
	return &EntityValidationError{Errors: n.ToJSON(), Message: message}
}

// InvalidArgumentError provides context for malformed arguments.
type InvalidArgumentError struct {
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NewInvalidArgumentError creates an invalid argument error.
func NewInvalidArgumentError(message string) error {
	return &InvalidArgumentError{Message: message}
}

// InvalidIdentifierError is returned when an identifier cannot be parsed.
type InvalidIdentifierError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("identifier %q is invalid", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidIdentifierError) Unwrap() error {
	return ErrInvalidIdentifier
}

// NewInvalidIdentifierError creates an invalid identifier error.
func NewInvalidIdentifierError(value string) error {
	return &InvalidIdentifierError{Value: value}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Details)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewConflictErrorWithDetails creates a conflict error with additional details.
func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is an entity validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidArgument checks if an error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInvalidIdentifier checks if an error is an invalid identifier error.
func IsInvalidIdentifier(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
