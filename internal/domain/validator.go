package domain

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// tagValidator evaluates single-value rules expressed as validator tags.
var tagValidator = newTagValidator()

func newTagValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return v
}

// FieldValidator records the rule violations of data into a notification.
// With no field names every rule runs; otherwise only the named fields are
// checked.
type FieldValidator[T any] interface {
	Validate(n *Notification, data T, fields ...string)
}

// Rule is one check on a field. A rule either applies a validator tag to the
// field value or evaluates a predicate over the whole object.
type Rule[T any] struct {
	Tag     string
	Check   func(data T) bool
	Message string
}

func (r Rule[T]) passes(data T, value any) bool {
	if r.Check != nil {
		return r.Check(data)
	}

	return tagValidator.Var(value, r.Tag) == nil
}

// FieldRules binds an ordered list of rules to one field.
type FieldRules[T any] struct {
	Field string
	Value func(data T) any
	Rules []Rule[T]
}

// RuleValidator evaluates a declarative rule table.
type RuleValidator[T any] struct {
	fields []FieldRules[T]
}

// NewRuleValidator creates a validator evaluating fields in the given order.
func NewRuleValidator[T any](fields ...FieldRules[T]) *RuleValidator[T] {
	return &RuleValidator[T]{fields: fields}
}

// Validate implements FieldValidator.
func (v *RuleValidator[T]) Validate(n *Notification, data T, fields ...string) {
	for _, fr := range v.fields {
		if len(fields) > 0 && !slices.Contains(fields, fr.Field) {
			continue
		}

		var value any
		if fr.Value != nil {
			value = fr.Value(data)
		}

		for _, rule := range fr.Rules {
			if !rule.passes(data, value) {
				n.AddFieldError(fr.Field, rule.Message)
			}
		}
	}
}

// Fields returns the names of the fields covered by the table.
func (v *RuleValidator[T]) Fields() []string {
	names := make([]string, 0, len(v.fields))
	for _, fr := range v.fields {
		names = append(names, fr.Field)
	}

	return names
}

// Tag builds a rule from a validator tag such as "min=18" or "email".
func Tag[T any](tag, message string) Rule[T] {
	return Rule[T]{Tag: tag, Message: message}
}

// Check builds a rule from a predicate over the whole object.
func Check[T any](check func(data T) bool, message string) Rule[T] {
	return Rule[T]{Check: check, Message: message}
}

// Min requires a numeric value of at least minimum.
func Min[T any](minimum int, message string) Rule[T] {
	return Tag[T](fmt.Sprintf("min=%d", minimum), message)
}

// Positive requires a numeric value strictly greater than zero.
func Positive[T any](message string) Rule[T] {
	return Tag[T]("gt=0", message)
}

// NotBlank requires a string with at least one non-space character.
func NotBlank[T any](message string) Rule[T] {
	return Tag[T]("notblank", message)
}

// MaxLen caps the length of a string.
func MaxLen[T any](maximum int, message string) Rule[T] {
	return Tag[T](fmt.Sprintf("max=%d", maximum), message)
}

// LessThan requires left(data) < right(data).
func LessThan[T any](left, right func(T) float64, message string) Rule[T] {
	return Check(func(d T) bool { return left(d) < right(d) }, message)
}

// LessOrEqual requires left(data) <= right(data).
func LessOrEqual[T any](left, right func(T) float64, message string) Rule[T] {
	return Check(func(d T) bool { return left(d) <= right(d) }, message)
}

// GreaterThan requires left(data) > right(data).
func GreaterThan[T any](left, right func(T) float64, message string) Rule[T] {
	return Check(func(d T) bool { return left(d) > right(d) }, message)
}

// GreaterOrEqual requires left(data) >= right(data).
func GreaterOrEqual[T any](left, right func(T) float64, message string) Rule[T] {
	return Check(func(d T) bool { return left(d) >= right(d) }, message)
}
