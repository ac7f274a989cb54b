package domain

import "reflect"

// ValueObject is an immutable value compared by content, not identity.
type ValueObject interface {
	Equals(other ValueObject) bool
}

// SameValue reports whether b is a non-nil value of the same concrete type
// as a with structurally equal content. Value objects implement Equals by
// delegating to it.
func SameValue(a, b any) bool {
	if isNil(a) || isNil(b) {
		return false
	}

	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	return reflect.DeepEqual(a, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
