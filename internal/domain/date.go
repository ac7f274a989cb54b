package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by Date.Format.
const DateLayout = time.DateOnly

// Date is an immutable point in time compared at nanosecond precision.
type Date struct {
	t time.Time
}

// NewDate wraps t, normalized to UTC.
func NewDate(t time.Time) Date {
	return Date{t: t.UTC()}
}

// Today returns the current instant.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate accepts RFC 3339 timestamps and YYYY-MM-DD dates.
func ParseDate(value string) (Date, error) {
	for _, layout := range []string{time.RFC3339Nano, DateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return NewDate(t), nil
		}
	}

	return Date{}, NewInvalidArgumentError(fmt.Sprintf("%q is not a valid date", value))
}

// Time returns the wrapped instant.
func (d Date) Time() time.Time {
	return d.t
}

// Format renders the calendar date as YYYY-MM-DD.
func (d Date) Format() string {
	return d.t.Format(DateLayout)
}

// IsToday reports whether d falls on the same calendar day as now.
func (d Date) IsToday(now time.Time) bool {
	y1, m1, d1 := d.t.Date()
	y2, m2, d2 := now.UTC().Date()

	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsInPast reports whether d is before now.
func (d Date) IsInPast(now time.Time) bool {
	return d.t.Before(now)
}

// IsInFuture reports whether d is after now.
func (d Date) IsInFuture(now time.Time) bool {
	return d.t.After(now)
}

// Equals implements ValueObject.
func (d Date) Equals(other ValueObject) bool {
	o, ok := other.(Date)
	if !ok {
		return false
	}

	return d.t.Equal(o.t)
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.t.Format(time.RFC3339)
}
