package domain

import (
	"math"
	"time"
)

// Period is an inclusive range between two dates.
type Period struct {
	start Date
	end   Date
}

// NewPeriod builds a period that neither starts nor ends before now and whose
// start does not come after its end.
func NewPeriod(start, end Date, now time.Time) (Period, error) {
	switch {
	case start.IsInPast(now):
		return Period{}, NewInvalidArgumentError("the start date cannot be in the past")
	case end.IsInPast(now):
		return Period{}, NewInvalidArgumentError("the end date cannot be in the past")
	case start.Time().After(end.Time()):
		return Period{}, NewInvalidArgumentError("the start date cannot be after the end date")
	}

	return Period{start: start, end: end}, nil
}

// Start returns the first date of the period.
func (p Period) Start() Date { return p.start }

// End returns the last date of the period.
func (p Period) End() Date { return p.end }

// TotalDays counts the days covered, both ends included.
func (p Period) TotalDays() int {
	diff := p.end.Time().Sub(p.start.Time())
	days := int(math.Ceil(diff.Hours() / 24))

	return days + 1
}

// Contains reports whether d lies within the period.
func (p Period) Contains(d Date) bool {
	t := d.Time()

	return !t.Before(p.start.Time()) && !t.After(p.end.Time())
}

// Equals implements ValueObject.
func (p Period) Equals(other ValueObject) bool {
	o, ok := other.(Period)
	if !ok {
		return false
	}

	return p.start.Equals(o.start) && p.end.Equals(o.end)
}
