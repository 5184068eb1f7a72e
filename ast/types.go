package ast

import "time"

// DateLayout is the canonical text form of dates in statement exports.
const DateLayout = "01/02/2006"

// Date represents a calendar day. Statement exports only carry day precision, so
// the embedded time is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate returns the date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FirstOfYear returns January 1 of year.
func FirstOfYear(year int) Date {
	return NewDate(year, time.January, 1)
}

// LastOfYear returns December 31 of year.
func LastOfYear(year int) Date {
	return NewDate(year, time.December, 31)
}

// String renders the date in canonical MM/DD/YYYY form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// Equal reports whether both dates are the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}
