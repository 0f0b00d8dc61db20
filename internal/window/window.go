// SPDX-License-Identifier: MIT

// Package window generates the calendar days a guide run covers.
package window

import (
	"fmt"
	"iter"
	"time"
)

// DefaultDays is the default lookahead, today included.
const DefaultDays = 3

// Date is a calendar day without a time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Today returns the calendar day of now as observed in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc != nil {
		now = now.In(loc)
	}
	return DateOf(now)
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	// Noon UTC keeps the arithmetic clear of any DST edge.
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Dates yields n consecutive calendar days starting at today.
// The sequence is lazy and stateless: it is restartable, and every range
// over it yields the same n dates again from today. Callers that need a
// single pass range it once.
func Dates(today Date, n int) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for i := 0; i < n; i++ {
			if !yield(today.AddDays(i)) {
				return
			}
		}
	}
}
