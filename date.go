// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package daydiff counts the calendar days between two dates of the
// proleptic Gregorian calendar.
//
// It exists for measurements that are recorded as plain dates, where the
// standard library time package is an awkward fit:
//
//   - A time.Time is always a specific point in time in a specific timezone,
//     so two dates have to be pinned to some clock time and location before
//     they can be compared at all.
//   - time.Time.Sub returns a time.Duration, which can only represent ~292
//     years. Date.Sub returns plain seconds instead.
//   - Whether the first and last day of a period count towards its length
//     depends on the experiment. Days makes that choice explicit through
//     Bounds.
//
// A Date is validated on construction and immutable afterwards. Dates are
// created with New or parsed from text with Parse, using a small strftime-like
// format language that knows exactly three verbs:
//
//	%d  day of the month, one or two digits
//	%m  month, one or two digits
//	%Y  year, exactly four digits
//
// Every other character of a format is matched literally.
package daydiff

import (
	"fmt"
	"sync"
)

// A Date represents a day of the proleptic Gregorian calendar.
//
// The zero value of Date is 1900-01-01, the reference date of Epoch. Every
// other Date has to be obtained from New, MustNew or Parse, which ensures
// that no invalid Date can exist.
//
// Dates memoize their epoch, so they must be compared with Compare or Equal,
// not with ==.
type Date struct {
	// year is stored relative to epochYear, month and day relative to 1, so
	// that the zero value is the reference date.
	year  int
	month int
	day   int

	// nil for the zero value, which needs no memoization.
	epoch *epochCache
}

// epochCache memoizes Date.Epoch. It is shared between copies of a Date,
// which all denote the same day.
type epochCache struct {
	once sync.Once
	secs int64
}

// Years outside [MinYear, MaxYear] are rejected by New, which keeps Epoch
// well inside the range of an int64.
const (
	MinYear = -1_000_000_000
	MaxYear = 1_000_000_000
)

// New returns the Date for the given year, month and day. It returns a
// *DateError if year is not in [MinYear, MaxYear], month is not in 1…12 or
// day is not a day of that month in that year.
func New(year int, month Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, &DateError{Year: year, Month: int(month), Day: day, Message: fmt.Sprintf("year should be in [%d, %d]", MinYear, MaxYear)}
	}
	m, err := MonthOf(int(month))
	if err != nil {
		return Date{}, &DateError{Year: year, Month: int(month), Day: day, Message: "month should be in [1, 12]"}
	}
	if day < 1 || day > DaysIn(m, year) {
		return Date{}, &DateError{Year: year, Month: int(month), Day: day, Message: fmt.Sprintf("%v %d has %d days", m, year, DaysIn(m, year))}
	}
	return Date{
		year:  year - epochYear,
		month: int(m) - 1,
		day:   day - 1,
		epoch: new(epochCache),
	}, nil
}

// MustNew is like New, but panics if the date is invalid. It is intended for
// fixed dates in tests and variable initializations.
func MustNew(year int, month Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Year returns the year of d.
func (d Date) Year() int {
	return d.year + epochYear
}

// Month returns the month of d.
func (d Date) Month() Month {
	return Month(d.month + 1)
}

// Day returns the day of the month of d.
func (d Date) Day() int {
	return d.day + 1
}

// Date returns the year, month and day of d.
func (d Date) Date() (year int, month Month, day int) {
	return d.Year(), d.Month(), d.Day()
}

// Epoch returns the number of seconds from 1900-01-01 to d, both taken at
// the start of the day. It is negative for dates before 1900. Its magnitude
// stays below 3.2e16, as years are bounded by MinYear and MaxYear.
//
// The value is computed on first use and memoized.
func (d Date) Epoch() int64 {
	if d.epoch == nil {
		return d.computeEpoch()
	}
	d.epoch.once.Do(func() {
		d.epoch.secs = d.computeEpoch()
	})
	return d.epoch.secs
}

func (d Date) computeEpoch() int64 {
	year, month, day := d.Date()

	days := int64(year-epochYear)*daysPerYear + int64(LeapYears(epochYear, year))
	// LeapYears excludes year itself, so account for its Feb 29 once we are
	// past it.
	if month > February && IsLeap(year) {
		days++
	}
	// February is taken from the non-leap table, see above.
	days += int64(daysBefore[month])
	days += int64(day - 1)

	return days * secondsPerDay
}

// Sub returns the number of seconds between o and d, that is
// d.Epoch()-o.Epoch(). The result is negative if d is before o.
func (d Date) Sub(o Date) int64 {
	return d.Epoch() - o.Epoch()
}

// Compare returns -1 if d is before o, +1 if d is after o and 0 if they are
// the same date.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmp(d.year, o.year)
	case d.month != o.month:
		return cmp(d.month, o.month)
	default:
		return cmp(d.day, o.day)
	}
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal reports whether d and o are the same date.
func (d Date) Equal(o Date) bool {
	return d.Compare(o) == 0
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is after o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

// GoString implements fmt.GoStringer and formats d to be printed in Go source code.
func (d Date) GoString() string {
	year, month, day := d.Date()
	return fmt.Sprintf("daydiff.MustNew(%d, %d, %d)", year, month, day)
}

// String returns the date formatted as ISO 8601 (%Y-%m-%d).
func (d Date) String() string {
	return d.Format(ISO8601)
}

// MarshalText implements the encoding.TextMarshaler interface. The date is
// formatted as ISO 8601.
func (d Date) MarshalText() ([]byte, error) {
	return d.AppendFormat(nil, ISO8601), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The date
// must be in ISO 8601 format with a four digit year.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := parse(string(b), ISO8601, true)
	if err == nil {
		*d = v
	}
	return err
}
