// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daydiff

import (
	"errors"
	"strconv"
)

const (
	// The number of seconds in a day. Dates carry no clock, so every day has
	// exactly this many seconds.
	secondsPerDay = 24 * 60 * 60

	// The number of days in a non-leap year.
	daysPerYear = 365

	// The reference date of Date.Epoch.
	epochYear = 1900
)

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar: divisible by 4, except for centuries not divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LeapYears returns the number of leap years in the half-open range
// [start, end).
//
// If end < start the count is negative, counting down from start. The
// counted range is then [end, start), so start itself is never counted: the
// Feb 29 of a leap start year lies after the point being counted down from.
// For example LeapYears(2000, 1986) is -3 (1996, 1992, 1988).
//
// start and end must be greater than math.MinInt.
func LeapYears(start, end int) int {
	s, e := start-1, end-1
	return (floorDiv(e, 4) - floorDiv(s, 4)) -
		(floorDiv(e, 100) - floorDiv(s, 100)) +
		(floorDiv(e, 400) - floorDiv(s, 400))
}

// floorDiv returns a/b rounded towards negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ErrMonthRange is returned by MonthOf for ordinals outside 1…12.
var ErrMonthRange = errors.New("month out of range")

// A Month specifies a month of the year (January = 1, ...).
type Month int

const (
	January Month = 1 + iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var longMonthNames = [...]string{
	January:   "January",
	February:  "February",
	March:     "March",
	April:     "April",
	May:       "May",
	June:      "June",
	July:      "July",
	August:    "August",
	September: "September",
	October:   "October",
	November:  "November",
	December:  "December",
}

// daysInMonth counts the days of a month in a non-leap year.
var daysInMonth = [...]int{
	January:   31,
	February:  28,
	March:     31,
	April:     30,
	May:       31,
	June:      30,
	July:      31,
	August:    31,
	September: 30,
	October:   31,
	November:  30,
	December:  31,
}

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins.
var daysBefore = func() [December + 1]int {
	var t [December + 1]int
	for m := February; m <= December; m++ {
		t[m] = t[m-1] + daysInMonth[m-1]
	}
	return t
}()

// MonthOf returns the Month with the given ordinal.
func MonthOf(n int) (Month, error) {
	m := Month(n)
	if !m.valid() {
		return 0, ErrMonthRange
	}
	return m, nil
}

func (m Month) valid() bool {
	return January <= m && m <= December
}

// Days returns the number of days of m in a non-leap year. It returns 0 for
// an invalid Month.
func (m Month) Days() int {
	if !m.valid() {
		return 0
	}
	return daysInMonth[m]
}

// String returns the English name of the month ("January", "February", ...).
func (m Month) String() string {
	if m.valid() {
		return longMonthNames[m]
	}
	return "%!Month(" + strconv.Itoa(int(m)) + ")"
}

// DaysIn returns the number of days of m in the given year.
func DaysIn(m Month, year int) int {
	if m == February && IsLeap(year) {
		return 29
	}
	return m.Days()
}
