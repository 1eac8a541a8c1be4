// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daydiff_test

import (
	"errors"
	"fmt"

	"gonih.org/daydiff"
)

// ExampleDays demonstrates how Bounds changes the count.
func ExampleDays() {
	first := daydiff.MustNew(1983, daydiff.June, 2)
	last := daydiff.MustNew(1983, daydiff.June, 22)

	// Only the days in between:
	fmt.Println(daydiff.Days(first, last, daydiff.Exclusive))
	// Counting the first day as well:
	fmt.Println(daydiff.Days(first, last, daydiff.IncludeFirst))
	// Counting both. The order of the arguments does not matter:
	fmt.Println(daydiff.Days(last, first, daydiff.Inclusive))

	// Output:
	// 19
	// 20
	// 21
}

// ExampleParse demonstrates the usage of Parse.
func ExampleParse() {
	// Days and months may omit their leading zero.
	fmt.Println(daydiff.Parse("23/6/2021", daydiff.DefaultFormat))
	fmt.Println(daydiff.Parse("2020-02-29", "%Y-%m-%d"))

	// Invalid dates and invalid formats are different errors.
	_, err := daydiff.Parse("2023-02-29", daydiff.ISO8601)
	fmt.Println(errors.Is(err, daydiff.ErrInvalidDate), err)
	_, err = daydiff.Parse("2023-02", "%Y-%m")
	fmt.Println(errors.Is(err, daydiff.ErrInvalidDateFormat), err)

	// Output:
	// 2021-06-23 <nil>
	// 2020-02-29 <nil>
	// true invalid date 29/2/2023 (d/m/y): February 2023 has 28 days
	// true parsing date "2023-02" as "%Y-%m": day (%d) missing from format
}

// ExampleDate_Sub shows that Sub is signed and counts seconds.
func ExampleDate_Sub() {
	d1 := daydiff.MustNew(2021, daydiff.July, 16)
	d2 := daydiff.MustNew(2021, daydiff.July, 17)
	fmt.Println(d2.Sub(d1), d1.Sub(d2))

	// Output:
	// 86400 -86400
}

// ExampleLeapYears shows the half-open ranges counted by LeapYears.
func ExampleLeapYears() {
	fmt.Println(daydiff.LeapYears(1988, 1989))
	fmt.Println(daydiff.LeapYears(2000, 2000))
	fmt.Println(daydiff.LeapYears(1900, 3000))
	fmt.Println(daydiff.LeapYears(2000, 1986))

	// Output:
	// 1
	// 0
	// 267
	// -3
}
