// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daydiff

// Bounds selects which of the two boundary dates Days counts.
type Bounds uint8

const (
	// IncludeFirst counts the chronologically first of the two dates.
	IncludeFirst Bounds = 1 << iota
	// IncludeLast counts the chronologically last of the two dates.
	IncludeLast

	// Exclusive counts only the days strictly between the two dates.
	Exclusive Bounds = 0
	// Inclusive counts both dates.
	Inclusive = IncludeFirst | IncludeLast
)

// String returns a description of b, for debugging.
func (b Bounds) String() string {
	switch b & Inclusive {
	case Exclusive:
		return "exclusive"
	case IncludeFirst:
		return "include-first"
	case IncludeLast:
		return "include-last"
	default:
		return "inclusive"
	}
}

// Days returns the number of calendar days between a and b. Which of a and b
// comes first does not matter. bounds selects whether the first and the last
// date are counted themselves.
//
// For consecutive dates, Days returns 0 with Exclusive, 1 with either of
// IncludeFirst and IncludeLast and 2 with Inclusive. For equal dates it
// returns 0 unless both bounds are included, in which case it returns 1.
func Days(a, b Date, bounds Bounds) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	// The epoch difference counts one of the two boundary days. Start out
	// with both counted and subtract the excluded ones.
	diff += secondsPerDay

	var excluded int64
	if bounds&IncludeFirst == 0 {
		excluded += secondsPerDay
	}
	if bounds&IncludeLast == 0 {
		excluded += secondsPerDay
	}
	if diff < excluded {
		return 0
	}
	return int((diff - excluded) / secondsPerDay)
}
