// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daydiff

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is wrapped by every error reporting a year, month and
	// day that do not denote a calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDateFormat is wrapped by every error reporting a format
	// string or input text that cannot be reconciled.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// DateError describes a year, month and day triple that is not a valid date.
type DateError struct {
	Year    int
	Month   int
	Day     int
	Message string
}

// Error returns the string representation of a DateError.
func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %d/%d/%d (d/m/y): %s", e.Day, e.Month, e.Year, e.Message)
}

// Unwrap returns ErrInvalidDate.
func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}

// ParseError describes a problem parsing a date string or compiling its
// format.
type ParseError struct {
	Format  string
	Value   string
	Message string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("date format %q: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parsing date %q as %q: %s", e.Value, e.Format, e.Message)
}

// Unwrap returns ErrInvalidDateFormat.
func (e *ParseError) Unwrap() error {
	return ErrInvalidDateFormat
}
