// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daydiff

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gonih.org/set"
)

var formats = []string{
	DefaultFormat,
	ISO8601,
	"%Y%m%d",
	"%m/%d/%Y",
	"%d.%m.%Y",
}

func TestParse(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		text   string
		format string
		want   Date
		err    error
	}{
		{"23/06/2021", DefaultFormat, MustNew(2021, 6, 23), nil},
		{"23/6/2021", DefaultFormat, MustNew(2021, 6, 23), nil},
		{"3/6/2021", DefaultFormat, MustNew(2021, 6, 3), nil},
		{"2020-02-29", ISO8601, MustNew(2020, 2, 29), nil},
		{"20200229", "%Y%m%d", MustNew(2020, 2, 29), nil},
		{"23.06.2021", "%d.%m.%Y", MustNew(2021, 6, 23), nil},
		{"on 1/2/2003!", "on %d/%m/%Y", MustNew(2003, 2, 1), nil},
		{"23/06/2021 and more", DefaultFormat, MustNew(2021, 6, 23), nil}, // only the start has to match

		{"2020-02-29", "%Y-%m-%d %s", Date{}, ErrInvalidDateFormat}, // unknown verb
		{"2020-02-29", "%Y-%m-%d%", Date{}, ErrInvalidDateFormat},   // trailing %
		{"2020-02", "%Y-%m", Date{}, ErrInvalidDateFormat},          // no day
		{"2021", "%Y", Date{}, ErrInvalidDateFormat},                // no month and day
		{"3", "%d", Date{}, ErrInvalidDateFormat},                   // no year and month
		{"3 3/6/2021", "%d %d/%m/%Y", Date{}, ErrInvalidDateFormat}, // day twice
		{"", "", Date{}, ErrInvalidDateFormat},
		{"2021-02-abc", ISO8601, Date{}, ErrInvalidDateFormat},
		{"1983-06-02", DefaultFormat, Date{}, ErrInvalidDateFormat},
		{"23x06x2021", "%d.%m.%Y", Date{}, ErrInvalidDateFormat}, // literals are not patterns
		{"123/06/2021", DefaultFormat, Date{}, ErrInvalidDateFormat},
		{"23/06/21", DefaultFormat, Date{}, ErrInvalidDateFormat},
		{" 23/06/2021", DefaultFormat, Date{}, ErrInvalidDateFormat},

		{"30/2/2000", DefaultFormat, Date{}, ErrInvalidDate},
		{"32/06/1983", DefaultFormat, Date{}, ErrInvalidDate},
		{"29/02/2023", DefaultFormat, Date{}, ErrInvalidDate},
		{"01/00/2023", DefaultFormat, Date{}, ErrInvalidDate},
		{"01/13/2023", DefaultFormat, Date{}, ErrInvalidDate},
	}
	for _, tc := range tcs {
		got, err := Parse(tc.text, tc.format)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("Parse(%q, %q) = %v, %v, want error %v", tc.text, tc.format, got, err, tc.err)
			}
			continue
		}
		if err != nil || !got.Equal(tc.want) {
			t.Errorf("Parse(%q, %q) = %v, %v, want %v, <nil>", tc.text, tc.format, got, err, tc.want)
		}
	}
}

func TestParseErrorKinds(t *testing.T) {
	t.Parallel()
	_, err := Parse("2021-02-abc", ISO8601)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse = _, %T, want *ParseError", err)
	}
	if pe.Format != ISO8601 || pe.Value != "2021-02-abc" {
		t.Errorf("ParseError = %#v, want format %q and value %q", pe, ISO8601, "2021-02-abc")
	}
	if errors.Is(err, ErrInvalidDate) {
		t.Errorf("Parse = _, %v, which should not be %v", err, ErrInvalidDate)
	}
	if got, want := err.Error(), `parsing date "2021-02-abc" as "%Y-%m-%d": does not match format`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	_, err = Parse("2020-02", "%Y-%m")
	if got, want := err.Error(), `parsing date "2020-02" as "%Y-%m": day (%d) missing from format`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	_, err = Parse("30/2/2000", DefaultFormat)
	var de *DateError
	if !errors.As(err, &de) || errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("Parse = _, %v, want *DateError", err)
	}
}

func TestParseDefault(t *testing.T) {
	d, err := ParseDefault("28/2/2000")
	if err != nil || !d.Equal(MustNew(2000, February, 28)) {
		t.Errorf("ParseDefault(%q) = %v, %v", "28/2/2000", d, err)
	}
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want <nil>", f, err)
		}
	}
	for _, f := range []string{"", "%Y", "%Y-%m", "%d/%m/%y", "%d/%m/%Y %H", "%%d/%m/%Y", "%Y%Y%m%d"} {
		err := ValidateFormat(f)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want %v", f, err, ErrInvalidDateFormat)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		date   Date
		format string
		want   string
	}{
		{MustNew(2021, 6, 3), DefaultFormat, "03/06/2021"},
		{MustNew(2021, 6, 3), ISO8601, "2021-06-03"},
		{MustNew(2021, 12, 31), "%Y%m%d", "20211231"},
		{MustNew(33, 4, 3), ISO8601, "0033-04-03"},
		{MustNew(-44, 3, 15), ISO8601, "-0044-03-15"},
		{MustNew(12345, 1, 1), "%Y", "12345"},
		{MustNew(2021, 6, 3), "%d %x", "03 %x"},
		{MustNew(2021, 6, 3), "100%", "100%"},
		{MustNew(2021, 6, 3), "", ""},
		{Date{}, DefaultFormat, "01/01/1900"},
	}
	for _, tc := range tcs {
		if got := tc.date.Format(tc.format); got != tc.want {
			t.Errorf("%#v.Format(%q) = %q, want %q", tc.date, tc.format, got, tc.want)
		}
	}
}

func TestFormatCache(t *testing.T) {
	const format = "%d|%m|%Y (cache)"
	_, before := FormatCacheStats()
	for i := 0; i < 3; i++ {
		if _, err := Parse("1|2|2003 (cache)", format); err != nil {
			t.Fatal(err)
		}
	}
	hits, after := FormatCacheStats()
	// Other tests may run in parallel, so only check lower bounds.
	if after-before < 1 || hits < 2 {
		t.Errorf("FormatCacheStats() = %d, %d, want at least one miss and two hits", hits, after-before)
	}
}

// FuzzParse checks that Parse does not panic and that it either fails or
// returns a date that formats back to the parsed prefix.
func FuzzParse(f *testing.F) {
	for _, format := range formats {
		f.Add("23/06/2021", format)
		f.Add("2020-02-29", format)
	}
	f.Add("2020-02-29", "%Y-%m-%d %s")
	f.Fuzz(func(t *testing.T, text, format string) {
		d, err := Parse(text, format)
		if err != nil {
			return
		}
		if _, err := Parse(d.Format(format), format); err != nil {
			t.Errorf("Parse(%q, %q) = %v, but Parse of its Format fails: %v", text, format, d, err)
		}
	})
}

// FuzzFormatParse checks that formatting a date and parsing it back is the
// identity for every four digit year.
func FuzzFormatParse(f *testing.F) {
	for _, tc := range tcs {
		f.Add(tc.year, int(tc.month), tc.day)
	}
	f.Fuzz(func(t *testing.T, year, month, day int) {
		if year < 0 || year > 9999 {
			return
		}
		d, err := New(year, Month(month), day)
		if err != nil {
			return
		}
		for _, format := range formats {
			s := d.Format(format)
			got, err := Parse(s, format)
			if err != nil || !got.Equal(d) {
				t.Errorf("Parse(%q, %q) = %v, %v, want %v, <nil>", s, format, got, err, d)
			}
		}
	})
}

// FuzzFormatCompat compares Date.Format with time.Time.Format, for formats
// built from the three verbs and a separator.
func FuzzFormatCompat(f *testing.F) {
	f.Add("-", 0)
	f.Add("/", 44368)
	f.Add(" . ", 36583)
	f.Fuzz(func(t *testing.T, sep string, days int) {
		if days < 0 || days > 2_900_000 {
			return
		}
		for _, r := range sep {
			if !isSeparator(r) {
				return
			}
		}
		T := time.Date(1900, time.January, 1+days, 12, 0, 0, 0, time.UTC)
		if T.Year() > 9999 {
			return
		}
		d := fromTime(T)
		for _, order := range [][3]string{{"%d", "%m", "%Y"}, {"%Y", "%m", "%d"}, {"%m", "%d", "%Y"}} {
			format := strings.Join(order[:], sep)
			layout := strings.NewReplacer("%d", "02", "%m", "01", "%Y", "2006").Replace(format)
			if got, want := d.Format(format), T.Format(layout); got != want {
				t.Fatalf("%#v.Format(%q) = %q, time.Format(%q) = %q", d, format, got, layout, want)
			}
		}
	})
}

// separators are characters that are literals in both our formats and the
// layouts of package time.
var separators = set.Make(' ', '-', '/', '.', ',', ':', '|')

func isSeparator(r rune) bool {
	for s := range separators {
		if s == r {
			return true
		}
	}
	return false
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Parse("23/06/2021", DefaultFormat)
	}
}
