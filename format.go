// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daydiff

import (
	"regexp"
	"strconv"
	"strings"

	"gonih.org/daydiff/internal/cache"
)

// These are predefined formats for use in Parse and Date.Format.
//
// A format consists of the verbs %d (day of the month, one or two digits), %m
// (month, one or two digits) and %Y (year, exactly four digits) and
// arbitrary literal text. Formats used for parsing must name each verb
// exactly once.
const (
	DefaultFormat = "%d/%m/%Y"
	ISO8601       = "%Y-%m-%d"
)

// inst is a single component of a format string, either a literal string,
// or a verb.
type inst struct {
	op  fmtOp
	lit string
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	if i.op == opLiteral || i.op == opInvalid {
		return i.lit
	}
	return i.op.String()
}

// fmtOp is a formatting verb.
type fmtOp int

const (
	opLiteral fmtOp = iota
	opDay
	opMonth
	opYear

	// opInvalid is a '%' followed by an unsupported character, or a
	// trailing '%'. inst.lit holds the offending text.
	opInvalid
)

// String implements fmt.Stringer. Except for opLiteral and opInvalid, it
// returns the verb of the operator.
func (op fmtOp) String() string {
	switch op {
	case opLiteral:
		return "<literal>"
	case opDay:
		return "%d"
	case opMonth:
		return "%m"
	case opYear:
		return "%Y"
	case opInvalid:
		return "<invalid>"
	}
	panic("invalid fmtOp")
}

// group returns the name of the capture group matching op.
func (op fmtOp) group() string {
	switch op {
	case opDay:
		return "day"
	case opMonth:
		return "month"
	case opYear:
		return "year"
	}
	panic("fmtOp " + op.String() + " has no group")
}

// pattern returns the regular expression matching op.
func (op fmtOp) pattern() string {
	if op == opYear {
		return `\d{4}`
	}
	return `\d{1,2}`
}

// verbOp returns the operator of the verb c, which follows a '%'.
func verbOp(c byte) fmtOp {
	switch c {
	case 'd':
		return opDay
	case 'm':
		return opMonth
	case 'Y':
		return opYear
	}
	return opInvalid
}

// parseFormat splits format into its literal text and verbs.
func parseFormat(format string) []inst {
	var prog []inst
	for len(format) > 0 {
		prefix, i, suffix := nextOp(format)
		if prefix != "" {
			prog = append(prog, inst{lit: prefix})
		}
		if i.op != opLiteral {
			prog = append(prog, i)
		}
		format = suffix
	}
	return prog
}

// nextOp decomposes format into a literal prefix, the next verb and the rest
// of the format.
func nextOp(format string) (prefix string, op inst, suffix string) {
	i := strings.IndexByte(format, '%')
	if i < 0 {
		return format, inst{}, ""
	}
	if i+1 == len(format) {
		return format[:i], inst{op: opInvalid, lit: "%"}, ""
	}
	op = inst{op: verbOp(format[i+1]), lit: format[i : i+2]}
	return format[:i], op, format[i+2:]
}

// layout is a compiled format.
type layout struct {
	prog []inst

	// re and the group indices are only set if err is empty.
	re               *regexp.Regexp
	year, month, day int
	err              string
}

// memoize compiled formats.
var memo cache.Memo[string, *layout]

// compile translates format into a regular expression with one named
// capture group per verb, anchored at the start of the input.
func compile(format string) *layout {
	l := &layout{prog: parseFormat(format)}

	var (
		b    strings.Builder
		seen [opInvalid]int
	)
	b.WriteByte('^')
	for _, i := range l.prog {
		switch i.op {
		case opLiteral:
			b.WriteString(regexp.QuoteMeta(i.lit))
		case opInvalid:
			l.err = "unknown verb " + strconv.Quote(i.lit)
			return l
		default:
			seen[i.op]++
			if seen[i.op] > 1 {
				l.err = i.op.String() + " appears more than once"
				return l
			}
			b.WriteString("(?P<" + i.op.group() + ">" + i.op.pattern() + ")")
		}
	}
	var missing []string
	for _, op := range []fmtOp{opDay, opMonth, opYear} {
		if seen[op] == 0 {
			missing = append(missing, op.group()+" ("+op.String()+")")
		}
	}
	if len(missing) > 0 {
		l.err = strings.Join(missing, ", ") + " missing from format"
		return l
	}

	l.re = regexp.MustCompile(b.String())
	l.year = l.re.SubexpIndex(opYear.group())
	l.month = l.re.SubexpIndex(opMonth.group())
	l.day = l.re.SubexpIndex(opDay.group())
	return l
}

// FormatCacheStats reports how often Parse found a compiled format in its
// memo (hits) and how often it had to compile one (misses).
func FormatCacheStats() (hits, misses uint64) {
	return memo.Stats()
}

// ValidateFormat checks that format can be used with Parse. It returns a
// *ParseError if it cannot.
func ValidateFormat(format string) error {
	if l := memo.Get(format, compile); l.err != "" {
		return &ParseError{Format: format, Message: l.err}
	}
	return nil
}

// Parse parses text according to format and returns the date it represents.
//
// The input only has to start with a match of format; anything after that is
// ignored. Parse returns a *ParseError wrapping ErrInvalidDateFormat if the
// format is invalid or does not match, and a *DateError wrapping
// ErrInvalidDate if it matches numbers that are not a calendar date.
func Parse(text, format string) (Date, error) {
	return parse(text, format, false)
}

// ParseDefault is Parse(text, DefaultFormat).
func ParseDefault(text string) (Date, error) {
	return parse(text, DefaultFormat, false)
}

// parse implements Parse. If exact is set, all of text has to be matched.
func parse(text, format string, exact bool) (Date, error) {
	l := memo.Get(format, compile)
	if l.err != "" {
		return Date{}, &ParseError{Format: format, Value: text, Message: l.err}
	}
	m := l.re.FindStringSubmatch(text)
	if m == nil {
		return Date{}, &ParseError{Format: format, Value: text, Message: "does not match format"}
	}
	if exact && len(m[0]) != len(text) {
		return Date{}, &ParseError{Format: format, Value: text, Message: "extra text: " + strconv.Quote(text[len(m[0]):])}
	}

	// The groups only match ASCII digits, so Atoi cannot fail.
	year, _ := strconv.Atoi(m[l.year])
	month, _ := strconv.Atoi(m[l.month])
	day, _ := strconv.Atoi(m[l.day])
	return New(year, Month(month), day)
}

// Format returns a textual representation of d according to format. Days
// and months are zero-padded to two digits and years to four. Unknown verbs
// are copied to the output unchanged.
func (d Date) Format(format string) string {
	const bufSize = 32
	var buf [bufSize]byte
	return string(d.AppendFormat(buf[:0], format))
}

// AppendFormat is like Format but appends the textual representation to b
// and returns the extended buffer.
func (d Date) AppendFormat(b []byte, format string) []byte {
	year, month, day := d.Date()
	for _, i := range memo.Get(format, compile).prog {
		switch i.op {
		case opLiteral, opInvalid:
			b = append(b, i.lit...)
		case opDay:
			b = appendInt(b, day, 2)
		case opMonth:
			b = appendInt(b, int(month), 2)
		case opYear:
			b = appendInt(b, year, 4)
		}
	}
	return b
}

// appendInt appends v to b, zero-padded to at least width digits.
func appendInt(b []byte, v, width int) []byte {
	u := uint64(v)
	if v < 0 {
		b = append(b, '-')
		u = uint64(-v)
	}
	var digits [20]byte
	n := len(digits)
	for u >= 10 {
		n--
		digits[n] = byte('0' + u%10)
		u /= 10
	}
	n--
	digits[n] = byte('0' + u)
	for w := len(digits) - n; w < width; w++ {
		b = append(b, '0')
	}
	return append(b, digits[n:]...)
}
