/*
Package calendar provides the date arithmetic used by the roster engine.

PURPOSE:
  Everything here is pure calendar math at day granularity: a Date value
  type, lenient parsing of upstream date fields, month windows, and the
  inclusive day counting that the cost engine depends on.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar day (no time-of-day, no timezone beyond local-day semantics)
  - ParseLenient: Accepts structured dates or strings, fails softly

DESIGN PRINCIPLES:
  1. Day granularity: all comparisons normalize to midnight UTC
  2. Soft failure: unparseable input yields a zero Date, never an error
     (malformed upstream records must not abort an aggregation pass)
  3. Explicit "now": nothing in this package reads the wall clock

SEE ALSO:
  - month.go: Month windows, future/actual classification, month ranges
*/
package calendar

import (
	"strings"
	"time"
)

// =============================================================================
// DATE - Calendar day value type
// =============================================================================

type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time to its calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Comparison
func (d Date) Before(o Date) bool        { return d.t.Before(o.t) }
func (d Date) After(o Date) bool         { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool         { return d.t.Equal(o.t) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.t.After(o.t) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.t.Before(o.t) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Min(o Date) Date {
	if d.Before(o) {
		return d
	}
	return o
}

func (d Date) Max(o Date) Date {
	if d.After(o) {
		return d
	}
	return o
}

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// =============================================================================
// LENIENT PARSING
// =============================================================================

// Layouts accepted from upstream roster exports. Order matters: the
// unambiguous forms are tried first.
var parseLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02-Jan-2006",
	"2-Jan-2006",
	"02/01/2006",
	"2/1/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseLenient converts a date-like value into a Date. It accepts a
// time.Time, a Date, or a string in any of the known layouts. Anything
// else, including empty or unparseable strings, yields (Date{}, false):
// the caller treats the field as absent, never as a failure.
func ParseLenient(v any) (Date, bool) {
	switch x := v.(type) {
	case Date:
		if x.IsZero() {
			return Date{}, false
		}
		return x, true
	case *Date:
		if x == nil || x.IsZero() {
			return Date{}, false
		}
		return *x, true
	case time.Time:
		if x.IsZero() {
			return Date{}, false
		}
		return FromTime(x), true
	case *time.Time:
		if x == nil || x.IsZero() {
			return Date{}, false
		}
		return FromTime(*x), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Date{}, false
		}
		for _, layout := range parseLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return FromTime(t), true
			}
		}
		return Date{}, false
	default:
		return Date{}, false
	}
}

// =============================================================================
// DAY COUNTING
// =============================================================================

// InclusiveDays counts calendar days in [from, to] including both
// endpoints: same-day spans count as 1. A reversed span clamps to 0
// rather than going negative; a malformed interval must never subtract
// from an aggregate.
func InclusiveDays(from, to Date) int {
	if from.After(to) {
		return 0
	}
	return int(to.t.Sub(from.t).Hours()/24) + 1
}
