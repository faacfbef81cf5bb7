package calendar

import "time"

// =============================================================================
// MONTH - (year, month) key and its day window
// =============================================================================

// Month identifies a calendar month. It is the unit the cost engine
// aggregates over and the unit the schedule renders.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next rolls into January of the following year after December.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) After(o Month) bool { return o.Before(m) }

func (m Month) Equal(o Month) bool { return m == o }

// Start is the first calendar day of the month.
func (m Month) Start() Date { return NewDate(m.Year, m.Month, 1) }

// End is the last calendar day of the month ("day 0 of next month").
func (m Month) End() Date {
	return Date{t: time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

// Days returns the number of calendar days in the month, leap years
// included.
func (m Month) Days() int { return m.End().Day() }

// Contains reports whether the date falls inside [Start, End].
func (m Month) Contains(d Date) bool {
	return d.AfterOrEqual(m.Start()) && d.BeforeOrEqual(m.End())
}

func (m Month) String() string { return m.Start().t.Format("2006-01") }

// =============================================================================
// FUTURE / ACTUAL CLASSIFICATION
// =============================================================================

// IsFuture reports whether the month is strictly after now's month.
// The classification is not stable across wall-clock time, so "now" is
// always an explicit parameter: callers re-derive it per evaluation and
// never cache the answer across a month boundary.
func (m Month) IsFuture(now time.Time) bool {
	return m.After(MonthOf(now))
}

// =============================================================================
// MONTH RANGES
// =============================================================================

// Range enumerates months from first through last inclusive. A last
// before first yields an empty slice.
func Range(first, last Month) []Month {
	if last.Before(first) {
		return nil
	}
	var months []Month
	for m := first; !m.After(last); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// RangeFromAnchor enumerates months from a fixed anchor through three
// months past now. This is the window the trend rollup and the roster
// calendar both display.
func RangeFromAnchor(anchor Month, now time.Time) []Month {
	last := MonthOf(now)
	for i := 0; i < 3; i++ {
		last = last.Next()
	}
	return Range(anchor, last)
}
