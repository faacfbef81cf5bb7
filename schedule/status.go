/*
Package schedule classifies per-day roster presence and assembles the
adjacency needed to render rotation bars.

PURPOSE:
  For a (person, displayed month) pair, derive a per-day status
  sequence and whether consecutive days connect into one visual run.
  Office-based staff are continuously present (weekday/weekend is a
  display distinction only); rotation staff are on whenever a cycle
  contains the day.

CONNECTIVITY:
  Weekday and weekend office statuses collapse into one connectivity
  class so a Friday-to-Saturday transition does not break the bar. Two
  adjacent days connect whenever both are non-off; a primary day next
  to a secondary day still connects.

SEE ALSO:
  - roster: Person, Cycle, role flags
  - calendar: Month windows and day arithmetic
*/
package schedule

import (
	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/roster"
)

// =============================================================================
// DAY STATUS
// =============================================================================

type DayStatus string

const (
	StatusOff           DayStatus = "off"
	StatusPrimary       DayStatus = "primary"
	StatusSecondary     DayStatus = "secondary"
	StatusOfficeWeekday DayStatus = "office_weekday"
	StatusOfficeWeekend DayStatus = "office_weekend"
)

// DayStatusOf classifies one calendar day for one person.
//
// Office-based roles are continuously present regardless of cycle data:
// weekends classify as StatusOfficeWeekend, other days as
// StatusOfficeWeekday. Everyone else is on whenever any cycle contains
// the day (sign-on and sign-off both inclusive), classifying as
// secondary or primary per the person's assignment flag, and off
// otherwise.
func DayStatusOf(p *roster.Person, day calendar.Date) DayStatus {
	if p.Roles.Office {
		if day.IsWeekend() {
			return StatusOfficeWeekend
		}
		return StatusOfficeWeekday
	}

	for _, c := range p.Cycles {
		if c.Contains(day) {
			if p.Secondary {
				return StatusSecondary
			}
			return StatusPrimary
		}
	}
	return StatusOff
}

// =============================================================================
// CONNECTIVITY
// =============================================================================

type Connectivity string

const (
	ConnOff       Connectivity = "off"
	ConnOffice    Connectivity = "on_office"
	ConnPrimary   Connectivity = "on_primary"
	ConnSecondary Connectivity = "on_secondary"
)

// ConnectivityOf collapses the two office sub-statuses into one class
// so office runs span weekends unbroken.
func ConnectivityOf(s DayStatus) Connectivity {
	switch s {
	case StatusOfficeWeekday, StatusOfficeWeekend:
		return ConnOffice
	case StatusPrimary:
		return ConnPrimary
	case StatusSecondary:
		return ConnSecondary
	default:
		return ConnOff
	}
}

// Connected is the run rule: two adjacent days render as one bar when
// both are non-off. The specific on-class need not match; a primary day
// adjacent to a secondary day still connects.
func Connected(a, b Connectivity) bool {
	return a != ConnOff && b != ConnOff
}

// ConnectsToNext reports whether the day joins day+1 in one run. The
// last day of the month has no next day within the displayed window.
func ConnectsToNext(p *roster.Person, month calendar.Month, day int) bool {
	if day >= month.Days() {
		return false
	}
	cur := ConnectivityOf(DayStatusOf(p, calendar.NewDate(month.Year, month.Month, day)))
	next := ConnectivityOf(DayStatusOf(p, calendar.NewDate(month.Year, month.Month, day+1)))
	return Connected(cur, next)
}

// ConnectsFromPrevious reports whether the day joins day-1 in one run.
// Day 1 has no previous day within the displayed window.
func ConnectsFromPrevious(p *roster.Person, month calendar.Month, day int) bool {
	if day <= 1 {
		return false
	}
	return ConnectsToNext(p, month, day-1)
}

// =============================================================================
// MONTH EXPANSION
// =============================================================================

// Cell is one day of a person's month: its status plus the adjacency
// the renderer needs to draw unbroken bars.
type Cell struct {
	Day          int
	Status       DayStatus
	ConnectsPrev bool
	ConnectsNext bool
}

// MonthCells expands a person's whole displayed month in one pass.
// Statuses are computed once per day; adjacency is derived from the
// neighbor's class rather than re-classifying.
func MonthCells(p *roster.Person, month calendar.Month) []Cell {
	n := month.Days()
	cells := make([]Cell, n)
	conns := make([]Connectivity, n)

	for d := 1; d <= n; d++ {
		status := DayStatusOf(p, calendar.NewDate(month.Year, month.Month, d))
		cells[d-1] = Cell{Day: d, Status: status}
		conns[d-1] = ConnectivityOf(status)
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			cells[i].ConnectsPrev = Connected(conns[i-1], conns[i])
		}
		if i < n-1 {
			cells[i].ConnectsNext = Connected(conns[i], conns[i+1])
		}
	}
	return cells
}
