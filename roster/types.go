/*
Package roster defines the personnel data model and its normalization.

PURPOSE:
  Holds the in-memory records the engines run against: people with
  their rotation cycles, and the pay-master rate records. Upstream
  exports arrive in two shapes (a modern cycle list and a legacy
  fixed-slot form); normalization in this package collapses both into
  one canonical shape before any engine sees them.

KEY CONCEPTS IN THIS FILE (types.go):
  - Cycle: one contiguous rotation interval (sign-on .. sign-off, both inclusive)
  - Person: a roster member with role flags resolved at normalization
  - RateRecord: per-person pay parameters from the pay master

DESIGN PRINCIPLES:
  1. Precision: currency uses decimal.Decimal, never float64
  2. Normalize once: role detection and date parsing happen at ingestion,
     not repeatedly inside the engines
  3. Defaults over failures: missing rates resolve to zero records,
     unparseable dates drop the field, never the batch

SEE ALSO:
  - normalize.go: Raw/legacy record shapes and the normalization step
  - rates.go: Rate index construction and resolution
  - sort.go: Roster ordering and group-boundary markers
*/
package roster

import (
	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/calendar"
)

// =============================================================================
// CYCLE - One rotation interval
// =============================================================================

// Cycle is one contiguous stretch of active duty. SignOn and SignOff
// are both inclusive; SignOn <= SignOff holds for every normalized
// cycle. Cycles carry no ordering guarantee and may overlap — each one
// contributes to aggregates independently.
type Cycle struct {
	SignOn  calendar.Date
	SignOff calendar.Date

	// Offshore marks the cycle as offshore duty. Upstream omission
	// means offshore, so normalization defaults it to true.
	Offshore bool

	// ReliefAmount and StandbyAmount are flat per-cycle add-ons. They
	// are never pro-rated: a cycle overlapping a month by a single day
	// contributes the full amount to that month.
	ReliefAmount  decimal.Decimal
	StandbyAmount decimal.Decimal

	// MedevacDates lists billable medical-evacuation events. Each date
	// is counted against the month it falls in, regardless of how the
	// cycle itself intersects that month.
	MedevacDates []calendar.Date
}

// Contains reports whether the day falls inside [SignOn, SignOff].
func (c Cycle) Contains(d calendar.Date) bool {
	return d.AfterOrEqual(c.SignOn) && d.BeforeOrEqual(c.SignOff)
}

// Overlaps reports whether the cycle intersects [from, to].
func (c Cycle) Overlaps(from, to calendar.Date) bool {
	return !c.SignOn.After(to) && !c.SignOff.Before(from)
}

// =============================================================================
// PERSON - Roster member
// =============================================================================

// RoleFlags are resolved once from the free-text post label during
// normalization. OffshoreMedic and EscortMedic are independent gates
// (a post can match both); Office overrides cycle-based scheduling in
// the day-status classifier.
type RoleFlags struct {
	OffshoreMedic bool
	EscortMedic   bool
	Office        bool
}

type Person struct {
	ID       string
	Name     string
	Post     string
	Client   string
	Location string

	// Secondary marks the person as covering a secondary rotation;
	// their on-duty days classify as StatusSecondary instead of
	// StatusPrimary.
	Secondary bool

	Roles  RoleFlags
	Cycles []Cycle
}

// =============================================================================
// RATE RECORD - Pay-master parameters
// =============================================================================

// RateRecord holds the pay parameters for one person. A person with no
// matching record aggregates against a zero-valued record: the batch
// never fails on a missing rate.
type RateRecord struct {
	ID             string
	Salary         decimal.Decimal
	FixedAllowance decimal.Decimal

	// OffshoreRate is paid per eligible offshore day, offshore medics only.
	OffshoreRate decimal.Decimal

	// MedevacRate is paid per medevac event, escort medics only.
	MedevacRate decimal.Decimal
}
