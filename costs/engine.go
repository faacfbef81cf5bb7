/*
Package costs implements the monthly cost aggregation engine.

PURPOSE:
  For a (roster, rate index, month) triple, intersect every person's
  rotation cycles with the month window and price the overlap: salary
  and fixed allowance for anyone active, per-day offshore allowance for
  offshore medics, flat relief/standby add-ons per overlapping cycle,
  and per-event medevac fees for escort medics. Rollups re-invoke the
  same engine per month.

THE INCLUSIVE-DAY INVARIANT:
  Day counts for a clamped span include BOTH endpoints:
  days(effectiveStart, effectiveEnd) = diff + 1. Sign-on day 5 to
  sign-off day 10 is six paid days. Every partial-month price in the
  system depends on this convention; see calendar.InclusiveDays.

FAILURE SEMANTICS:
  Nothing here returns an error. Unparseable dates were already dropped
  at normalization, missing rates resolve to zero records, missing
  grouping keys bucket under "Unknown". A batch of malformed records
  still produces a best-effort result for the well-formed subset.

SEE ALSO:
  - rollup.go: Monthly trend, by-client, by-trade, client x trade matrix
*/
package costs

import (
	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/roster"
)

// =============================================================================
// COST RECORD - One person's contribution to one month
// =============================================================================

// Record is the priced activity of one person in one month. Derived,
// never stored: every query recomputes from the roster and rate index.
type Record struct {
	PersonID string
	Name     string
	Client   string
	Post     string
	Trade    string

	// TotalDays is the inclusive day count of every cycle clamped to
	// the month. OffshoreDays counts only offshore-flagged cycles and
	// only for offshore medics.
	TotalDays    int
	OffshoreDays int
	MedevacCount int

	Salary         decimal.Decimal
	FixedAllowance decimal.Decimal
	OffshorePay    decimal.Decimal
	Relief         decimal.Decimal
	Standby        decimal.Decimal
	MedevacPay     decimal.Decimal
	Total          decimal.Decimal
}

// =============================================================================
// MONTH AGGREGATION
// =============================================================================

// ComputeMonth produces one Record per person with any cycle
// overlapping the month. People with zero overlapping cycles are
// excluded entirely — no zero-cost rows.
func ComputeMonth(people []roster.Person, rates roster.RateIndex, month calendar.Month) []Record {
	var records []Record
	for i := range people {
		if rec, ok := computePerson(&people[i], rates, month); ok {
			records = append(records, rec)
		}
	}
	return records
}

func computePerson(p *roster.Person, rates roster.RateIndex, month calendar.Month) (Record, bool) {
	monthStart, monthEnd := month.Start(), month.End()

	var (
		totalDays    int
		offshoreDays int
		medevacs     int
		relief       = decimal.Zero
		standby      = decimal.Zero
	)

	for _, c := range p.Cycles {
		// Medevac events count against the month their date falls in,
		// independent of whether the cycle itself overlaps the month.
		for _, md := range c.MedevacDates {
			if month.Contains(md) {
				medevacs++
			}
		}

		if !c.Overlaps(monthStart, monthEnd) {
			continue
		}

		effectiveStart := c.SignOn.Max(monthStart)
		effectiveEnd := c.SignOff.Min(monthEnd)
		days := calendar.InclusiveDays(effectiveStart, effectiveEnd)

		totalDays += days
		if p.Roles.OffshoreMedic && c.Offshore {
			offshoreDays += days
		}

		// Flat per-cycle amounts: a one-day overlap still contributes
		// the whole amount.
		relief = relief.Add(c.ReliefAmount)
		standby = standby.Add(c.StandbyAmount)
	}

	if totalDays == 0 {
		return Record{}, false
	}

	rate := rates.Resolve(p.Name)

	offshorePay := decimal.Zero
	if p.Roles.OffshoreMedic {
		offshorePay = rate.OffshoreRate.Mul(decimal.NewFromInt(int64(offshoreDays)))
	}
	medevacPay := decimal.Zero
	if p.Roles.EscortMedic {
		medevacPay = rate.MedevacRate.Mul(decimal.NewFromInt(int64(medevacs)))
	}

	rec := Record{
		PersonID:       p.ID,
		Name:           p.Name,
		Client:         p.Client,
		Post:           p.Post,
		Trade:          roster.ShortTrade(p.Post),
		TotalDays:      totalDays,
		OffshoreDays:   offshoreDays,
		MedevacCount:   medevacs,
		Salary:         rate.Salary,
		FixedAllowance: rate.FixedAllowance,
		OffshorePay:    offshorePay,
		Relief:         relief,
		Standby:        standby,
		MedevacPay:     medevacPay,
	}
	rec.Total = rec.Salary.
		Add(rec.FixedAllowance).
		Add(rec.OffshorePay).
		Add(rec.Relief).
		Add(rec.Standby).
		Add(rec.MedevacPay)
	return rec, true
}
