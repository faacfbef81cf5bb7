package roster

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/calendar"
)

// =============================================================================
// RAW SHAPES - What the data-access layer hands us
// =============================================================================

// RawCycle is a rotation interval as exported upstream. Dates may be
// strings in any supported layout or already-structured values; the
// Offshore pointer distinguishes "explicitly false" from "absent"
// (absent defaults to true).
type RawCycle struct {
	SignOn   any
	SignOff  any
	Offshore *bool

	ReliefAmount  decimal.Decimal
	StandbyAmount decimal.Decimal

	MedevacDates []any
}

// RawPerson is a roster record before normalization. Exactly one of
// Cycles or Slots is expected to be populated: Cycles for the modern
// export, Slots for the legacy fixed-slot form (m1/d1 .. m24/d24 pairs
// of sign-on/sign-off fields).
type RawPerson struct {
	ID        string
	Name      string
	Post      string
	Client    string
	Location  string
	Secondary bool

	Cycles []RawCycle
	Slots  map[string]any
}

// legacySlotPairs is the slot count of the legacy shape. The canonical
// model has no such bound; this only drives the legacy field scan.
const legacySlotPairs = 24

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize converts a raw roster record into the canonical Person.
// Role flags are resolved here, once, so the engines never re-scan the
// post label. Cycles with an unparseable sign-on or sign-off are
// dropped; a reversed interval is dropped too. Both are data-quality
// degradations, not errors.
func Normalize(raw RawPerson) Person {
	p := Person{
		ID:        strings.TrimSpace(raw.ID),
		Name:      strings.TrimSpace(raw.Name),
		Post:      strings.TrimSpace(raw.Post),
		Client:    strings.TrimSpace(raw.Client),
		Location:  strings.TrimSpace(raw.Location),
		Secondary: raw.Secondary,
	}
	p.Roles = ClassifyPost(p.Post)

	for _, rc := range raw.Cycles {
		if c, ok := normalizeCycle(rc); ok {
			p.Cycles = append(p.Cycles, c)
		}
	}
	p.Cycles = append(p.Cycles, legacyCycles(raw.Slots)...)

	return p
}

// NormalizeAll maps Normalize over a batch.
func NormalizeAll(raws []RawPerson) []Person {
	people := make([]Person, 0, len(raws))
	for _, r := range raws {
		people = append(people, Normalize(r))
	}
	return people
}

func normalizeCycle(rc RawCycle) (Cycle, bool) {
	signOn, ok := calendar.ParseLenient(rc.SignOn)
	if !ok {
		return Cycle{}, false
	}
	signOff, ok := calendar.ParseLenient(rc.SignOff)
	if !ok {
		return Cycle{}, false
	}
	if signOn.After(signOff) {
		return Cycle{}, false
	}

	c := Cycle{
		SignOn:        signOn,
		SignOff:       signOff,
		Offshore:      rc.Offshore == nil || *rc.Offshore,
		ReliefAmount:  rc.ReliefAmount,
		StandbyAmount: rc.StandbyAmount,
	}
	for _, md := range rc.MedevacDates {
		if d, ok := calendar.ParseLenient(md); ok {
			c.MedevacDates = append(c.MedevacDates, d)
		}
	}
	return c, true
}

// legacyCycles scans the fixed-slot legacy fields: mN holds the Nth
// sign-on, dN the Nth sign-off. Slots with either date missing or
// unparseable are skipped individually; legacy records carry no
// offshore flag or per-cycle amounts.
func legacyCycles(slots map[string]any) []Cycle {
	if len(slots) == 0 {
		return nil
	}
	var cycles []Cycle
	for i := 1; i <= legacySlotPairs; i++ {
		signOn, ok := calendar.ParseLenient(slots[fmt.Sprintf("m%d", i)])
		if !ok {
			continue
		}
		signOff, ok := calendar.ParseLenient(slots[fmt.Sprintf("d%d", i)])
		if !ok {
			continue
		}
		if signOn.After(signOff) {
			continue
		}
		cycles = append(cycles, Cycle{SignOn: signOn, SignOff: signOff, Offshore: true})
	}
	return cycles
}

// =============================================================================
// ROLE CLASSIFICATION
// =============================================================================

// ClassifyPost derives role flags from the free-text post label. The
// matches are case-insensitive substring tests, preserved from the
// upstream convention: "OFFSHORE MEDIC" and "ESCORT MEDIC" gate pay
// eligibility independently, "IM" or "OHN" marks office-based staff.
func ClassifyPost(post string) RoleFlags {
	upper := strings.ToUpper(post)
	return RoleFlags{
		OffshoreMedic: strings.Contains(upper, "OFFSHORE MEDIC"),
		EscortMedic:   strings.Contains(upper, "ESCORT MEDIC"),
		Office:        strings.Contains(upper, "IM") || strings.Contains(upper, "OHN"),
	}
}

// =============================================================================
// TRADE LABELS
// =============================================================================

// tradeCategories is the ordered list of known trade labels, most
// senior first. Position doubles as the sort rank; unknown trades rank
// after every known one.
var tradeCategories = []string{
	"Offshore Medic",
	"Escort Medic",
	"Clinic Medic",
	"Industrial Medic",
	"OHN",
	"Paramedic",
	"Nurse",
	"Doctor",
}

// tradeMatchers maps post-label substrings to their short trade label.
// Checked in order; first match wins, so the more specific substrings
// come first.
var tradeMatchers = []struct {
	substr string
	trade  string
}{
	{"OFFSHORE MEDIC", "Offshore Medic"},
	{"ESCORT MEDIC", "Escort Medic"},
	{"CLINIC MEDIC", "Clinic Medic"},
	{"INDUSTRIAL MEDIC", "Industrial Medic"},
	{"OHN", "OHN"},
	{"PARAMEDIC", "Paramedic"},
	{"NURSE", "Nurse"},
	{"DOCTOR", "Doctor"},
	{"DR ", "Doctor"},
}

// ShortTrade shortens a post label to its trade bucket. Labels that
// match no known trade keep a trimmed copy of themselves so the
// by-trade rollup still has a bucket for them.
func ShortTrade(post string) string {
	upper := strings.ToUpper(post)
	for _, m := range tradeMatchers {
		if strings.Contains(upper, m.substr) {
			return m.trade
		}
	}
	trimmed := strings.TrimSpace(post)
	if trimmed == "" {
		return "Unknown"
	}
	return trimmed
}

// TradeRank returns the sort position of a trade label. Unrecognized
// trades sort after all known categories.
func TradeRank(trade string) int {
	for i, t := range tradeCategories {
		if strings.EqualFold(t, trade) {
			return i
		}
	}
	return len(tradeCategories)
}
