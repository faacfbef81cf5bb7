package roster

import "strings"

// =============================================================================
// RATE INDEX - Pay-master lookup
// =============================================================================

// RateIndex maps a normalized person identifier to their pay
// parameters. Built once per query context and treated as immutable for
// the duration of an aggregation pass.
type RateIndex map[string]RateRecord

// NormalizeID is the join key between roster and pay-master records:
// uppercase, whitespace-trimmed.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// BuildRateIndex indexes rate records by normalized identifier.
// Duplicate identifiers are last-write-wins; the pay master is the
// system of record for resolving its own duplicates, so a collision
// here is accepted rather than reported.
func BuildRateIndex(records []RateRecord) RateIndex {
	idx := make(RateIndex, len(records))
	for _, r := range records {
		key := NormalizeID(r.ID)
		if key == "" {
			continue
		}
		idx[key] = r
	}
	return idx
}

// Resolve returns the rate record for a person, or the zero-valued
// record when no match exists. It never fails: a person missing from
// the pay master still aggregates, with zero salary-side components.
func (idx RateIndex) Resolve(personID string) RateRecord {
	if r, ok := idx[NormalizeID(personID)]; ok {
		return r
	}
	return RateRecord{}
}
