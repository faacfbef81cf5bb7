package roster

import (
	"sort"
	"strings"
)

// =============================================================================
// ROSTER ORDERING - Client, trade, location, name
// =============================================================================

// Client priority for display ordering: the two anchor clients rank
// first and second, everyone else ranks third and falls back to the
// later keys.
const (
	ClientPrimary   = "PETROMAR"
	ClientSecondary = "DEEPWATER HORIZONS"
)

// ClientRank maps a client label to its display priority.
func ClientRank(client string) int {
	switch strings.ToUpper(strings.TrimSpace(client)) {
	case ClientPrimary:
		return 1
	case ClientSecondary:
		return 2
	default:
		return 3
	}
}

// SortRoster orders people for display: client priority, then trade
// rank, then location, then name. The sort is stable so records that
// tie on every key keep their upstream order.
func SortRoster(people []Person) []Person {
	sorted := make([]Person, len(people))
	copy(sorted, people)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ra, rb := ClientRank(a.Client), ClientRank(b.Client); ra != rb {
			return ra < rb
		}
		ta, tb := TradeRank(ShortTrade(a.Post)), TradeRank(ShortTrade(b.Post))
		if ta != tb {
			return ta < tb
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Name < b.Name
	})
	return sorted
}

// =============================================================================
// GROUP BOUNDARIES
// =============================================================================

// Row is one entry in a grouped roster: either a group-boundary marker
// carrying the group label, or a person record. Exactly one of the two
// is set.
type Row struct {
	Boundary bool
	Label    string
	Person   *Person
}

type groupKey struct {
	client   string
	trade    string
	location string
}

func keyOf(p Person) groupKey {
	return groupKey{
		client:   defaultLabel(p.Client),
		trade:    ShortTrade(p.Post),
		location: p.Location,
	}
}

func (k groupKey) label() string {
	parts := []string{k.client, k.trade}
	if k.location != "" {
		parts = append(parts, k.location)
	}
	return strings.Join(parts, " / ")
}

// defaultLabel substitutes the "Unknown" bucket for an absent key.
func defaultLabel(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// GroupRoster sorts the roster and walks it, emitting a boundary row
// whenever the (client, trade, location) composite changes, followed by
// the person rows themselves.
func GroupRoster(people []Person) []Row {
	sorted := SortRoster(people)

	var rows []Row
	var prev groupKey
	for i := range sorted {
		k := keyOf(sorted[i])
		if i == 0 || k != prev {
			rows = append(rows, Row{Boundary: true, Label: k.label()})
			prev = k
		}
		rows = append(rows, Row{Person: &sorted[i]})
	}
	return rows
}
