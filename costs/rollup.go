package costs

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/roster"
)

// =============================================================================
// MONTHLY TREND
// =============================================================================

// TrendEntry is one month's totals, tagged with its future/actual
// classification at evaluation time. Estimated months price scheduled
// cycles; the tag is re-derived on every call because it flips as the
// wall clock crosses a month boundary.
type TrendEntry struct {
	Month      calendar.Month
	Total      decimal.Decimal
	Salary     decimal.Decimal
	Allowances decimal.Decimal
	Estimated  bool
}

// MonthlyTrend recomputes the cost records for every month in the range
// and sums them. Allowances is total minus salary, so the decomposition
// Total == Salary + Allowances holds exactly per entry.
func MonthlyTrend(people []roster.Person, rates roster.RateIndex, months []calendar.Month, now time.Time) []TrendEntry {
	entries := make([]TrendEntry, 0, len(months))
	for _, m := range months {
		entry := TrendEntry{
			Month:      m,
			Total:      decimal.Zero,
			Salary:     decimal.Zero,
			Allowances: decimal.Zero,
			Estimated:  m.IsFuture(now),
		}
		for _, rec := range ComputeMonth(people, rates, m) {
			entry.Total = entry.Total.Add(rec.Total)
			entry.Salary = entry.Salary.Add(rec.Salary)
			entry.Allowances = entry.Allowances.Add(rec.Total.Sub(rec.Salary))
		}
		entries = append(entries, entry)
	}
	return entries
}

// =============================================================================
// BY-CLIENT
// =============================================================================

type ClientTotal struct {
	Client string
	Total  decimal.Decimal
}

// ByClient groups cost records by client label and sums totals,
// descending. Records without a client bucket under "Unknown".
func ByClient(records []Record) []ClientTotal {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range records {
		key := defaultLabel(rec.Client)
		sums[key] = sums[key].Add(rec.Total)
	}

	out := make([]ClientTotal, 0, len(sums))
	for label, total := range sums {
		out = append(out, ClientTotal{Client: label, Total: total})
	}
	sortDescending(out, func(t ClientTotal) (string, decimal.Decimal) { return t.Client, t.Total })
	return out
}

// =============================================================================
// BY-TRADE
// =============================================================================

type TradeTotal struct {
	Trade string
	Total decimal.Decimal
}

// ByTrade accumulates totals per trade bucket across every non-future
// month in the range, descending. Future months are excluded: the
// trade view reports actuals only.
func ByTrade(people []roster.Person, rates roster.RateIndex, months []calendar.Month, now time.Time) []TradeTotal {
	sums := make(map[string]decimal.Decimal)
	for _, m := range months {
		if m.IsFuture(now) {
			continue
		}
		for _, rec := range ComputeMonth(people, rates, m) {
			sums[rec.Trade] = sums[rec.Trade].Add(rec.Total)
		}
	}

	out := make([]TradeTotal, 0, len(sums))
	for label, total := range sums {
		out = append(out, TradeTotal{Trade: label, Total: total})
	}
	sortDescending(out, func(t TradeTotal) (string, decimal.Decimal) { return t.Trade, t.Total })
	return out
}

// =============================================================================
// CLIENT x TRADE MATRIX
// =============================================================================

// Bucket is the per-(client, trade) subtotal of every cost component.
type Bucket struct {
	Client string
	Trade  string

	Salary         decimal.Decimal
	FixedAllowance decimal.Decimal
	OffshorePay    decimal.Decimal
	Relief         decimal.Decimal
	Standby        decimal.Decimal
	MedevacPay     decimal.Decimal
	Total          decimal.Decimal
}

// Matrix is the two-level client/trade grouping with a grand total
// across all buckets.
type Matrix struct {
	Buckets    []Bucket
	GrandTotal decimal.Decimal
}

// GroupByClientAndTrade buckets cost records by (client, trade) with
// per-bucket subtotals for every component. Buckets are ordered by
// client priority, then trade rank, matching the roster display order.
func GroupByClientAndTrade(records []Record) Matrix {
	type key struct{ client, trade string }

	buckets := make(map[key]*Bucket)
	var order []key
	for _, rec := range records {
		k := key{client: defaultLabel(rec.Client), trade: rec.Trade}
		b, ok := buckets[k]
		if !ok {
			b = &Bucket{Client: k.client, Trade: k.trade}
			buckets[k] = b
			order = append(order, k)
		}
		b.Salary = b.Salary.Add(rec.Salary)
		b.FixedAllowance = b.FixedAllowance.Add(rec.FixedAllowance)
		b.OffshorePay = b.OffshorePay.Add(rec.OffshorePay)
		b.Relief = b.Relief.Add(rec.Relief)
		b.Standby = b.Standby.Add(rec.Standby)
		b.MedevacPay = b.MedevacPay.Add(rec.MedevacPay)
		b.Total = b.Total.Add(rec.Total)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if ra, rb := roster.ClientRank(order[i].client), roster.ClientRank(order[j].client); ra != rb {
			return ra < rb
		}
		if order[i].client != order[j].client {
			return order[i].client < order[j].client
		}
		return roster.TradeRank(order[i].trade) < roster.TradeRank(order[j].trade)
	})

	m := Matrix{GrandTotal: decimal.Zero}
	for _, k := range order {
		m.Buckets = append(m.Buckets, *buckets[k])
		m.GrandTotal = m.GrandTotal.Add(buckets[k].Total)
	}
	return m
}

// =============================================================================
// HELPERS
// =============================================================================

func defaultLabel(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// sortDescending orders totals descending, ties broken by label so
// output is deterministic.
func sortDescending[T any](items []T, keyOf func(T) (string, decimal.Decimal)) {
	sort.Slice(items, func(i, j int) bool {
		li, ti := keyOf(items[i])
		lj, tj := keyOf(items[j])
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return li < lj
	})
}
