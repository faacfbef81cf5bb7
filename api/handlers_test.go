package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/roster-engine/api"
	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, api.Seed(context.Background(), store))

	h := api.NewHandler(store, calendar.Month{Year: 2025, Month: time.January})
	h.Clock = func() time.Time {
		return time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	}

	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, v any) *http.Response {
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

// =============================================================================
// ROSTER ENDPOINTS
// =============================================================================

func TestGetRoster_GroupedAndSorted(t *testing.T) {
	srv := newTestServer(t)

	var rows []api.RosterRowDTO
	resp := getJSON(t, srv, "/api/roster", &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, rows)

	assert.True(t, rows[0].Boundary, "listing opens with a group boundary")

	// Petromar is the priority client: its people come before the others.
	var firstClient string
	for _, r := range rows {
		if r.Person != nil {
			firstClient = r.Person.Client
			break
		}
	}
	assert.Equal(t, "Petromar", firstClient)
}

func TestGetCalendar_CellsForMonth(t *testing.T) {
	srv := newTestServer(t)

	var cal api.CalendarDTO
	resp := getJSON(t, srv, "/api/roster/p-001/calendar/2025/9", &cal)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, cal.Cells, 30)
	// Abebi's cycle runs through Sep 16: day 16 on, day 17 off.
	assert.Equal(t, "primary", cal.Cells[15].Status)
	assert.Equal(t, "off", cal.Cells[16].Status)
	assert.False(t, cal.Cells[15].ConnectsNext, "run ends at sign-off")
}

func TestGetCalendar_UnknownPerson(t *testing.T) {
	srv := newTestServer(t)
	resp := getJSON(t, srv, "/api/roster/nobody/calendar/2025/9", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCalendar_BadMonth(t *testing.T) {
	srv := newTestServer(t)
	resp := getJSON(t, srv, "/api/roster/p-001/calendar/2025/13", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// COST ENDPOINTS
// =============================================================================

func TestGetMonthCosts_ActivePeopleOnly(t *testing.T) {
	srv := newTestServer(t)

	var records []api.CostRecordDTO
	resp := getJSON(t, srv, "/api/costs/2025/9", &records)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// All five seed people have September activity.
	assert.Len(t, records, 5)

	// December: only the office OHN's year-long cycle is active.
	var december []api.CostRecordDTO
	getJSON(t, srv, "/api/costs/2025/12", &december)
	require.Len(t, december, 1)
	assert.Equal(t, "Zara Mensah", december[0].Name)
}

func TestGetTrend_TaggedByNow(t *testing.T) {
	srv := newTestServer(t)

	var entries []api.TrendEntryDTO
	resp := getJSON(t, srv, "/api/costs/trend", &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Anchor Jan 2025 through Dec 2025 (now Sep + 3).
	require.Len(t, entries, 12)
	for _, e := range entries {
		wantEstimated := e.Month > 9 // months after September are estimates
		assert.Equal(t, wantEstimated, e.Estimated, "month %d", e.Month)
	}
}

func TestGetTrend_NowOverride(t *testing.T) {
	srv := newTestServer(t)

	var entries []api.TrendEntryDTO
	resp := getJSON(t, srv, "/api/costs/trend?now=2025-06-01", &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Jan..Sep range under the overridden now; July onward is estimated.
	require.Len(t, entries, 9)
	for _, e := range entries {
		assert.Equal(t, e.Month > 6, e.Estimated, "month %d", e.Month)
	}
}

func TestGetByClient_CurrentMonth(t *testing.T) {
	srv := newTestServer(t)

	var totals []api.ClientTotalDTO
	resp := getJSON(t, srv, "/api/costs/by-client", &totals)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, totals)

	for i := 1; i < len(totals); i++ {
		prev, _ := totals[i-1].Total.Float64()
		cur, _ := totals[i].Total.Float64()
		assert.GreaterOrEqual(t, prev, cur, "client totals sort descending")
	}
}

func TestGetMatrix_GrandTotalMatchesBuckets(t *testing.T) {
	srv := newTestServer(t)

	var m api.MatrixDTO
	resp := getJSON(t, srv, "/api/costs/matrix/2025/9", &m)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, m.Buckets)

	sum := decimal.Zero
	for _, b := range m.Buckets {
		sum = sum.Add(b.Total)
	}
	assert.True(t, m.GrandTotal.Equal(sum), "grand total %s != bucket sum %s", m.GrandTotal, sum)
}

func TestGetByTrade_ActualMonthsOnly(t *testing.T) {
	srv := newTestServer(t)

	var withSeptNow []api.TradeTotalDTO
	getJSON(t, srv, "/api/costs/by-trade", &withSeptNow)

	var withDecNow []api.TradeTotalDTO
	getJSON(t, srv, "/api/costs/by-trade?now=2025-12-01", &withDecNow)

	sumOf := func(ts []api.TradeTotalDTO) float64 {
		var sum float64
		for _, t := range ts {
			f, _ := t.Total.Float64()
			sum += f
		}
		return sum
	}
	assert.Greater(t, sumOf(withDecNow), sumOf(withSeptNow),
		"pushing now forward turns estimated months into actuals")
}
