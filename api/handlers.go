/*
handlers.go - HTTP API handlers for the roster cost engine

PURPOSE:
  Exposes the aggregation and calendar engines via REST. Handlers load
  the roster and rate index from the store, run the pure engines, and
  serialize the result. No engine state survives between requests.

ENDPOINTS:
  Roster:
    GET  /api/roster                          Grouped/sorted roster
    GET  /api/roster/{id}/calendar/{year}/{month}  Day statuses + run adjacency

  Costs:
    GET  /api/costs/{year}/{month}            Per-person cost records
    GET  /api/costs/trend                     Monthly totals, anchor..now+3
    GET  /api/costs/by-client                 Current-month client totals
    GET  /api/costs/by-trade                  Actual-month trade totals
    GET  /api/costs/matrix/{year}/{month}     Client x trade subtotals

  Admin:
    POST /api/seed                            Load the demo dataset

DETERMINISM:
  Future/actual classification depends on "now". Handlers accept an
  optional ?now=YYYY-MM-DD override so responses are reproducible in
  tests and demos; absent the override, wall-clock time applies.

ERROR HANDLING:
  The engines never fail on data quality; handler errors are I/O only:
  - 400: Malformed path or query parameters
  - 404: Unknown person
  - 500: Store failures

SEE ALSO:
  - dto.go: Response shapes
  - server.go: Router and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/costs"
	"github.com/meridian/roster-engine/roster"
	"github.com/meridian/roster-engine/schedule"
	"github.com/meridian/roster-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Anchor is the first month of the displayed range; the range runs
	// through now+3 months.
	Anchor calendar.Month

	// Clock returns "now" for future/actual classification. Defaults
	// to time.Now; tests may replace it.
	Clock func() time.Time
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store *sqlite.Store, anchor calendar.Month) *Handler {
	return &Handler{
		Store:  store,
		Anchor: anchor,
		Clock:  time.Now,
	}
}

// now resolves evaluation time: the ?now=YYYY-MM-DD override wins,
// otherwise the handler clock.
func (h *Handler) now(r *http.Request) time.Time {
	if s := r.URL.Query().Get("now"); s != "" {
		if d, ok := calendar.ParseLenient(s); ok {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return h.Clock()
}

// load materializes the roster and rate index for one request.
func (h *Handler) load(ctx context.Context) ([]roster.Person, roster.RateIndex, error) {
	people, err := h.Store.ListPeople(ctx)
	if err != nil {
		return nil, nil, err
	}
	rates, err := h.Store.ListRates(ctx)
	if err != nil {
		return nil, nil, err
	}
	return people, roster.BuildRateIndex(rates), nil
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// GetRoster returns the grouped, sorted roster.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	people, _, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	rows := roster.GroupRoster(people)
	dtos := make([]RosterRowDTO, 0, len(rows))
	for _, row := range rows {
		if row.Boundary {
			dtos = append(dtos, RosterRowDTO{Boundary: true, Label: row.Label})
			continue
		}
		dtos = append(dtos, RosterRowDTO{Person: personDTO(row.Person)})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalendar returns one person's day statuses and run adjacency for
// a month.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	people, _, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	for i := range people {
		if people[i].ID == id {
			writeJSON(w, http.StatusOK, CalendarDTO{
				PersonID: id,
				Year:     month.Year,
				Month:    int(month.Month),
				Cells:    cellDTOs(schedule.MonthCells(&people[i], month)),
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Person not found", nil)
}

// =============================================================================
// COST HANDLERS
// =============================================================================

// GetMonthCosts returns per-person cost records for one month.
func (h *Handler) GetMonthCosts(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	people, rates, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	records := costs.ComputeMonth(people, rates, month)
	dtos := make([]CostRecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, costRecordDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTrend returns monthly totals from the anchor through now+3,
// tagged actual/estimated.
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	people, rates, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	now := h.now(r)
	months := calendar.RangeFromAnchor(h.Anchor, now)
	entries := costs.MonthlyTrend(people, rates, months, now)

	dtos := make([]TrendEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, TrendEntryDTO{
			Year:       e.Month.Year,
			Month:      int(e.Month.Month),
			Total:      e.Total,
			Salary:     e.Salary,
			Allowances: e.Allowances,
			Estimated:  e.Estimated,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetByClient returns the current month's totals grouped by client.
func (h *Handler) GetByClient(w http.ResponseWriter, r *http.Request) {
	people, rates, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	records := costs.ComputeMonth(people, rates, calendar.MonthOf(h.now(r)))
	totals := costs.ByClient(records)

	dtos := make([]ClientTotalDTO, 0, len(totals))
	for _, t := range totals {
		dtos = append(dtos, ClientTotalDTO{Client: t.Client, Total: t.Total})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetByTrade returns trade totals accumulated across all actual
// (non-future) months of the displayed range.
func (h *Handler) GetByTrade(w http.ResponseWriter, r *http.Request) {
	people, rates, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	now := h.now(r)
	months := calendar.RangeFromAnchor(h.Anchor, now)
	totals := costs.ByTrade(people, rates, months, now)

	dtos := make([]TradeTotalDTO, 0, len(totals))
	for _, t := range totals {
		dtos = append(dtos, TradeTotalDTO{Trade: t.Trade, Total: t.Total})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetMatrix returns the client x trade breakdown for one month.
func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	people, rates, err := h.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	m := costs.GroupByClientAndTrade(costs.ComputeMonth(people, rates, month))
	dto := MatrixDTO{GrandTotal: m.GrandTotal, Buckets: make([]MatrixBucketDTO, 0, len(m.Buckets))}
	for _, b := range m.Buckets {
		dto.Buckets = append(dto.Buckets, MatrixBucketDTO{
			Client:         b.Client,
			Trade:          b.Trade,
			Salary:         b.Salary,
			FixedAllowance: b.FixedAllowance,
			OffshorePay:    b.OffshorePay,
			Relief:         b.Relief,
			Standby:        b.Standby,
			MedevacPay:     b.MedevacPay,
			Total:          b.Total,
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// LoadSeed resets the store and loads the demo dataset.
func (h *Handler) LoadSeed(w http.ResponseWriter, r *http.Request) {
	if err := Seed(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load seed data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

// =============================================================================
// HELPERS
// =============================================================================

// monthParam parses {year}/{month} path segments. Writes the 400 itself
// and returns ok=false on malformed input.
func monthParam(w http.ResponseWriter, r *http.Request) (calendar.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return calendar.Month{}, false
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month (use 1-12)", err)
		return calendar.Month{}, false
	}
	return calendar.Month{Year: year, Month: time.Month(monthNum)}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
