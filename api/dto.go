/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned to the presentation layer. These
  decouple the internal domain model from the external contract: the
  frontend renders whatever aggregated structures these carry, and the
  core stays free of presentation concerns (currency formatting, colors,
  chart config).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  decimal.Decimal fields marshal as quoted strings, preserving exact
  values across the wire. Formatting is the frontend's job.

SEE ALSO:
  - handlers.go: Builds these from engine output
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/costs"
	"github.com/meridian/roster-engine/roster"
	"github.com/meridian/roster-engine/schedule"
)

// =============================================================================
// ROSTER
// =============================================================================

// RosterRowDTO is one entry of the grouped roster listing: either a
// group boundary or a person.
type RosterRowDTO struct {
	Boundary bool       `json:"boundary"`
	Label    string     `json:"label,omitempty"`
	Person   *PersonDTO `json:"person,omitempty"`
}

type PersonDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Post      string     `json:"post"`
	Trade     string     `json:"trade"`
	Client    string     `json:"client"`
	Location  string     `json:"location,omitempty"`
	Secondary bool       `json:"secondary"`
	Cycles    []CycleDTO `json:"cycles"`
}

type CycleDTO struct {
	SignOn       string          `json:"sign_on"`
	SignOff      string          `json:"sign_off"`
	Offshore     bool            `json:"offshore"`
	Relief       decimal.Decimal `json:"relief_amount"`
	Standby      decimal.Decimal `json:"standby_amount"`
	MedevacDates []string        `json:"medevac_dates,omitempty"`
}

func personDTO(p *roster.Person) *PersonDTO {
	dto := &PersonDTO{
		ID:        p.ID,
		Name:      p.Name,
		Post:      p.Post,
		Trade:     roster.ShortTrade(p.Post),
		Client:    p.Client,
		Location:  p.Location,
		Secondary: p.Secondary,
		Cycles:    make([]CycleDTO, 0, len(p.Cycles)),
	}
	for _, c := range p.Cycles {
		cd := CycleDTO{
			SignOn:   c.SignOn.String(),
			SignOff:  c.SignOff.String(),
			Offshore: c.Offshore,
			Relief:   c.ReliefAmount,
			Standby:  c.StandbyAmount,
		}
		for _, md := range c.MedevacDates {
			cd.MedevacDates = append(cd.MedevacDates, md.String())
		}
		dto.Cycles = append(dto.Cycles, cd)
	}
	return dto
}

// =============================================================================
// COSTS
// =============================================================================

type CostRecordDTO struct {
	PersonID       string          `json:"person_id"`
	Name           string          `json:"name"`
	Client         string          `json:"client"`
	Trade          string          `json:"trade"`
	TotalDays      int             `json:"total_days"`
	OffshoreDays   int             `json:"offshore_days"`
	MedevacCount   int             `json:"medevac_count"`
	Salary         decimal.Decimal `json:"salary"`
	FixedAllowance decimal.Decimal `json:"fixed_allowance"`
	OffshorePay    decimal.Decimal `json:"offshore_pay"`
	Relief         decimal.Decimal `json:"relief"`
	Standby        decimal.Decimal `json:"standby"`
	MedevacPay     decimal.Decimal `json:"medevac_pay"`
	Total          decimal.Decimal `json:"total"`
}

func costRecordDTO(r costs.Record) CostRecordDTO {
	return CostRecordDTO{
		PersonID:       r.PersonID,
		Name:           r.Name,
		Client:         r.Client,
		Trade:          r.Trade,
		TotalDays:      r.TotalDays,
		OffshoreDays:   r.OffshoreDays,
		MedevacCount:   r.MedevacCount,
		Salary:         r.Salary,
		FixedAllowance: r.FixedAllowance,
		OffshorePay:    r.OffshorePay,
		Relief:         r.Relief,
		Standby:        r.Standby,
		MedevacPay:     r.MedevacPay,
		Total:          r.Total,
	}
}

type TrendEntryDTO struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Total      decimal.Decimal `json:"total"`
	Salary     decimal.Decimal `json:"salary"`
	Allowances decimal.Decimal `json:"allowances"`
	Estimated  bool            `json:"estimated"`
}

type ClientTotalDTO struct {
	Client string          `json:"client"`
	Total  decimal.Decimal `json:"total"`
}

type TradeTotalDTO struct {
	Trade string          `json:"trade"`
	Total decimal.Decimal `json:"total"`
}

type MatrixDTO struct {
	Buckets    []MatrixBucketDTO `json:"buckets"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
}

type MatrixBucketDTO struct {
	Client         string          `json:"client"`
	Trade          string          `json:"trade"`
	Salary         decimal.Decimal `json:"salary"`
	FixedAllowance decimal.Decimal `json:"fixed_allowance"`
	OffshorePay    decimal.Decimal `json:"offshore_pay"`
	Relief         decimal.Decimal `json:"relief"`
	Standby        decimal.Decimal `json:"standby"`
	MedevacPay     decimal.Decimal `json:"medevac_pay"`
	Total          decimal.Decimal `json:"total"`
}

// =============================================================================
// CALENDAR
// =============================================================================

type CalendarDTO struct {
	PersonID string    `json:"person_id"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Cells    []CellDTO `json:"cells"`
}

type CellDTO struct {
	Day          int    `json:"day"`
	Status       string `json:"status"`
	ConnectsPrev bool   `json:"connects_prev"`
	ConnectsNext bool   `json:"connects_next"`
}

func cellDTOs(cells []schedule.Cell) []CellDTO {
	out := make([]CellDTO, len(cells))
	for i, c := range cells {
		out[i] = CellDTO{
			Day:          c.Day,
			Status:       string(c.Status),
			ConnectsPrev: c.ConnectsPrev,
			ConnectsNext: c.ConnectsNext,
		}
	}
	return out
}
