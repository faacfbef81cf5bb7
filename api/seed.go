package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/roster"
	"github.com/meridian/roster-engine/store/sqlite"
)

// Seed resets the store and loads a small demo crew: rotation medics on
// both anchor clients, an escort medic with a medevac event, an office
// OHN, and one person missing from the pay master.
func Seed(ctx context.Context, store *sqlite.Store) error {
	if err := store.Reset(ctx); err != nil {
		return err
	}

	people := roster.NormalizeAll([]roster.RawPerson{
		{
			ID: "p-001", Name: "Abebi Okonkwo", Post: "OFFSHORE MEDIC",
			Client: "Petromar", Location: "Rig Alpha",
			Cycles: []roster.RawCycle{
				{SignOn: "2025-08-20", SignOff: "2025-09-16", ReliefAmount: decimal.NewFromInt(150)},
				{SignOn: "2025-10-15", SignOff: "2025-11-11"},
			},
		},
		{
			ID: "p-002", Name: "Chidi Eze", Post: "OFFSHORE MEDIC / ESCORT MEDIC",
			Client: "Petromar", Location: "Rig Alpha",
			Cycles: []roster.RawCycle{
				{
					SignOn: "2025-09-01", SignOff: "2025-09-28",
					MedevacDates: []any{"2025-09-12"},
				},
			},
		},
		{
			ID: "p-003", Name: "Bolanle Adeyemi", Post: "OFFSHORE MEDIC",
			Client: "Deepwater Horizons", Location: "Rig Bravo", Secondary: true,
			Cycles: []roster.RawCycle{
				{SignOn: "2025-09-10", SignOff: "2025-10-07", StandbyAmount: decimal.NewFromInt(90)},
			},
		},
		{
			ID: "p-004", Name: "Zara Mensah", Post: "OHN",
			Client: "Petromar", Location: "Shore Base",
			Cycles: []roster.RawCycle{
				{SignOn: "2025-01-01", SignOff: "2025-12-31"},
			},
		},
		{
			// Not in the pay master: aggregates with zero salary-side pay.
			ID: "p-005", Name: "Kwame Asante", Post: "Clinic Medic",
			Client: "Northgate Energy", Location: "Shore Clinic",
			Cycles: []roster.RawCycle{
				{SignOn: "2025-09-15", SignOff: "2025-09-29", ReliefAmount: decimal.NewFromInt(75)},
			},
		},
	})
	for _, p := range people {
		if err := store.SavePerson(ctx, p); err != nil {
			return err
		}
	}

	rates := []roster.RateRecord{
		{ID: "Abebi Okonkwo", Salary: decimal.NewFromInt(3000), FixedAllowance: decimal.NewFromInt(200), OffshoreRate: decimal.NewFromInt(50)},
		{ID: "Chidi Eze", Salary: decimal.NewFromInt(3200), FixedAllowance: decimal.NewFromInt(200), OffshoreRate: decimal.NewFromInt(55), MedevacRate: decimal.NewFromInt(500)},
		{ID: "Bolanle Adeyemi", Salary: decimal.NewFromInt(2900), OffshoreRate: decimal.NewFromInt(45)},
		{ID: "Zara Mensah", Salary: decimal.NewFromInt(2600), FixedAllowance: decimal.NewFromInt(100)},
	}
	for _, r := range rates {
		if err := store.SaveRate(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
