package roster_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/roster"
)

// =============================================================================
// NORMALIZATION TESTS
// =============================================================================

func TestNormalize_ModernShape(t *testing.T) {
	raw := roster.RawPerson{
		ID:     "p-1",
		Name:   "  Amadi Okafor  ",
		Post:   "OFFSHORE MEDIC",
		Client: "Petromar",
		Cycles: []roster.RawCycle{
			{SignOn: "2025-09-20", SignOff: "2025-10-05"},
		},
	}

	p := roster.Normalize(raw)

	if p.Name != "Amadi Okafor" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
	if len(p.Cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(p.Cycles))
	}
	c := p.Cycles[0]
	if !c.SignOn.Equal(calendar.NewDate(2025, time.September, 20)) {
		t.Errorf("unexpected sign-on %s", c.SignOn)
	}
	if !c.Offshore {
		t.Error("offshore should default to true when absent")
	}
	if !p.Roles.OffshoreMedic {
		t.Error("expected offshore medic flag")
	}
}

func TestNormalize_ExplicitOffshoreFalse(t *testing.T) {
	onshore := false
	raw := roster.RawPerson{
		Name: "A",
		Cycles: []roster.RawCycle{
			{SignOn: "2025-01-01", SignOff: "2025-01-10", Offshore: &onshore},
		},
	}
	p := roster.Normalize(raw)
	if p.Cycles[0].Offshore {
		t.Error("explicit false must survive normalization")
	}
}

func TestNormalize_DropsUnparseableAndReversedCycles(t *testing.T) {
	raw := roster.RawPerson{
		Name: "A",
		Cycles: []roster.RawCycle{
			{SignOn: "garbage", SignOff: "2025-01-10"},
			{SignOn: "2025-01-10", SignOff: ""},
			{SignOn: "2025-01-20", SignOff: "2025-01-10"}, // reversed
			{SignOn: "2025-02-01", SignOff: "2025-02-14"}, // good
		},
	}

	p := roster.Normalize(raw)

	if len(p.Cycles) != 1 {
		t.Fatalf("expected only the well-formed cycle to survive, got %d", len(p.Cycles))
	}
	if !p.Cycles[0].SignOn.Equal(calendar.NewDate(2025, time.February, 1)) {
		t.Errorf("unexpected surviving cycle %s", p.Cycles[0].SignOn)
	}
}

func TestNormalize_LegacyFixedSlots(t *testing.T) {
	// GIVEN: the legacy export shape with m/d slot pairs, sparse and unordered
	// WHEN: normalizing
	// THEN: every valid pair becomes one cycle, invalid slots are skipped

	raw := roster.RawPerson{
		Name: "Legacy",
		Slots: map[string]any{
			"m1":  "2025-01-05",
			"d1":  "2025-01-20",
			"m2":  "not a date",
			"d2":  "2025-02-10",
			"m3":  "2025-03-01",
			"d3":  "2025-03-15",
			"m24": "2025-12-01",
			"d24": "2025-12-20",
		},
	}

	p := roster.Normalize(raw)

	if len(p.Cycles) != 3 {
		t.Fatalf("expected 3 cycles from legacy slots, got %d", len(p.Cycles))
	}
	for _, c := range p.Cycles {
		if !c.Offshore {
			t.Error("legacy cycles default to offshore")
		}
	}
}

func TestNormalize_MedevacDatesParsedLeniently(t *testing.T) {
	raw := roster.RawPerson{
		Name: "A",
		Cycles: []roster.RawCycle{{
			SignOn:       "2025-01-01",
			SignOff:      "2025-01-20",
			MedevacDates: []any{"2025-01-05", "bad", time.Date(2025, time.January, 12, 8, 0, 0, 0, time.UTC)},
		}},
	}
	p := roster.Normalize(raw)
	if got := len(p.Cycles[0].MedevacDates); got != 2 {
		t.Errorf("expected 2 parseable medevac dates, got %d", got)
	}
}

// =============================================================================
// ROLE CLASSIFICATION TESTS
// =============================================================================

func TestClassifyPost(t *testing.T) {
	cases := []struct {
		post string
		want roster.RoleFlags
	}{
		{"OFFSHORE MEDIC", roster.RoleFlags{OffshoreMedic: true}},
		{"Senior offshore medic", roster.RoleFlags{OffshoreMedic: true}},
		{"ESCORT MEDIC", roster.RoleFlags{EscortMedic: true}},
		{"OFFSHORE MEDIC / ESCORT MEDIC", roster.RoleFlags{OffshoreMedic: true, EscortMedic: true}},
		{"OHN", roster.RoleFlags{Office: true}},
		{"IM Coordinator", roster.RoleFlags{Office: true}},
		{"Clinic Medic", roster.RoleFlags{}},
	}

	for _, c := range cases {
		if got := roster.ClassifyPost(c.post); got != c.want {
			t.Errorf("%q: expected %+v, got %+v", c.post, c.want, got)
		}
	}
}

func TestShortTrade(t *testing.T) {
	cases := []struct {
		post string
		want string
	}{
		{"Senior OFFSHORE MEDIC (rotational)", "Offshore Medic"},
		{"escort medic", "Escort Medic"},
		{"OHN - Day Shift", "OHN"},
		{"Rig Welder", "Rig Welder"}, // unknown trades keep their label
		{"", "Unknown"},
	}
	for _, c := range cases {
		if got := roster.ShortTrade(c.post); got != c.want {
			t.Errorf("%q: expected %q, got %q", c.post, c.want, got)
		}
	}
}

func TestTradeRank_UnknownSortsLast(t *testing.T) {
	if roster.TradeRank("Offshore Medic") >= roster.TradeRank("Rig Welder") {
		t.Error("known trade should rank before unknown trade")
	}
}

// =============================================================================
// RATE INDEX TESTS
// =============================================================================

func TestBuildRateIndex_NormalizesKeys(t *testing.T) {
	idx := roster.BuildRateIndex([]roster.RateRecord{
		{ID: "  amadi okafor ", Salary: decimal.NewFromInt(3000)},
	})

	got := idx.Resolve("AMADI OKAFOR")
	if !got.Salary.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected case-insensitive trimmed join, got salary %v", got.Salary)
	}
}

func TestBuildRateIndex_LastWriteWins(t *testing.T) {
	// Duplicate identifiers in the pay master resolve to the later
	// record. Accepted behavior, not a defect.
	idx := roster.BuildRateIndex([]roster.RateRecord{
		{ID: "A", Salary: decimal.NewFromInt(100)},
		{ID: "a ", Salary: decimal.NewFromInt(200)},
	})

	if got := idx.Resolve("A").Salary; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected last write to win, got %v", got)
	}
}

func TestResolve_MissingYieldsZeroRecord(t *testing.T) {
	idx := roster.BuildRateIndex(nil)
	got := idx.Resolve("nobody")
	if !got.Salary.IsZero() || !got.OffshoreRate.IsZero() || !got.MedevacRate.IsZero() {
		t.Errorf("expected all-zero record, got %+v", got)
	}
}

// =============================================================================
// SORTING / GROUPING TESTS
// =============================================================================

func person(name, post, client, location string) roster.Person {
	return roster.Normalize(roster.RawPerson{Name: name, Post: post, Client: client, Location: location})
}

func TestSortRoster_ClientThenTradeThenLocationThenName(t *testing.T) {
	people := []roster.Person{
		person("Zara", "OHN", "Other Oil Co", "Base"),
		person("Amadi", "OFFSHORE MEDIC", roster.ClientSecondary, "Rig B"),
		person("Bolanle", "OFFSHORE MEDIC", roster.ClientPrimary, "Rig A"),
		person("Chidi", "ESCORT MEDIC", roster.ClientPrimary, "Rig A"),
		person("Abebi", "OFFSHORE MEDIC", roster.ClientPrimary, "Rig A"),
	}

	sorted := roster.SortRoster(people)

	wantNames := []string{"Abebi", "Bolanle", "Chidi", "Amadi", "Zara"}
	for i, w := range wantNames {
		if sorted[i].Name != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, sorted[i].Name)
		}
	}
}

func TestGroupRoster_BoundaryOnCompositeKeyChange(t *testing.T) {
	people := []roster.Person{
		person("A", "OFFSHORE MEDIC", roster.ClientPrimary, "Rig A"),
		person("B", "OFFSHORE MEDIC", roster.ClientPrimary, "Rig A"),
		person("C", "OFFSHORE MEDIC", roster.ClientPrimary, "Rig B"), // location change
		person("D", "ESCORT MEDIC", roster.ClientPrimary, "Rig B"),   // trade change
	}

	rows := roster.GroupRoster(people)

	var boundaries, records int
	for _, r := range rows {
		if r.Boundary {
			boundaries++
			if r.Person != nil {
				t.Error("boundary row must not carry a person")
			}
		} else {
			records++
			if r.Person == nil {
				t.Error("record row must carry a person")
			}
		}
	}
	if boundaries != 3 {
		t.Errorf("expected 3 group boundaries, got %d", boundaries)
	}
	if records != 4 {
		t.Errorf("expected 4 person rows, got %d", records)
	}

	// First row is always a boundary.
	if !rows[0].Boundary {
		t.Error("grouped roster must open with a boundary marker")
	}
}

func TestGroupRoster_UnknownClientBucket(t *testing.T) {
	rows := roster.GroupRoster([]roster.Person{person("A", "OFFSHORE MEDIC", "", "")})
	if len(rows) == 0 || !rows[0].Boundary {
		t.Fatal("expected a leading boundary")
	}
	if rows[0].Label != "Unknown / Offshore Medic" {
		t.Errorf("expected Unknown client bucket, got %q", rows[0].Label)
	}
}
