/*
Package sqlite provides SQLite-backed persistence for roster and rate
records.

PURPOSE:
  Implements the data-access layer the engines treat as an external
  collaborator: it loads fully-normalized people (with their rotation
  cycles) and pay-master rate records into memory before any engine
  runs. The engines themselves never touch the database.

KEY TABLES:
  people:  Roster members with role-relevant labels
  cycles:  Rotation intervals, one row per cycle, FK to people
  rates:   Pay-master records keyed by normalized identifier

STORAGE CONVENTIONS:
  - Dates as TEXT in ISO form (2006-01-02)
  - Currency as TEXT holding the decimal's exact string form; parsing
    back tolerates malformed values by degrading to zero
  - Medevac dates as a JSON array of ISO strings on the cycle row

WAL MODE:
  SQLite is opened with WAL so the HTTP read path doesn't block on the
  occasional seed/import write.

USAGE:
  store, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  people, err := store.ListPeople(ctx)

SEE ALSO:
  - roster: The canonical record shapes persisted here
  - api: Loads from this store per request
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/meridian/roster-engine/calendar"
	"github.com/meridian/roster-engine/roster"
)

// Store persists roster and rate records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) a SQLite store at the given path. Use
// ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		post TEXT NOT NULL DEFAULT '',
		client TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		secondary INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS cycles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		sign_on TEXT NOT NULL,
		sign_off TEXT NOT NULL,
		offshore INTEGER NOT NULL DEFAULT 1,
		relief_amount TEXT NOT NULL DEFAULT '0',
		standby_amount TEXT NOT NULL DEFAULT '0',
		medevac_dates_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_cycles_person ON cycles(person_id);
	CREATE INDEX IF NOT EXISTS idx_cycles_sign_on ON cycles(sign_on);

	CREATE TABLE IF NOT EXISTS rates (
		id TEXT PRIMARY KEY,
		salary TEXT NOT NULL DEFAULT '0',
		fixed_allowance TEXT NOT NULL DEFAULT '0',
		offshore_rate TEXT NOT NULL DEFAULT '0',
		medevac_rate TEXT NOT NULL DEFAULT '0'
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PEOPLE
// =============================================================================

// SavePerson upserts a person and replaces their cycles.
func (s *Store) SavePerson(ctx context.Context, p roster.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO people (id, name, post, client, location, secondary)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			post = excluded.post,
			client = excluded.client,
			location = excluded.location,
			secondary = excluded.secondary`,
		p.ID, p.Name, p.Post, p.Client, p.Location, boolToInt(p.Secondary))
	if err != nil {
		return fmt.Errorf("failed to save person %s: %w", p.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cycles WHERE person_id = ?`, p.ID); err != nil {
		return err
	}
	for _, c := range p.Cycles {
		medevac, err := json.Marshal(dateStrings(c.MedevacDates))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cycles (person_id, sign_on, sign_off, offshore, relief_amount, standby_amount, medevac_dates_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, c.SignOn.String(), c.SignOff.String(), boolToInt(c.Offshore),
			c.ReliefAmount.String(), c.StandbyAmount.String(), string(medevac))
		if err != nil {
			return fmt.Errorf("failed to save cycle for %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// ListPeople loads the full roster with cycles attached.
func (s *Store) ListPeople(ctx context.Context) ([]roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, post, client, location, secondary
		FROM people ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []roster.Person
	index := make(map[string]int)
	for rows.Next() {
		var p roster.Person
		var secondary int
		if err := rows.Scan(&p.ID, &p.Name, &p.Post, &p.Client, &p.Location, &secondary); err != nil {
			return nil, err
		}
		p.Secondary = secondary != 0
		p.Roles = roster.ClassifyPost(p.Post)
		index[p.ID] = len(people)
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cycleRows, err := s.db.QueryContext(ctx, `
		SELECT person_id, sign_on, sign_off, offshore, relief_amount, standby_amount, medevac_dates_json
		FROM cycles ORDER BY person_id, sign_on`)
	if err != nil {
		return nil, err
	}
	defer cycleRows.Close()

	for cycleRows.Next() {
		var (
			personID, signOn, signOff, relief, standby, medevacJSON string
			offshore                                                int
		)
		if err := cycleRows.Scan(&personID, &signOn, &signOff, &offshore, &relief, &standby, &medevacJSON); err != nil {
			return nil, err
		}
		i, ok := index[personID]
		if !ok {
			continue
		}
		c, ok := scanCycle(signOn, signOff, offshore, relief, standby, medevacJSON)
		if !ok {
			continue // malformed row: skip the cycle, keep the person
		}
		people[i].Cycles = append(people[i].Cycles, c)
	}
	return people, cycleRows.Err()
}

func scanCycle(signOn, signOff string, offshore int, relief, standby, medevacJSON string) (roster.Cycle, bool) {
	on, ok := calendar.ParseLenient(signOn)
	if !ok {
		return roster.Cycle{}, false
	}
	off, ok := calendar.ParseLenient(signOff)
	if !ok {
		return roster.Cycle{}, false
	}

	c := roster.Cycle{
		SignOn:        on,
		SignOff:       off,
		Offshore:      offshore != 0,
		ReliefAmount:  parseDecimal(relief),
		StandbyAmount: parseDecimal(standby),
	}

	var dates []string
	if err := json.Unmarshal([]byte(medevacJSON), &dates); err == nil {
		for _, d := range dates {
			if md, ok := calendar.ParseLenient(d); ok {
				c.MedevacDates = append(c.MedevacDates, md)
			}
		}
	}
	return c, true
}

// =============================================================================
// RATES
// =============================================================================

// SaveRate upserts a pay-master record, keyed by normalized identifier.
func (s *Store) SaveRate(ctx context.Context, r roster.RateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rates (id, salary, fixed_allowance, offshore_rate, medevac_rate)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			salary = excluded.salary,
			fixed_allowance = excluded.fixed_allowance,
			offshore_rate = excluded.offshore_rate,
			medevac_rate = excluded.medevac_rate`,
		roster.NormalizeID(r.ID), r.Salary.String(), r.FixedAllowance.String(),
		r.OffshoreRate.String(), r.MedevacRate.String())
	if err != nil {
		return fmt.Errorf("failed to save rate %s: %w", r.ID, err)
	}
	return nil
}

// ListRates loads all pay-master records.
func (s *Store) ListRates(ctx context.Context) ([]roster.RateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, salary, fixed_allowance, offshore_rate, medevac_rate
		FROM rates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []roster.RateRecord
	for rows.Next() {
		var id, salary, fixed, offshoreRate, medevacRate string
		if err := rows.Scan(&id, &salary, &fixed, &offshoreRate, &medevacRate); err != nil {
			return nil, err
		}
		records = append(records, roster.RateRecord{
			ID:             id,
			Salary:         parseDecimal(salary),
			FixedAllowance: parseDecimal(fixed),
			OffshoreRate:   parseDecimal(offshoreRate),
			MedevacRate:    parseDecimal(medevacRate),
		})
	}
	return records, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears all tables. Used by the seed loader and tests.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"cycles", "people", "rates"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseDecimal degrades malformed stored values to zero rather than
// failing the whole load.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func dateStrings(dates []calendar.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
