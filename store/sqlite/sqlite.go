/*
Package sqlite provides a SQLite-backed implementation of store.Store.

PURPOSE:
  Persists scenario and portfolio-entry records plus organization settings.
  Records carry their configuration as schema-versioned JSON (see the
  scenario package), so the table layout stays flat and stable while the
  calculation model evolves.

KEY TABLES:
  scenarios:          One row per scenario, config JSON column
  portfolio_entries:  One row per entry, config JSON column
  portfolio_settings: Single-row table for department-level inputs

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/roi.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go:  Interface and record definitions
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/roi-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS portfolio_entries (
		id TEXT PRIMARY KEY,
		scenario_id TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_scenario
		ON portfolio_entries(scenario_id);

	-- Single row of organization-level inputs.
	CREATE TABLE IF NOT EXISTS portfolio_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		department_annual_salary REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCENARIOS
// =============================================================================

func (s *Store) SaveScenario(ctx context.Context, rec store.ScenarioRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.ConfigJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

func (s *Store) GetScenario(ctx context.Context, id string) (*store.ScenarioRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, config_json, created_at, updated_at
		FROM scenarios WHERE id = ?`, id)
	rec, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return rec, nil
}

func (s *Store) ListScenarios(ctx context.Context) ([]store.ScenarioRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, config_json, created_at, updated_at
		FROM scenarios ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var recs []store.ScenarioRecord
	for rows.Next() {
		rec, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	return err
}

// =============================================================================
// PORTFOLIO ENTRIES
// =============================================================================

func (s *Store) SaveEntry(ctx context.Context, rec store.EntryRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolio_entries (id, scenario_id, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scenario_id = excluded.scenario_id,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at`,
		rec.ID, rec.ScenarioID, rec.ConfigJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*store.EntryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario_id, config_json, created_at, updated_at
		FROM portfolio_entries WHERE id = ?`, id)
	rec, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return rec, nil
}

func (s *Store) ListEntries(ctx context.Context) ([]store.EntryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario_id, config_json, created_at, updated_at
		FROM portfolio_entries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var recs []store.EntryRecord
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM portfolio_entries WHERE id = ?`, id)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) GetSettings(ctx context.Context) (store.Settings, error) {
	var salary float64
	err := s.db.QueryRowContext(ctx, `
		SELECT department_annual_salary FROM portfolio_settings WHERE id = 1`).Scan(&salary)
	if err == sql.ErrNoRows {
		return store.Settings{}, nil
	}
	if err != nil {
		return store.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return store.Settings{DepartmentAnnualSalary: salary}, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings store.Settings) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolio_settings (id, department_annual_salary, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			department_annual_salary = excluded.department_annual_salary,
			updated_at = excluded.updated_at`,
		settings.DepartmentAnnualSalary, now)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// =============================================================================
// RESET
// =============================================================================

// Reset clears all tables. Dev/demo only.
func (s *Store) Reset(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM portfolio_entries`,
		`DELETE FROM scenarios`,
		`DELETE FROM portfolio_settings`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
	}
	return nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type scannable interface {
	Scan(dest ...any) error
}

func scanScenario(row scannable) (*store.ScenarioRecord, error) {
	var rec store.ScenarioRecord
	var createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

func scanEntry(row scannable) (*store.EntryRecord, error) {
	var rec store.EntryRecord
	var createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.ScenarioID, &rec.ConfigJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}
