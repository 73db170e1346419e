// Package store defines the persistence boundary for scenario and portfolio
// records, plus an in-memory implementation for tests and development. The
// SQLite-backed implementation lives in store/sqlite.
//
// Records are flat: each one carries its full configuration as schema-
// versioned JSON (see the scenario package), so the store never needs to
// understand the calculation model.
package store

import (
	"context"
	"time"
)

// =============================================================================
// RECORDS
// =============================================================================

// ScenarioRecord persists one scenario as config JSON.
type ScenarioRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EntryRecord persists one portfolio entry as config JSON.
type EntryRecord struct {
	ID         string
	ScenarioID string
	ConfigJSON string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Settings holds organization-level portfolio inputs.
type Settings struct {
	DepartmentAnnualSalary float64
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is the persistence interface the API layer depends on. Get methods
// return (nil, nil) for missing records.
type Store interface {
	SaveScenario(ctx context.Context, rec ScenarioRecord) error
	GetScenario(ctx context.Context, id string) (*ScenarioRecord, error)
	ListScenarios(ctx context.Context) ([]ScenarioRecord, error)
	DeleteScenario(ctx context.Context, id string) error

	SaveEntry(ctx context.Context, rec EntryRecord) error
	GetEntry(ctx context.Context, id string) (*EntryRecord, error)
	ListEntries(ctx context.Context) ([]EntryRecord, error)
	DeleteEntry(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	// Reset clears all records (demo loading, dev only).
	Reset(ctx context.Context) error
}
