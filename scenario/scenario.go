/*
Package scenario provides JSON to Go scenario conversion and schema migration.

PURPOSE:
  Converts flat JSON scenario and portfolio-entry records into the canonical
  core types (roi.ScenarioInputs, portfolio.Entry) and back. Persisted files
  are round-tripped through this schema across versions, so field names here
  are frozen - including historical ones like "threeYearNetSavings" and the
  camelCase casing of the original file format.

SCHEMA VERSIONS:
  1  Legacy hours-based baseline: savings described as baselineHoursPerUnit /
     hoursSavedPerUnit priced at hourlyRate.
  2  Current: tagged savings mode ("direct" | "time-based").

  MigrateScenario maps every older variant onto the current shape with a pure
  function; the core only ever operates on the canonical types. The v1
  mapping preserves the derived savings rate exactly: a crew of one whose
  current time is the baseline hours and whose proposed time is baseline
  minus saved hours yields laborSavings == hoursSaved × hourlyRate.

JSON SCHEMA (current):
  {
    "schemaVersion": 2,
    "id": "scn-...", "name": "Weld cell", "color": "#4f8ef7",
    "savings": {
      "mode": "time-based",
      "unitName": "part", "referenceUnits": 100,
      "currentCrewSize": 2, "proposedCrewSize": 1,
      "currentTimePerUnit": 30, "proposedTimePerUnit": 12,
      "hourlyRate": 55,
      "additionalSavingsPerUnit": 0,
      "utilizationPercent": 1, "adoptionRampMonths": 6
    },
    "investment": { "assemblyCost": 12000, ... , "toolLifespanMonths": 24 },
    "qualitativeFlags": { "safetyCritical": false, ... },
    "costBreakdownLocked": false
  }

SEE ALSO:
  - roi/savings.go:    The canonical tagged savings variant
  - store/:            Persists these records as config JSON
  - api/dto.go:        Reuses these types at the HTTP boundary
*/
package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/portfolio"
	"github.com/warp/roi-engine/roi"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

const (
	SchemaVersionHoursBased = 1
	SchemaVersionCurrent    = 2
)

// ScenarioJSON is the persisted representation of a scenario.
type ScenarioJSON struct {
	SchemaVersion int    `json:"schemaVersion"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color,omitempty"`

	Savings             SavingsJSON    `json:"savings"`
	Investment          InvestmentJSON `json:"investment"`
	Flags               FlagsJSON      `json:"qualitativeFlags"`
	CostBreakdownLocked bool           `json:"costBreakdownLocked,omitempty"`
}

// SavingsJSON carries both savings modes plus the legacy v1 fields.
type SavingsJSON struct {
	Mode           string `json:"mode"`
	UnitName       string `json:"unitName,omitempty"`
	ReferenceUnits int    `json:"referenceUnits"`

	// direct mode
	DirectSavingsPerUnit float64 `json:"directSavingsPerUnit,omitempty"`

	// time-based mode
	CurrentCrewSize     float64 `json:"currentCrewSize,omitempty"`
	ProposedCrewSize    float64 `json:"proposedCrewSize,omitempty"`
	CurrentTimePerUnit  float64 `json:"currentTimePerUnit,omitempty"` // minutes
	ProposedTimePerUnit float64 `json:"proposedTimePerUnit,omitempty"`
	HourlyRate          float64 `json:"hourlyRate,omitempty"`

	AdditionalSavingsPerUnit float64 `json:"additionalSavingsPerUnit,omitempty"`
	UtilizationPercent       float64 `json:"utilizationPercent"`
	AdoptionRampMonths       int     `json:"adoptionRampMonths"`

	// Legacy hours-based baseline (schemaVersion 1 only).
	BaselineHoursPerUnit float64 `json:"baselineHoursPerUnit,omitempty"`
	HoursSavedPerUnit    float64 `json:"hoursSavedPerUnit,omitempty"`
}

type InvestmentJSON struct {
	AssemblyCost         float64 `json:"assemblyCost,omitempty"`
	DesignCost           float64 `json:"designCost,omitempty"`
	ControlsCost         float64 `json:"controlsCost,omitempty"`
	MonthlyRecurringCost float64 `json:"monthlyRecurringCost,omitempty"`
	TrainingCost         float64 `json:"trainingCost,omitempty"`
	DeploymentCost       float64 `json:"deploymentCost,omitempty"`
	ToolLifespanMonths   int     `json:"toolLifespanMonths,omitempty"`
}

type FlagsJSON struct {
	SafetyCritical     bool `json:"safetyCritical,omitempty"`
	QualityCritical    bool `json:"qualityCritical,omitempty"`
	OperationsCritical bool `json:"operationsCritical,omitempty"`
}

// EntryJSON is the persisted representation of a portfolio entry.
type EntryJSON struct {
	ID         string `json:"id"`
	ScenarioID string `json:"scenarioId"`

	ActualUnits           int    `json:"actualUnits"`
	ToolCount             int    `json:"toolCount"`
	ExcludeDesignControls bool   `json:"excludeDesignControls,omitempty"`
	ExcludeTraining       bool   `json:"excludeTraining,omitempty"`
	StartMonth            string `json:"startMonth"`
	EndMonth              string `json:"endMonth"`
	AnalysisPeriod        int    `json:"analysisPeriod"`
	Hidden                bool   `json:"hidden,omitempty"`

	// BaselineSavings snapshots the scenario's savings block at the time the
	// entry was created; empty mode means "use the scenario's current block".
	BaselineSavings SavingsJSON `json:"baselineSavings,omitempty"`
}

// =============================================================================
// MIGRATION - Older schema variants onto the current shape
// =============================================================================

// MigrateScenario maps any supported schema version onto the current one.
// Pure: the input record is not modified.
func MigrateScenario(sj ScenarioJSON) ScenarioJSON {
	switch sj.SchemaVersion {
	case 0, SchemaVersionHoursBased:
		sj.Savings = migrateHoursBasedSavings(sj.Savings)
		sj.SchemaVersion = SchemaVersionCurrent
	}
	return sj
}

// migrateHoursBasedSavings rewrites a v1 hours-based baseline as a canonical
// time-based model with a crew of one, preserving the derived rate:
// current = baseline hours, proposed = baseline - saved hours.
func migrateHoursBasedSavings(s SavingsJSON) SavingsJSON {
	if s.Mode != "" || s.BaselineHoursPerUnit == 0 {
		// Already tagged (or nothing to migrate): leave as-is, defaulting
		// an untagged record to direct mode.
		if s.Mode == "" {
			s.Mode = string(roi.SavingsDirect)
		}
		return s
	}

	proposedHours := s.BaselineHoursPerUnit - s.HoursSavedPerUnit
	if proposedHours < 0 {
		proposedHours = 0
	}

	s.Mode = string(roi.SavingsTimeBased)
	s.CurrentCrewSize = 1
	s.ProposedCrewSize = 1
	s.CurrentTimePerUnit = s.BaselineHoursPerUnit * 60
	s.ProposedTimePerUnit = proposedHours * 60
	s.BaselineHoursPerUnit = 0
	s.HoursSavedPerUnit = 0
	return s
}

// =============================================================================
// JSON <-> CANONICAL CONVERSION
// =============================================================================

// ParseScenario decodes, migrates, and converts a persisted scenario record.
func ParseScenario(data []byte) (roi.ScenarioInputs, error) {
	var sj ScenarioJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return roi.ScenarioInputs{}, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	return FromJSON(MigrateScenario(sj))
}

// EncodeScenario serializes a scenario in the current schema.
func EncodeScenario(in roi.ScenarioInputs) ([]byte, error) {
	return json.Marshal(ToJSON(in))
}

// FromJSON converts a current-schema record to canonical inputs.
func FromJSON(sj ScenarioJSON) (roi.ScenarioInputs, error) {
	savings, err := savingsFromJSON(sj.Savings)
	if err != nil {
		return roi.ScenarioInputs{}, err
	}
	return roi.ScenarioInputs{
		ID:      roi.ScenarioID(sj.ID),
		Name:    sj.Name,
		Color:   sj.Color,
		Savings: savings,
		Investment: roi.InvestmentInputs{
			AssemblyCost:         decimal.NewFromFloat(sj.Investment.AssemblyCost),
			DesignCost:           decimal.NewFromFloat(sj.Investment.DesignCost),
			ControlsCost:         decimal.NewFromFloat(sj.Investment.ControlsCost),
			MonthlyRecurringCost: decimal.NewFromFloat(sj.Investment.MonthlyRecurringCost),
			TrainingCost:         decimal.NewFromFloat(sj.Investment.TrainingCost),
			DeploymentCost:       decimal.NewFromFloat(sj.Investment.DeploymentCost),
			ToolLifespanMonths:   sj.Investment.ToolLifespanMonths,
		},
		Flags: roi.QualitativeFlags{
			SafetyCritical:     sj.Flags.SafetyCritical,
			QualityCritical:    sj.Flags.QualityCritical,
			OperationsCritical: sj.Flags.OperationsCritical,
		},
		CostBreakdownLocked: sj.CostBreakdownLocked,
	}, nil
}

func savingsFromJSON(s SavingsJSON) (roi.SavingsInputs, error) {
	var model roi.SavingsModel
	switch s.Mode {
	case string(roi.SavingsDirect), "":
		model = roi.DirectSavings{RatePerUnit: decimal.NewFromFloat(s.DirectSavingsPerUnit)}
	case string(roi.SavingsTimeBased):
		model = roi.TimeBasedSavings{
			CurrentCrewSize:        decimal.NewFromFloat(s.CurrentCrewSize),
			ProposedCrewSize:       decimal.NewFromFloat(s.ProposedCrewSize),
			CurrentMinutesPerUnit:  decimal.NewFromFloat(s.CurrentTimePerUnit),
			ProposedMinutesPerUnit: decimal.NewFromFloat(s.ProposedTimePerUnit),
			HourlyRate:             decimal.NewFromFloat(s.HourlyRate),
		}
	default:
		return roi.SavingsInputs{}, fmt.Errorf("unknown savings mode %q", s.Mode)
	}

	return roi.SavingsInputs{
		Model:                    model,
		UnitName:                 s.UnitName,
		ReferenceUnits:           s.ReferenceUnits,
		AdditionalSavingsPerUnit: decimal.NewFromFloat(s.AdditionalSavingsPerUnit),
		UtilizationPercent:       s.UtilizationPercent,
		AdoptionRampMonths:       s.AdoptionRampMonths,
	}, nil
}

// ToJSON converts canonical inputs to the current schema.
func ToJSON(in roi.ScenarioInputs) ScenarioJSON {
	return ScenarioJSON{
		SchemaVersion: SchemaVersionCurrent,
		ID:            string(in.ID),
		Name:          in.Name,
		Color:         in.Color,
		Savings:       savingsToJSON(in.Savings),
		Investment: InvestmentJSON{
			AssemblyCost:         in.Investment.AssemblyCost.InexactFloat64(),
			DesignCost:           in.Investment.DesignCost.InexactFloat64(),
			ControlsCost:         in.Investment.ControlsCost.InexactFloat64(),
			MonthlyRecurringCost: in.Investment.MonthlyRecurringCost.InexactFloat64(),
			TrainingCost:         in.Investment.TrainingCost.InexactFloat64(),
			DeploymentCost:       in.Investment.DeploymentCost.InexactFloat64(),
			ToolLifespanMonths:   in.Investment.ToolLifespanMonths,
		},
		Flags: FlagsJSON{
			SafetyCritical:     in.Flags.SafetyCritical,
			QualityCritical:    in.Flags.QualityCritical,
			OperationsCritical: in.Flags.OperationsCritical,
		},
		CostBreakdownLocked: in.CostBreakdownLocked,
	}
}

func savingsToJSON(s roi.SavingsInputs) SavingsJSON {
	sj := SavingsJSON{
		UnitName:                 s.UnitName,
		ReferenceUnits:           s.ReferenceUnits,
		AdditionalSavingsPerUnit: s.AdditionalSavingsPerUnit.InexactFloat64(),
		UtilizationPercent:       s.UtilizationPercent,
		AdoptionRampMonths:       s.AdoptionRampMonths,
	}
	switch m := s.Model.(type) {
	case roi.TimeBasedSavings:
		sj.Mode = string(roi.SavingsTimeBased)
		sj.CurrentCrewSize = m.CurrentCrewSize.InexactFloat64()
		sj.ProposedCrewSize = m.ProposedCrewSize.InexactFloat64()
		sj.CurrentTimePerUnit = m.CurrentMinutesPerUnit.InexactFloat64()
		sj.ProposedTimePerUnit = m.ProposedMinutesPerUnit.InexactFloat64()
		sj.HourlyRate = m.HourlyRate.InexactFloat64()
	case roi.DirectSavings:
		sj.Mode = string(roi.SavingsDirect)
		sj.DirectSavingsPerUnit = m.RatePerUnit.InexactFloat64()
	default:
		sj.Mode = string(roi.SavingsDirect)
	}
	return sj
}

// =============================================================================
// ENTRY CONVERSION
// =============================================================================

// EntryFromJSON converts a persisted entry record, resolving it against the
// referenced scenario's canonical inputs. A record without a baseline
// snapshot inherits the scenario's current savings block.
func EntryFromJSON(ej EntryJSON, scn roi.ScenarioInputs) (portfolio.Entry, error) {
	start, err := roi.ParseMonthKey(ej.StartMonth)
	if err != nil {
		return portfolio.Entry{}, err
	}
	end, err := roi.ParseMonthKey(ej.EndMonth)
	if err != nil {
		return portfolio.Entry{}, err
	}

	baseline := scn.Savings
	if ej.BaselineSavings.Mode != "" {
		baseline, err = savingsFromJSON(ej.BaselineSavings)
		if err != nil {
			return portfolio.Entry{}, err
		}
	}

	return portfolio.Entry{
		ID:                    portfolio.EntryID(ej.ID),
		ScenarioID:            roi.ScenarioID(ej.ScenarioID),
		Scenario:              scn,
		BaselineSavings:       baseline,
		ActualUnits:           ej.ActualUnits,
		ToolCount:             ej.ToolCount,
		ExcludeDesignControls: ej.ExcludeDesignControls,
		ExcludeTraining:       ej.ExcludeTraining,
		StartMonth:            start,
		EndMonth:              end,
		AnalysisPeriod:        ej.AnalysisPeriod,
		Hidden:                ej.Hidden,
	}, nil
}

// EntryToJSON converts a canonical entry back to its persisted shape.
func EntryToJSON(e portfolio.Entry) EntryJSON {
	return EntryJSON{
		ID:                    string(e.ID),
		ScenarioID:            string(e.ScenarioID),
		ActualUnits:           e.ActualUnits,
		ToolCount:             e.ToolCount,
		ExcludeDesignControls: e.ExcludeDesignControls,
		ExcludeTraining:       e.ExcludeTraining,
		StartMonth:            e.StartMonth.String(),
		EndMonth:              e.EndMonth.String(),
		AnalysisPeriod:        e.AnalysisPeriod,
		Hidden:                e.Hidden,
		BaselineSavings:       savingsToJSON(e.BaselineSavings),
	}
}
