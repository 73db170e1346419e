/*
demos.go - Demo dataset loaders for testing and demonstrations

PURPOSE:
  Provides pre-built datasets that populate the store with realistic data
  for testing and demos. Each demo creates scenarios, portfolio entries,
  and department settings that exercise specific features.

AVAILABLE DEMOS:
  weld-cell:       Time-based crew reduction, two-tool deployment, overtime
  inspection-lite: Direct per-unit savings, no redeployment, single entry

HOW DEMOS WORK:
 1. Reset store (clear all data)
 2. Create scenarios
 3. Create portfolio entries pinned to calendar windows
 4. Set department settings

USAGE VIA API:
  POST /api/demos/load
  {"demo_id": "weld-cell"}

ADDING NEW DEMOS:
 1. Add to 'demos' slice with ID, name, description
 2. Create loader function: loadXxxDemo(ctx, h)
 3. Add case to LoadDemo handler

NOTE:
  Demos reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Scenario and entry handlers
  - scenario/scenario.go: Persisted schema the loaders write
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/roi"
	"github.com/warp/roi-engine/scenario"
	"github.com/warp/roi-engine/store"
)

// =============================================================================
// DEMO CATALOG
// =============================================================================

var demos = []DemoDTO{
	{
		ID:          "weld-cell",
		Name:        "Weld Cell Automation",
		Description: "Time-based crew reduction with a two-tool deployment and an overtime-heavy second line",
	},
	{
		ID:          "inspection-lite",
		Name:        "Inspection Station",
		Description: "Direct per-unit savings with a short ramp and no tool redeployment",
	},
}

func (h *Handler) ListDemos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, demos)
}

func (h *Handler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	var req LoadDemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}

	var err error
	switch req.DemoID {
	case "weld-cell":
		err = h.loadWeldCellDemo(ctx)
	case "inspection-lite":
		err = h.loadInspectionDemo(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown demo: %s", req.DemoID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load demo", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "demo_id": req.DemoID})
}

// =============================================================================
// LOADERS
// =============================================================================

// loadWeldCellDemo builds a time-based scenario where a two-person crew drops
// to one, deployed twice: one line at reference volume and one at triple
// volume that pushes the crew into overtime.
func (h *Handler) loadWeldCellDemo(ctx context.Context) error {
	scn := roi.ScenarioInputs{
		ID:    "demo-weld-cell",
		Name:  "Weld Cell",
		Color: "#4f8ef7",
		Savings: roi.SavingsInputs{
			Model: roi.TimeBasedSavings{
				CurrentCrewSize:        decimal.NewFromInt(2),
				ProposedCrewSize:       decimal.NewFromInt(1),
				CurrentMinutesPerUnit:  decimal.NewFromInt(30),
				ProposedMinutesPerUnit: decimal.NewFromInt(12),
				HourlyRate:             decimal.NewFromInt(55),
			},
			UnitName:           "part",
			ReferenceUnits:     400,
			UtilizationPercent: 0.85,
			AdoptionRampMonths: 6,
		},
		Investment: roi.InvestmentInputs{
			AssemblyCost:         decimal.NewFromInt(18000),
			DesignCost:           decimal.NewFromInt(9000),
			ControlsCost:         decimal.NewFromInt(6000),
			MonthlyRecurringCost: decimal.NewFromInt(350),
			TrainingCost:         decimal.NewFromInt(2500),
			DeploymentCost:       decimal.NewFromInt(1500),
			ToolLifespanMonths:   24,
		},
		Flags: roi.QualitativeFlags{SafetyCritical: true},
	}
	if err := h.saveScenario(ctx, scn); err != nil {
		return err
	}

	entries := []scenario.EntryJSON{
		{
			ID:             "demo-weld-line-1",
			ScenarioID:     string(scn.ID),
			ActualUnits:    400,
			ToolCount:      1,
			StartMonth:     "2026-01",
			EndMonth:       "2027-12",
			AnalysisPeriod: 36,
		},
		{
			ID:             "demo-weld-line-2",
			ScenarioID:     string(scn.ID),
			ActualUnits:    1200,
			ToolCount:      2,
			StartMonth:     "2026-07",
			EndMonth:       "2028-06",
			AnalysisPeriod: 36,
		},
	}
	if err := h.saveDemoEntries(ctx, scn, entries); err != nil {
		return err
	}

	return h.Store.SaveSettings(ctx, store.Settings{DepartmentAnnualSalary: 420000})
}

// loadInspectionDemo builds a direct-savings scenario: a fixed dollar amount
// per inspected unit, no lifespan, so no redeployment spikes.
func (h *Handler) loadInspectionDemo(ctx context.Context) error {
	scn := roi.ScenarioInputs{
		ID:    "demo-inspection",
		Name:  "Inspection Station",
		Color: "#f7a54f",
		Savings: roi.SavingsInputs{
			Model:              roi.DirectSavings{RatePerUnit: decimal.NewFromFloat(3.25)},
			UnitName:           "inspection",
			ReferenceUnits:     2000,
			UtilizationPercent: 1.0,
			AdoptionRampMonths: 3,
		},
		Investment: roi.InvestmentInputs{
			AssemblyCost:         decimal.NewFromInt(7500),
			DesignCost:           decimal.NewFromInt(3000),
			MonthlyRecurringCost: decimal.NewFromInt(120),
			TrainingCost:         decimal.NewFromInt(800),
		},
	}
	if err := h.saveScenario(ctx, scn); err != nil {
		return err
	}

	entries := []scenario.EntryJSON{
		{
			ID:             "demo-inspection-cell",
			ScenarioID:     string(scn.ID),
			ActualUnits:    2000,
			ToolCount:      1,
			StartMonth:     "2026-03",
			EndMonth:       "2027-02",
			AnalysisPeriod: 12,
		},
	}
	if err := h.saveDemoEntries(ctx, scn, entries); err != nil {
		return err
	}

	return h.Store.SaveSettings(ctx, store.Settings{DepartmentAnnualSalary: 180000})
}

// saveDemoEntries resolves and persists entry records with the scenario's
// savings block snapshotted as the baseline.
func (h *Handler) saveDemoEntries(ctx context.Context, scn roi.ScenarioInputs, entries []scenario.EntryJSON) error {
	for _, ej := range entries {
		entry, err := scenario.EntryFromJSON(ej, scn)
		if err != nil {
			return err
		}
		persisted := scenario.EntryToJSON(entry)
		data, err := json.Marshal(persisted)
		if err != nil {
			return err
		}
		if err := h.Store.SaveEntry(ctx, store.EntryRecord{
			ID:         persisted.ID,
			ScenarioID: persisted.ScenarioID,
			ConfigJSON: string(data),
		}); err != nil {
			return err
		}
	}
	return nil
}
