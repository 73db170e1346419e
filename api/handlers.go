/*
handlers.go - HTTP API handlers for the ROI projection engine

PURPOSE:
  Exposes scenario modeling and portfolio aggregation via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Scenarios:
    GET    /api/scenarios                 List all scenarios
    POST   /api/scenarios                 Create scenario (factory defaults)
    GET    /api/scenarios/{id}            Get scenario
    PUT    /api/scenarios/{id}            Replace scenario
    DELETE /api/scenarios/{id}            Delete scenario (last one protected)
    POST   /api/scenarios/{id}/duplicate  Duplicate under a new identity
    GET    /api/scenarios/{id}/results    Run the projection
    GET    /api/scenarios/{id}/formulas   Formula breakdown with substitutions

  Portfolio:
    GET    /api/portfolio/entries         List entries
    POST   /api/portfolio/entries         Create entry
    PUT    /api/portfolio/entries/{id}    Replace entry
    DELETE /api/portfolio/entries/{id}    Delete entry
    GET    /api/portfolio/summary         Organization-wide rollup
    GET    /api/portfolio/timeline        Calendar-month aggregation
    GET    /api/portfolio/settings        Department-level inputs
    PUT    /api/portfolio/settings        Update department-level inputs

  Demos:
    GET    /api/demos                     List demo datasets
    POST   /api/demos/load                Load a demo dataset (resets data)

  Admin:
    POST   /api/reset                     Clear all data (dev only)

QUERY PARAMETERS (results/formulas):
  months=N          Analysis period, default 36, bounded [1, 120]
  curve=linear|scurve   Adoption curve, default linear

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (scenario bounds, dangling references)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - demos.go: Demo dataset loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/portfolio"
	"github.com/warp/roi-engine/roi"
	"github.com/warp/roi-engine/scenario"
	"github.com/warp/roi-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

const (
	// MaxScenarios bounds how many scenarios the comparison view can hold.
	MaxScenarios = 8

	defaultAnalysisPeriod = 36
	maxAnalysisPeriod     = 120
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    store.Store
	Factory  *roi.ScenarioFactory
	Rescaler *portfolio.Rescaler
}

// NewHandler creates a new handler with the given store.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Store:    st,
		Factory:  roi.NewScenarioFactory(scenario.UUIDGenerator{}),
		Rescaler: &portfolio.Rescaler{Engine: &roi.Engine{}},
	}
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}

	dtos := make([]ScenarioDTO, 0, len(recs))
	for _, rec := range recs {
		var sj scenario.ScenarioJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &sj); err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
			return
		}
		dtos = append(dtos, toScenarioDTO(scenario.MigrateScenario(sj), rec.CreatedAt, rec.UpdatedAt))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	recs, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}
	if len(recs) >= MaxScenarios {
		writeError(w, http.StatusConflict, "Scenario limit reached", nil)
		return
	}

	inputs := h.Factory.NewScenario(req.Name)
	inputs.Color = req.Color

	if err := h.saveScenario(r.Context(), inputs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScenarioDTO(scenario.ToJSON(inputs), time.Time{}, time.Time{}))
}

func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenarioRecord(w, r)
	if !ok {
		return
	}
	var sj scenario.ScenarioJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &sj); err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
		return
	}
	writeJSON(w, http.StatusOK, toScenarioDTO(scenario.MigrateScenario(sj), rec.CreatedAt, rec.UpdatedAt))
}

func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenarioRecord(w, r)
	if !ok {
		return
	}

	var sj scenario.ScenarioJSON
	if err := json.NewDecoder(r.Body).Decode(&sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	// Identity comes from the URL, not the payload.
	sj.ID = rec.ID

	inputs, err := scenario.FromJSON(scenario.MigrateScenario(sj))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenario", err)
		return
	}
	if err := validateScenario(inputs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenario", err)
		return
	}

	if err := h.saveScenario(r.Context(), inputs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, toScenarioDTO(scenario.ToJSON(inputs), rec.CreatedAt, time.Time{}))
}

func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenarioRecord(w, r)
	if !ok {
		return
	}

	recs, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}
	if len(recs) <= 1 {
		writeError(w, http.StatusConflict, "Cannot delete the last scenario", nil)
		return
	}

	// Portfolio entries referencing the scenario go with it.
	entries, err := h.Store.ListEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return
	}
	for _, e := range entries {
		if e.ScenarioID == rec.ID {
			if err := h.Store.DeleteEntry(r.Context(), e.ID); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to delete entry", err)
				return
			}
		}
	}

	if err := h.Store.DeleteScenario(r.Context(), rec.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete scenario", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DuplicateScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenarioRecord(w, r)
	if !ok {
		return
	}

	recs, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}
	if len(recs) >= MaxScenarios {
		writeError(w, http.StatusConflict, "Scenario limit reached", nil)
		return
	}

	inputs, err := scenario.ParseScenario([]byte(rec.ConfigJSON))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
		return
	}

	dup := h.Factory.Duplicate(inputs)
	if err := h.saveScenario(r.Context(), dup); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScenarioDTO(scenario.ToJSON(dup), time.Time{}, time.Time{}))
}

func (h *Handler) GetScenarioResults(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenarioRecord(w, r)
	if !ok {
		return
	}
	inputs, err := scenario.ParseScenario([]byte(rec.ConfigJSON))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
		return
	}

	months, err := analysisPeriodParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
		return
	}
	engine, err := engineParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid curve parameter", err)
		return
	}

	results := engine.ComputeScenario(inputs, months)
	writeJSON(w, http.StatusOK, toResultsDTO(results))
}

func (h *Handler) GetScenarioFormulas(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenarioRecord(w, r)
	if !ok {
		return
	}
	inputs, err := scenario.ParseScenario([]byte(rec.ConfigJSON))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
		return
	}

	months, err := analysisPeriodParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
		return
	}

	// The scenario's own lock applies unless the caller overrides it.
	locked := inputs.CostBreakdownLocked
	if raw := r.URL.Query().Get("locked"); raw != "" {
		locked, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid locked parameter", err)
			return
		}
	}

	displays := roi.FormulaDisplays(inputs, months, locked)
	writeJSON(w, http.StatusOK, toFormulaDTOs(displays))
}

// =============================================================================
// PORTFOLIO ENTRY HANDLERS
// =============================================================================

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.ListEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return
	}

	names := map[string]string{}
	scns, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}
	for _, s := range scns {
		names[s.ID] = s.Name
	}

	dtos := make([]EntryDTO, 0, len(recs))
	for _, rec := range recs {
		var ej scenario.EntryJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &ej); err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt entry record", err)
			return
		}
		dtos = append(dtos, EntryDTO{
			EntryJSON:    ej,
			ScenarioName: names[rec.ScenarioID],
			CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    rec.UpdatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var ej scenario.EntryJSON
	if err := json.NewDecoder(r.Body).Decode(&ej); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if ej.ID == "" {
		ej.ID = h.Factory.IDs.NewID()
	}
	h.saveEntryFromJSON(w, r, ej, http.StatusCreated)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get entry", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Entry not found", nil)
		return
	}

	var ej scenario.EntryJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &ej); err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt entry record", err)
		return
	}
	writeJSON(w, http.StatusOK, EntryDTO{
		EntryJSON: ej,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get entry", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Entry not found", nil)
		return
	}

	var ej scenario.EntryJSON
	if err := json.NewDecoder(r.Body).Decode(&ej); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ej.ID = id
	h.saveEntryFromJSON(w, r, ej, http.StatusOK)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get entry", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Entry not found", nil)
		return
	}
	if err := h.Store.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveEntryFromJSON validates an entry payload against its scenario and
// persists it. The scenario must exist and the month range must parse.
func (h *Handler) saveEntryFromJSON(w http.ResponseWriter, r *http.Request, ej scenario.EntryJSON, status int) {
	scnRec, err := h.Store.GetScenario(r.Context(), ej.ScenarioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get scenario", err)
		return
	}
	if scnRec == nil {
		writeError(w, http.StatusConflict, "Entry references unknown scenario", nil)
		return
	}

	inputs, err := scenario.ParseScenario([]byte(scnRec.ConfigJSON))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
		return
	}

	entry, err := scenario.EntryFromJSON(ej, inputs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry", err)
		return
	}
	if entry.EndMonth.Before(entry.StartMonth) {
		writeError(w, http.StatusBadRequest, "End month precedes start month", nil)
		return
	}

	// Snapshot the scenario's savings block when the payload carries none, so
	// later scenario edits don't silently rewrite the entry's baseline.
	persisted := scenario.EntryToJSON(entry)
	data, err := json.Marshal(persisted)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode entry", err)
		return
	}

	if err := h.Store.SaveEntry(r.Context(), store.EntryRecord{
		ID:         persisted.ID,
		ScenarioID: persisted.ScenarioID,
		ConfigJSON: string(data),
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
		return
	}
	writeJSON(w, status, EntryDTO{EntryJSON: persisted, ScenarioName: inputs.Name})
}

// =============================================================================
// PORTFOLIO ROLLUP HANDLERS
// =============================================================================

func (h *Handler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.loadEntries(w, r)
	if !ok {
		return
	}
	settings, err := h.Store.GetSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get settings", err)
		return
	}

	summary := h.Rescaler.Aggregate(entries, decimal.NewFromFloat(settings.DepartmentAnnualSalary))
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

func (h *Handler) GetPortfolioTimeline(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.loadEntries(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTimelineDTOs(h.Rescaler.Timeline(entries)))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get settings", err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsDTO{DepartmentAnnualSalary: settings.DepartmentAnnualSalary})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.DepartmentAnnualSalary < 0 {
		writeError(w, http.StatusBadRequest, "Salary cannot be negative", nil)
		return
	}
	if err := h.Store.SaveSettings(r.Context(), store.Settings{
		DepartmentAnnualSalary: req.DepartmentAnnualSalary,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadScenarioRecord fetches the record addressed by the {id} URL parameter,
// writing the error response itself on failure.
func (h *Handler) loadScenarioRecord(w http.ResponseWriter, r *http.Request) (*store.ScenarioRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetScenario(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get scenario", err)
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return nil, false
	}
	return rec, true
}

// loadEntries resolves every persisted entry against its scenario.
func (h *Handler) loadEntries(w http.ResponseWriter, r *http.Request) ([]portfolio.Entry, bool) {
	recs, err := h.Store.ListEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return nil, false
	}

	entries := make([]portfolio.Entry, 0, len(recs))
	for _, rec := range recs {
		scnRec, err := h.Store.GetScenario(r.Context(), rec.ScenarioID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to get scenario", err)
			return nil, false
		}
		if scnRec == nil {
			// Dangling reference, skip rather than fail the whole rollup.
			continue
		}
		inputs, err := scenario.ParseScenario([]byte(scnRec.ConfigJSON))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt scenario record", err)
			return nil, false
		}
		var ej scenario.EntryJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &ej); err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt entry record", err)
			return nil, false
		}
		entry, err := scenario.EntryFromJSON(ej, inputs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt entry record", err)
			return nil, false
		}
		entries = append(entries, entry)
	}
	return entries, true
}

func (h *Handler) saveScenario(ctx context.Context, in roi.ScenarioInputs) error {
	data, err := scenario.EncodeScenario(in)
	if err != nil {
		return err
	}
	return h.Store.SaveScenario(ctx, store.ScenarioRecord{
		ID:         string(in.ID),
		Name:       in.Name,
		ConfigJSON: string(data),
	})
}

// validateScenario rejects inputs the engine would otherwise clamp into
// surprising shapes. Clamping stays in the core; the API is stricter.
func validateScenario(in roi.ScenarioInputs) error {
	s := in.Savings
	if s.ReferenceUnits < 0 {
		return errNegative("referenceUnits")
	}
	if s.UtilizationPercent < 0 || s.UtilizationPercent > 1 {
		return errRange("utilizationPercent", "[0, 1]")
	}
	if s.AdoptionRampMonths < 0 {
		return errNegative("adoptionRampMonths")
	}
	if in.Investment.ToolLifespanMonths < 0 {
		return errNegative("toolLifespanMonths")
	}
	return nil
}

func analysisPeriodParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return defaultAnalysisPeriod, nil
	}
	months, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if months < 1 || months > maxAnalysisPeriod {
		return 0, errRange("months", "[1, 120]")
	}
	return months, nil
}

func engineParam(r *http.Request) (*roi.Engine, error) {
	switch curve := r.URL.Query().Get("curve"); curve {
	case "", "linear":
		return &roi.Engine{Curve: roi.LinearAdoption}, nil
	case "scurve":
		return &roi.Engine{Curve: roi.SCurveAdoption}, nil
	default:
		return nil, errUnknown("curve", curve)
	}
}

func errNegative(field string) error {
	return fmt.Errorf("%s cannot be negative", field)
}

func errRange(field, bounds string) error {
	return fmt.Errorf("%s must be in %s", field, bounds)
}

func errUnknown(field, value string) error {
	return fmt.Errorf("unknown %s %q", field, value)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
