/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Scenario and entry
  payloads reuse the persisted schema types from the scenario package
  (field names are frozen for file round-tripping); result payloads are
  API-only projections of engine output.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  The core computes in decimal; DTOs carry float64. Conversion happens
  here and nowhere else.

SEE ALSO:
  - handlers.go: Uses these types
  - scenario/scenario.go: Persisted schema the payloads embed
*/
package api

import (
	"time"

	"github.com/warp/roi-engine/portfolio"
	"github.com/warp/roi-engine/roi"
	"github.com/warp/roi-engine/scenario"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ScenarioDTO wraps the persisted scenario schema with record timestamps.
type ScenarioDTO struct {
	scenario.ScenarioJSON
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CreateScenarioRequest creates a scenario with factory defaults.
type CreateScenarioRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FlagsDTO mirrors roi.QualitativeFlags in responses.
type FlagsDTO struct {
	SafetyCritical     bool `json:"safetyCritical"`
	QualityCritical    bool `json:"qualityCritical"`
	OperationsCritical bool `json:"operationsCritical"`
}

// MonthlyBreakdownDTO is one simulated month.
type MonthlyBreakdownDTO struct {
	Month                 int     `json:"month"`
	AdoptionRate          float64 `json:"adoptionRate"`
	MonthlySavings        float64 `json:"monthlySavings"`
	MonthlyInvestmentCost float64 `json:"monthlyInvestmentCost"`
	CumulativeSavings     float64 `json:"cumulativeSavings"`
	CumulativeInvestment  float64 `json:"cumulativeInvestment"`
	NetPosition           float64 `json:"netPosition"`
}

// ScenarioResultsDTO is one simulation run.
type ScenarioResultsDTO struct {
	ScenarioID                   string                `json:"scenarioId"`
	Name                         string                `json:"name"`
	Color                        string                `json:"color,omitempty"`
	QualitativeFlags             FlagsDTO              `json:"qualitativeFlags"`
	Months                       []MonthlyBreakdownDTO `json:"months"`
	BreakEvenMonth               *int                  `json:"breakEvenMonth"`
	Year1ROI                     float64               `json:"year1ROI"`
	ThreeYearNetSavings          float64               `json:"threeYearNetSavings"`
	TotalInvestment              float64               `json:"totalInvestment"`
	SavingsPerUnit               float64               `json:"savingsPerUnit"`
	MonthlySavingsAtFullAdoption float64               `json:"monthlySavingsAtFullAdoption"`
}

// FormulaDisplayDTO is one formula + substitution + result triple.
type FormulaDisplayDTO struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Formula     string  `json:"formula"`
	Substituted string  `json:"substituted"`
	Result      float64 `json:"result"`
}

// EntryDTO wraps the persisted entry schema with resolution metadata.
type EntryDTO struct {
	scenario.EntryJSON
	ScenarioName string `json:"scenarioName,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// ScaledEntryDTO is one entry's rescaled output inside a summary.
type ScaledEntryDTO struct {
	EntryID          string  `json:"entryId"`
	ScenarioID       string  `json:"scenarioId"`
	ScenarioName     string  `json:"scenarioName,omitempty"`
	DurationMonths   int     `json:"durationMonths"`
	ScaleFactor      float64 `json:"scaleFactor"`
	ScaledSavings    float64 `json:"scaledSavings"`
	ScaledInvestment float64 `json:"scaledInvestment"`
	ScaledValue      float64 `json:"scaledValue"`
}

// SummaryDTO is the organization-wide rollup.
type SummaryDTO struct {
	TotalValueCreated      float64          `json:"totalValueCreated"`
	TotalInvestment        float64          `json:"totalInvestment"`
	DepartmentAnnualSalary float64          `json:"departmentAnnualSalary"`
	NetProfit              float64          `json:"netProfit"`
	DepartmentROI          float64          `json:"departmentROI"`
	ActiveEntries          int              `json:"activeEntries"`
	Entries                []ScaledEntryDTO `json:"entries"`
}

// TimelinePointDTO is one calendar month of the portfolio timeline.
type TimelinePointDTO struct {
	Month      string  `json:"month"`
	Savings    float64 `json:"savings"`
	Investment float64 `json:"investment"`
	Net        float64 `json:"net"`
}

// SettingsDTO carries organization-level portfolio inputs.
type SettingsDTO struct {
	DepartmentAnnualSalary float64 `json:"departmentAnnualSalary"`
}

// DemoDTO describes a loadable demo dataset.
type DemoDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadDemoRequest selects a demo dataset.
type LoadDemoRequest struct {
	DemoID string `json:"demo_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toScenarioDTO(sj scenario.ScenarioJSON, createdAt, updatedAt time.Time) ScenarioDTO {
	dto := ScenarioDTO{ScenarioJSON: sj}
	if !createdAt.IsZero() {
		dto.CreatedAt = createdAt.Format(time.RFC3339)
	}
	if !updatedAt.IsZero() {
		dto.UpdatedAt = updatedAt.Format(time.RFC3339)
	}
	return dto
}

func toResultsDTO(r roi.ScenarioResults) ScenarioResultsDTO {
	months := make([]MonthlyBreakdownDTO, len(r.Months))
	for i, m := range r.Months {
		months[i] = MonthlyBreakdownDTO{
			Month:                 m.Month,
			AdoptionRate:          m.AdoptionRate,
			MonthlySavings:        m.MonthlySavings.InexactFloat64(),
			MonthlyInvestmentCost: m.MonthlyInvestmentCost.InexactFloat64(),
			CumulativeSavings:     m.CumulativeSavings.InexactFloat64(),
			CumulativeInvestment:  m.CumulativeInvestment.InexactFloat64(),
			NetPosition:           m.NetPosition.InexactFloat64(),
		}
	}
	return ScenarioResultsDTO{
		ScenarioID: string(r.ScenarioID),
		Name:       r.Name,
		Color:      r.Color,
		QualitativeFlags: FlagsDTO{
			SafetyCritical:     r.Flags.SafetyCritical,
			QualityCritical:    r.Flags.QualityCritical,
			OperationsCritical: r.Flags.OperationsCritical,
		},
		Months:                       months,
		BreakEvenMonth:               r.BreakEvenMonth,
		Year1ROI:                     r.Year1ROI.InexactFloat64(),
		ThreeYearNetSavings:          r.ThreeYearNetSavings.InexactFloat64(),
		TotalInvestment:              r.TotalInvestment.InexactFloat64(),
		SavingsPerUnit:               r.SavingsPerUnit.InexactFloat64(),
		MonthlySavingsAtFullAdoption: r.MonthlySavingsAtFullAdoption.InexactFloat64(),
	}
}

func toFormulaDTOs(displays []roi.FormulaDisplay) []FormulaDisplayDTO {
	dtos := make([]FormulaDisplayDTO, len(displays))
	for i, d := range displays {
		dtos[i] = FormulaDisplayDTO{
			ID:          d.ID,
			Label:       d.Label,
			Formula:     d.Formula,
			Substituted: d.Substituted,
			Result:      d.Result.InexactFloat64(),
		}
	}
	return dtos
}

func toScaledEntryDTO(se portfolio.ScaledEntry) ScaledEntryDTO {
	return ScaledEntryDTO{
		EntryID:          string(se.Entry.ID),
		ScenarioID:       string(se.Entry.ScenarioID),
		ScenarioName:     se.Entry.Scenario.Name,
		DurationMonths:   se.DurationMonths,
		ScaleFactor:      se.ScaleFactor.InexactFloat64(),
		ScaledSavings:    se.ScaledSavings.InexactFloat64(),
		ScaledInvestment: se.ScaledInvestment.InexactFloat64(),
		ScaledValue:      se.ScaledValue.InexactFloat64(),
	}
}

func toSummaryDTO(s portfolio.Summary) SummaryDTO {
	entries := make([]ScaledEntryDTO, len(s.Entries))
	for i, se := range s.Entries {
		entries[i] = toScaledEntryDTO(se)
	}
	return SummaryDTO{
		TotalValueCreated:      s.TotalValueCreated.InexactFloat64(),
		TotalInvestment:        s.TotalInvestment.InexactFloat64(),
		DepartmentAnnualSalary: s.DepartmentAnnualSalary.InexactFloat64(),
		NetProfit:              s.NetProfit.InexactFloat64(),
		DepartmentROI:          s.DepartmentROI.InexactFloat64(),
		ActiveEntries:          s.ActiveEntries,
		Entries:                entries,
	}
}

func toTimelineDTOs(points []portfolio.TimelinePoint) []TimelinePointDTO {
	dtos := make([]TimelinePointDTO, len(points))
	for i, p := range points {
		dtos[i] = TimelinePointDTO{
			Month:      p.Month.String(),
			Savings:    p.Savings.InexactFloat64(),
			Investment: p.Investment.InexactFloat64(),
			Net:        p.Net.InexactFloat64(),
		}
	}
	return dtos
}
