package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RiskClass is a risk factor bucket with its assumed annualized volatility.
type RiskClass struct {
	ID               string  `json:"id" yaml:"id"`
	AnnualVolatility float64 `json:"annual_volatility" yaml:"annual_volatility"`
}

// Allocation is a portfolio weight in one risk class.
// PercentOfNAV is a percentage (10 = 10%), not a decimal fraction.
type Allocation struct {
	RiskClassID  string  `json:"risk_class_id" binding:"required"`
	PercentOfNAV float64 `json:"percent_of_nav" binding:"required,gt=0"`
}

// PortfolioContext carries the per-run parameters shared by both engines.
type PortfolioContext struct {
	NetAssetValue    float64 `json:"net_asset_value"`
	ConfidenceZScore float64 `json:"confidence_z_score"`
	HorizonDays      int     `json:"horizon_days"`
}

// VaRResult is the Delta-Normal VaR of a single allocation.
type VaRResult struct {
	RiskClassID      string  `json:"risk_class_id"`
	PercentOfNAV     float64 `json:"percent_of_nav"`
	AnnualVolatility float64 `json:"annual_volatility"`
	VaRPercent       float64 `json:"var_percent"` // rounded to 4 places
	VaRAmount        float64 `json:"var_amount"`  // rounded to 2 places
}

// StressScenario is a signed fractional shock (-0.15 = 15% drop).
// When Classes is empty the scenario applies to every class whose id contains
// Name (case-insensitive); otherwise only to the listed class ids.
type StressScenario struct {
	Name    string   `json:"name" yaml:"name"`
	Shock   float64  `json:"shock" yaml:"shock"`
	Classes []string `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// StressResult is the aggregate impact of one scenario.
// AggregateImpactPercent is a fraction of NAV (-0.015 = -1.5%).
type StressResult struct {
	ScenarioName           string  `json:"scenario_name"`
	AggregateImpactPercent float64 `json:"aggregate_impact_percent"`
	AggregateImpactAmount  float64 `json:"aggregate_impact_amount,omitempty"`
}

// ConfidenceLevel maps a selectable option to its standard-normal quantile.
type ConfidenceLevel struct {
	Option string  `json:"option" yaml:"option"`
	Level  float64 `json:"level" yaml:"level"`
	ZScore float64 `json:"z_score" yaml:"z_score"`
}

// RiskReport is the combined output of one VaR and stress run.
type RiskReport struct {
	ID                   string           `json:"id"`
	OwnerID              int64            `json:"owner_id,omitempty"`
	Context              PortfolioContext `json:"context"`
	Confidence           ConfidenceLevel  `json:"confidence"`
	HorizonEnd           time.Time        `json:"horizon_end"`
	VaR                  []VaRResult      `json:"var"`
	TotalVaRAmount       float64          `json:"total_var_amount"`
	TotalVaRPercentOfNAV float64          `json:"total_var_percent_of_nav"`
	Stress               []StressResult   `json:"stress"`
	Warnings             []Warning        `json:"warnings,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// RunListItem is a persisted report without its result tables.
type RunListItem struct {
	ID             string    `json:"id"`
	NetAssetValue  float64   `json:"net_asset_value"`
	HorizonDays    int       `json:"horizon_days"`
	Confidence     float64   `json:"confidence"`
	TotalVaRAmount float64   `json:"total_var_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

func (v VaRResult) MarshalJSON() ([]byte, error) {
	type plain struct {
		RiskClassID      string          `json:"risk_class_id"`
		PercentOfNAV     float64         `json:"percent_of_nav"`
		AnnualVolatility float64         `json:"annual_volatility"`
		VaRPercent       json.RawMessage `json:"var_percent"`
		VaRAmount        json.RawMessage `json:"var_amount"`
	}
	return json.Marshal(plain{
		RiskClassID:      v.RiskClassID,
		PercentOfNAV:     v.PercentOfNAV,
		AnnualVolatility: v.AnnualVolatility,
		VaRPercent:       json.RawMessage(fmt.Sprintf("%.4f", v.VaRPercent)),
		VaRAmount:        json.RawMessage(fmt.Sprintf("%.2f", v.VaRAmount)),
	})
}
