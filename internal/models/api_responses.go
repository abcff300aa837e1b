package models

// RiskRequest represents the request body for VaR, stress and report endpoints.
// Confidence is a selectable option ("1", "2", "95%", "0.99"...); HorizonDays
// must be one of the configured horizons.
type RiskRequest struct {
	NetAssetValue float64      `json:"net_asset_value" binding:"required"`
	HorizonDays   int          `json:"horizon_days" binding:"required"`
	Confidence    string       `json:"confidence" binding:"required"`
	Allocations   []Allocation `json:"allocations" binding:"dive"`
}

// StressRequest represents the request body for POST /risk/stress.
// Scenarios defaults to the configured catalog when omitted.
type StressRequest struct {
	NetAssetValue float64          `json:"net_asset_value"`
	Scenarios     []StressScenario `json:"scenarios"`
	Allocations   []Allocation     `json:"allocations" binding:"required,dive"`
}

// SensitivityRequest represents the request body for POST /risk/sensitivity.
type SensitivityRequest struct {
	NetAssetValue float64      `json:"net_asset_value" binding:"required"`
	Allocations   []Allocation `json:"allocations" binding:"dive"`
}

// VaRResponse represents the response of POST /risk/var
type VaRResponse struct {
	Context        PortfolioContext `json:"context"`
	Results        []VaRResult      `json:"results"`
	TotalVaRAmount float64          `json:"total_var_amount"`
	Warnings       []Warning        `json:"warnings,omitempty"`
}

// StressResponse represents the response of POST /risk/stress
type StressResponse struct {
	Results  []StressResult `json:"results"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// SensitivityCell is the total VaR for one horizon and confidence pair.
type SensitivityCell struct {
	HorizonDays          int     `json:"horizon_days"`
	Confidence           float64 `json:"confidence"`
	ZScore               float64 `json:"z_score"`
	TotalVaRAmount       float64 `json:"total_var_amount"`
	TotalVaRPercentOfNAV float64 `json:"total_var_percent_of_nav"`
}

// SensitivityResponse represents the response of POST /risk/sensitivity
type SensitivityResponse struct {
	Cells []SensitivityCell `json:"cells"`
}

// CatalogResponse lists the configured risk classes.
type CatalogResponse struct {
	TradingDaysPerYear int         `json:"trading_days_per_year"`
	Classes            []RiskClass `json:"classes"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
