package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/epeers/varstress/internal/catalog"
	"github.com/epeers/varstress/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownRiskClass = catalog.ErrUnknownRiskClass
	ErrInvalidParameter = errors.New("invalid parameter")
)

// VaREngine computes parametric (Delta-Normal) VaR per allocation.
// Classes are treated as perfectly correlated: the portfolio total is the
// plain sum of the per-allocation amounts.
type VaREngine struct {
	catalog            *catalog.Catalog
	tradingDaysPerYear int
}

// NewVaREngine creates a VaREngine over the given catalog.
// tradingDaysPerYear <= 0 selects the 252-day convention.
func NewVaREngine(cat *catalog.Catalog, tradingDaysPerYear int) *VaREngine {
	if tradingDaysPerYear <= 0 {
		tradingDaysPerYear = catalog.DefaultTradingDaysPerYear
	}
	return &VaREngine{
		catalog:            cat,
		tradingDaysPerYear: tradingDaysPerYear,
	}
}

// TradingDaysPerYear returns the annualization factor in use.
func (e *VaREngine) TradingDaysPerYear() int {
	return e.tradingDaysPerYear
}

// Compute returns one VaRResult per allocation, in input order, and their total.
// Every allocation is resolved before anything is computed, so an unknown
// class yields no partial results.
func (e *VaREngine) Compute(pc models.PortfolioContext, allocations []models.Allocation) ([]models.VaRResult, float64, error) {
	if err := ValidateContext(pc); err != nil {
		return nil, 0, err
	}

	vols := make([]float64, len(allocations))
	for i, a := range allocations {
		rc, err := e.catalog.Lookup(a.RiskClassID)
		if err != nil {
			return nil, 0, fmt.Errorf("allocation[%d]: %w", i, err)
		}
		vols[i] = rc.AnnualVolatility
	}

	results := make([]models.VaRResult, 0, len(allocations))
	total := decimal.Zero
	for i, a := range allocations {
		scaled := e.ScaledFraction(vols[i], pc.ConfidenceZScore, pc.HorizonDays)
		amount := Round(pc.NetAssetValue*(a.PercentOfNAV/100)*scaled, 2)

		results = append(results, models.VaRResult{
			RiskClassID:      a.RiskClassID,
			PercentOfNAV:     a.PercentOfNAV,
			AnnualVolatility: vols[i],
			VaRPercent:       Round(scaled*100, 4),
			VaRAmount:        amount,
		})
		total = total.Add(decimal.NewFromFloat(amount))
	}

	return results, total.Round(2).InexactFloat64(), nil
}

// ScaledFraction converts an annual volatility into the VaR fraction for the
// horizon: z * (vol / sqrt(tradingDays)) * sqrt(horizon).
func (e *VaREngine) ScaledFraction(annualVol, z float64, horizonDays int) float64 {
	daily := annualVol / math.Sqrt(float64(e.tradingDaysPerYear))
	return z * daily * math.Sqrt(float64(horizonDays))
}

// ValidateContext rejects non-positive run parameters.
func ValidateContext(pc models.PortfolioContext) error {
	if pc.NetAssetValue <= 0 {
		return fmt.Errorf("%w: net_asset_value must be positive, got %.2f", ErrInvalidParameter, pc.NetAssetValue)
	}
	if pc.ConfidenceZScore <= 0 {
		return fmt.Errorf("%w: confidence_z_score must be positive, got %.4f", ErrInvalidParameter, pc.ConfidenceZScore)
	}
	if pc.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizon_days must be positive, got %d", ErrInvalidParameter, pc.HorizonDays)
	}
	return nil
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
