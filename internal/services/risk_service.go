package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/epeers/varstress/internal/catalog"
	"github.com/epeers/varstress/internal/input"
	"github.com/epeers/varstress/internal/models"
	"github.com/epeers/varstress/internal/util"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrRunNotFound = errors.New("risk run not found")

// RunStore persists computed reports. Get returns nil, nil when the run does
// not exist.
type RunStore interface {
	Save(ctx context.Context, report *models.RiskReport) error
	Get(ctx context.Context, id string) (*models.RiskReport, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.RunListItem, error)
}

// RiskService runs the VaR and stress engines against the configured
// catalogs and keeps the resulting reports.
type RiskService struct {
	cfg                catalog.Config
	varEngine          *VaREngine
	stressEngine       *StressEngine
	store              RunStore
	confidenceFallback bool
	now                func() time.Time
}

// NewRiskService creates a new RiskService. store may be nil, in which case
// reports are not persisted.
func NewRiskService(cfg catalog.Config, store RunStore, confidenceFallback bool) (*RiskService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return &RiskService{
		cfg:                cfg,
		varEngine:          NewVaREngine(cat, cfg.TradingDaysPerYear),
		stressEngine:       NewStressEngine(),
		store:              store,
		confidenceFallback: confidenceFallback,
		now:                time.Now,
	}, nil
}

// Config returns the reference data the service was built with.
func (s *RiskService) Config() catalog.Config {
	return s.cfg
}

// ResolveContext validates request parameters and turns them into a
// PortfolioContext and the selected confidence level.
func (s *RiskService) ResolveContext(ctx context.Context, req *models.RiskRequest) (models.PortfolioContext, models.ConfidenceLevel, error) {
	cl, defaulted, err := input.ParseConfidence(req.Confidence, s.cfg.ConfidenceLevels, s.confidenceFallback)
	if err != nil {
		return models.PortfolioContext{}, models.ConfidenceLevel{}, err
	}
	if defaulted {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnConfidenceDefaulted,
			Message: fmt.Sprintf("confidence %q not recognized, using %g%%", req.Confidence, cl.Level*100),
		})
	}

	pc := models.PortfolioContext{
		NetAssetValue:    req.NetAssetValue,
		ConfidenceZScore: cl.ZScore,
		HorizonDays:      req.HorizonDays,
	}
	if err := ValidateContext(pc); err != nil {
		return models.PortfolioContext{}, models.ConfidenceLevel{}, err
	}
	if err := input.ValidateHorizon(req.HorizonDays, s.cfg.Horizons); err != nil {
		return models.PortfolioContext{}, models.ConfidenceLevel{}, err
	}
	if err := ValidateAllocations(req.Allocations); err != nil {
		return models.PortfolioContext{}, models.ConfidenceLevel{}, err
	}
	return pc, cl, nil
}

// ValidateAllocations rejects weights that are not positive finite numbers.
// Callers that collect raw input drop such entries before getting here.
func ValidateAllocations(allocations []models.Allocation) error {
	for i, a := range allocations {
		if !(a.PercentOfNAV > 0) || math.IsInf(a.PercentOfNAV, 0) {
			return fmt.Errorf("%w: allocations[%d].percent_of_nav must be positive, got %g", ErrInvalidParameter, i, a.PercentOfNAV)
		}
	}
	return nil
}

// ComputeVaR runs the VaR engine only.
func (s *RiskService) ComputeVaR(ctx context.Context, req *models.RiskRequest) (*models.VaRResponse, error) {
	defer TrackTime("ComputeVaR", time.Now())
	ctx, wc := warningCollector(ctx)

	pc, _, err := s.ResolveContext(ctx, req)
	if err != nil {
		return nil, err
	}
	results, total, err := s.varEngine.Compute(pc, req.Allocations)
	if err != nil {
		return nil, err
	}
	return &models.VaRResponse{
		Context:        pc,
		Results:        results,
		TotalVaRAmount: total,
		Warnings:       wc.GetWarnings(),
	}, nil
}

// ComputeStress runs the stress engine over the given scenarios, or the
// configured ones when none are given. Allocations must reference known
// classes. Monetary impacts are filled in when nav is positive.
func (s *RiskService) ComputeStress(ctx context.Context, scenarios []models.StressScenario, allocations []models.Allocation, nav float64) ([]models.StressResult, error) {
	defer TrackTime("ComputeStress", time.Now())

	if err := ValidateAllocations(allocations); err != nil {
		return nil, err
	}
	for i, a := range allocations {
		if _, err := s.varEngine.catalog.Lookup(a.RiskClassID); err != nil {
			return nil, fmt.Errorf("allocation[%d]: %w", i, err)
		}
	}
	if scenarios == nil {
		scenarios = s.cfg.Scenarios
	}

	results := s.stressEngine.Compute(scenarios, allocations)
	if nav > 0 {
		for i := range results {
			results[i].AggregateImpactAmount = Round(results[i].AggregateImpactPercent*nav, 2)
		}
	}
	s.addMappingWarnings(ctx, scenarios, allocations)
	return results, nil
}

// Run computes a full report, stamps it with an ID and persists it.
func (s *RiskService) Run(ctx context.Context, ownerID int64, req *models.RiskRequest) (*models.RiskReport, error) {
	defer TrackTime("Run", time.Now())
	ctx, wc := warningCollector(ctx)

	pc, cl, err := s.ResolveContext(ctx, req)
	if err != nil {
		return nil, err
	}

	varResults, total, err := s.varEngine.Compute(pc, req.Allocations)
	if err != nil {
		return nil, err
	}
	stressResults, err := s.ComputeStress(ctx, nil, req.Allocations, pc.NetAssetValue)
	if err != nil {
		return nil, err
	}

	var weight float64
	for _, a := range req.Allocations {
		weight += a.PercentOfNAV
	}
	if weight > 100+1e-9 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnOverAllocated,
			Message: fmt.Sprintf("allocations sum to %.2f%% of NAV", weight),
		})
	}

	now := s.now().UTC()
	report := &models.RiskReport{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		Context:              pc,
		Confidence:           cl,
		HorizonEnd:           util.HorizonEndDate(now, pc.HorizonDays),
		VaR:                  varResults,
		TotalVaRAmount:       total,
		TotalVaRPercentOfNAV: Round(total/pc.NetAssetValue*100, 4),
		Stress:               stressResults,
		Warnings:             wc.GetWarnings(),
		CreatedAt:            now,
	}

	if s.store != nil {
		if err := s.store.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save risk run: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"run_id":      report.ID,
		"allocations": len(req.Allocations),
		"horizon":     pc.HorizonDays,
		"z":           pc.ConfidenceZScore,
	}).Infof("risk run computed, total VaR %.2f", total)

	return report, nil
}

// GetRun retrieves a persisted report.
func (s *RiskService) GetRun(ctx context.Context, id string) (*models.RiskReport, error) {
	if s.store == nil {
		return nil, ErrRunNotFound
	}
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk run: %w", err)
	}
	if report == nil {
		return nil, ErrRunNotFound
	}
	return report, nil
}

// ListRuns lists the persisted reports of an owner, newest first.
func (s *RiskService) ListRuns(ctx context.Context, ownerID int64) ([]models.RunListItem, error) {
	if s.store == nil {
		return []models.RunListItem{}, nil
	}
	runs, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk runs: %w", err)
	}
	return runs, nil
}

// addMappingWarnings flags allocations that feed no scenario or several.
func (s *RiskService) addMappingWarnings(ctx context.Context, scenarios []models.StressScenario, allocations []models.Allocation) {
	hits := make([]int, len(allocations))
	for _, sc := range scenarios {
		for _, idx := range s.stressEngine.Matches(sc, allocations) {
			hits[idx]++
		}
	}
	for i, a := range allocations {
		switch {
		case hits[i] == 0:
			AddWarning(ctx, models.Warning{
				Code:    models.WarnUnmatchedAllocation,
				Message: fmt.Sprintf("%s is not covered by any stress scenario", a.RiskClassID),
			})
		case hits[i] > 1:
			AddWarning(ctx, models.Warning{
				Code:    models.WarnMultiMatchAllocation,
				Message: fmt.Sprintf("%s is shocked by %d scenarios", a.RiskClassID, hits[i]),
			})
		}
	}
}
