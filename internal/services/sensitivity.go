package services

import (
	"context"
	"time"

	"github.com/epeers/varstress/internal/models"
	"golang.org/x/sync/errgroup"
)

// Sensitivity computes the total VaR for every configured horizon and
// confidence level. Cells are ordered by confidence level, then horizon.
func (s *RiskService) Sensitivity(ctx context.Context, req *models.SensitivityRequest) (*models.SensitivityResponse, error) {
	defer TrackTime("Sensitivity", time.Now())

	if err := ValidateAllocations(req.Allocations); err != nil {
		return nil, err
	}

	levels := s.cfg.ConfidenceLevels
	horizons := s.cfg.Horizons
	cells := make([]models.SensitivityCell, len(levels)*len(horizons))

	g, ctx := errgroup.WithContext(ctx)
	for i, cl := range levels {
		g.Go(func() error {
			for j, h := range horizons {
				if err := ctx.Err(); err != nil {
					return err
				}
				pc := models.PortfolioContext{
					NetAssetValue:    req.NetAssetValue,
					ConfidenceZScore: cl.ZScore,
					HorizonDays:      h,
				}
				_, total, err := s.varEngine.Compute(pc, req.Allocations)
				if err != nil {
					return err
				}
				cells[i*len(horizons)+j] = models.SensitivityCell{
					HorizonDays:          h,
					Confidence:           cl.Level,
					ZScore:               cl.ZScore,
					TotalVaRAmount:       total,
					TotalVaRPercentOfNAV: Round(total/req.NetAssetValue*100, 4),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &models.SensitivityResponse{Cells: cells}, nil
}
