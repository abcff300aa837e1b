package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/epeers/varstress/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	VaRFileName    = "resultado_var.csv"
	StressFileName = "resultado_estresse.csv"
)

// WriteVaRCSV writes one row per allocation, in input order.
func WriteVaRCSV(w io.Writer, results []models.VaRResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"risk_class_id", "percent_of_nav", "annual_volatility", "var_percent", "var_amount"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		err := cw.Write([]string{
			r.RiskClassID,
			formatFloat(r.PercentOfNAV),
			formatFloat(r.AnnualVolatility),
			strconv.FormatFloat(r.VaRPercent, 'f', 4, 64),
			strconv.FormatFloat(r.VaRAmount, 'f', 2, 64),
		})
		if err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.RiskClassID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStressCSV writes one row per scenario. Impacts stay fractions of NAV.
func WriteStressCSV(w io.Writer, results []models.StressResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scenario_name", "aggregate_impact_percent"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.ScenarioName, formatFloat(r.AggregateImpactPercent)}); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.ScenarioName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportReport writes both result tables of a report into dir and returns
// the paths written.
func ExportReport(ctx context.Context, dir string, report *models.RiskReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	varPath := filepath.Join(dir, VaRFileName)
	stressPath := filepath.Join(dir, StressFileName)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeFile(ctx, varPath, func(w io.Writer) error {
			return WriteVaRCSV(w, report.VaR)
		})
	})
	g.Go(func() error {
		return writeFile(ctx, stressPath, func(w io.Writer) error {
			return WriteStressCSV(w, report.Stress)
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithField("dir", dir).Debugf("exported report %s", report.ID)
	return []string{varPath, stressPath}, nil
}

func writeFile(ctx context.Context, path string, write func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
