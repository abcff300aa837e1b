package export

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/epeers/varstress/internal/models"
	"github.com/shopspring/decimal"
)

const ModelName = "Paramétrico - Delta Normal"

// PrintSummary writes the console summary of a report.
func PrintSummary(w io.Writer, report *models.RiskReport) error {
	level := decimal.NewFromFloat(report.Confidence.Level * 100).Round(2)

	p := &printer{w: w}
	p.printf("\n--- RESULTS ---\n")
	p.printf("Total VaR (%s%% over %d days):\n", level.String(), report.Context.HorizonDays)
	p.printf("- R$ %s (%s%% of NAV)\n",
		humanize.FormatFloat("#,###.##", report.TotalVaRAmount),
		decimal.NewFromFloat(report.TotalVaRPercentOfNAV).Round(4).String())
	p.printf("Model: %s\n", ModelName)

	p.printf("\n--- STRESS SCENARIO IMPACTS ---\n")
	for _, s := range report.Stress {
		impact := decimal.NewFromFloat(s.AggregateImpactPercent).Shift(2).Round(4)
		p.printf("%s: estimated impact = %s%% of NAV\n", s.ScenarioName, impact.String())
	}

	if len(report.Warnings) > 0 {
		p.printf("\n--- WARNINGS ---\n")
		for _, warn := range report.Warnings {
			p.printf("[%s] %s\n", warn.Code, warn.Message)
		}
	}
	return p.err
}

// printer keeps the first write error so the summary reads top to bottom.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
