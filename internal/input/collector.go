package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/epeers/varstress/internal/catalog"
	"github.com/epeers/varstress/internal/models"
)

// Collected holds everything gathered by one interactive session.
type Collected struct {
	NetAssetValue float64
	HorizonDays   int
	Confidence    models.ConfidenceLevel
	Allocations   []models.Allocation
	Warnings      []models.Warning
}

// Collector prompts for run parameters on out and reads answers from in,
// one line per answer.
type Collector struct {
	in       *bufio.Scanner
	out      io.Writer
	cfg      catalog.Config
	fallback bool
}

// NewCollector creates a Collector for the given configuration.
// fallback enables the legacy default-to-first-level confidence behaviour.
func NewCollector(in io.Reader, out io.Writer, cfg catalog.Config, fallback bool) *Collector {
	return &Collector{
		in:       bufio.NewScanner(in),
		out:      out,
		cfg:      cfg,
		fallback: fallback,
	}
}

// Collect runs the prompt sequence: NAV, horizon, confidence, then one weight
// per risk class in catalog order. Weights that are blank or zero are skipped
// silently; malformed or negative ones are skipped with a warning.
func (c *Collector) Collect() (*Collected, error) {
	res := &Collected{}

	raw, err := c.ask("Net asset value (R$): ")
	if err != nil {
		return nil, err
	}
	if res.NetAssetValue, err = ParseNAV(raw); err != nil {
		return nil, err
	}

	fmt.Fprintln(c.out, "\nSelect the VaR horizon:")
	for i, h := range c.cfg.Horizons {
		fmt.Fprintf(c.out, "%d. %d days\n", i+1, h)
	}
	if raw, err = c.ask("Option: "); err != nil {
		return nil, err
	}
	if res.HorizonDays, err = ParseHorizon(raw, c.cfg.Horizons); err != nil {
		return nil, err
	}

	fmt.Fprintln(c.out, "\nSelect the confidence level:")
	for _, l := range c.cfg.ConfidenceLevels {
		fmt.Fprintf(c.out, "%s. %g%%\n", l.Option, l.Level*100)
	}
	if raw, err = c.ask("Option: "); err != nil {
		return nil, err
	}
	cl, defaulted, err := ParseConfidence(raw, c.cfg.ConfidenceLevels, c.fallback)
	if err != nil {
		return nil, err
	}
	res.Confidence = cl
	if defaulted {
		res.Warnings = append(res.Warnings, models.Warning{
			Code:    models.WarnConfidenceDefaulted,
			Message: fmt.Sprintf("confidence option %q not recognized, using %g%%", strings.TrimSpace(raw), cl.Level*100),
		})
	}

	fmt.Fprintln(c.out, "\nEnter the allocation of each class (% of NAV):")
	for _, rc := range c.cfg.RiskClasses {
		raw, err := c.ask(fmt.Sprintf("%s (%% of NAV): ", rc.ID))
		if err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pct, ok := ParseWeight(raw)
		if !ok {
			if s := strings.TrimSpace(raw); s != "" && s != "0" {
				res.Warnings = append(res.Warnings, models.Warning{
					Code:    models.WarnInputDiscarded,
					Message: fmt.Sprintf("%s: discarded entry %q", rc.ID, s),
				})
			}
			continue
		}
		res.Allocations = append(res.Allocations, models.Allocation{
			RiskClassID:  rc.ID,
			PercentOfNAV: pct,
		})
	}

	return res, nil
}

func (c *Collector) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return c.in.Text(), nil
}
