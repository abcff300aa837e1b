package catalog

import (
	"fmt"
	"os"

	"github.com/epeers/varstress/internal/models"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"
)

const DefaultTradingDaysPerYear = 252

// Config is the full reference data set of a run. Sections omitted from a
// catalog file keep their defaults.
type Config struct {
	TradingDaysPerYear int                      `yaml:"trading_days_per_year"`
	Horizons           []int                    `yaml:"horizons"`
	ConfidenceLevels   []models.ConfidenceLevel `yaml:"confidence_levels"`
	RiskClasses        []models.RiskClass       `yaml:"risk_classes"`
	Scenarios          []models.StressScenario  `yaml:"scenarios"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		TradingDaysPerYear: DefaultTradingDaysPerYear,
		Horizons:           []int{1, 10, 21},
		ConfidenceLevels: []models.ConfidenceLevel{
			{Option: "1", Level: 0.95, ZScore: 1.65},
			{Option: "2", Level: 0.99, ZScore: 2.33},
		},
		RiskClasses: DefaultRiskClasses(),
		Scenarios:   DefaultScenarios(),
	}
}

// LoadFile reads a YAML catalog file on top of DefaultConfig.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data on top of DefaultConfig and validates it.
// Confidence levels given without a z_score get the exact standard-normal
// quantile of their level.
func Parse(data []byte) (Config, error) {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	cfg := DefaultConfig()
	if file.TradingDaysPerYear != 0 {
		cfg.TradingDaysPerYear = file.TradingDaysPerYear
	}
	if len(file.Horizons) > 0 {
		cfg.Horizons = file.Horizons
	}
	if len(file.ConfidenceLevels) > 0 {
		cfg.ConfidenceLevels = file.ConfidenceLevels
	}
	if len(file.RiskClasses) > 0 {
		cfg.RiskClasses = file.RiskClasses
	}
	switch {
	case file.Scenarios != nil:
		cfg.Scenarios = file.Scenarios
	case len(file.RiskClasses) > 0:
		// The default class lists name the default classes; match by name instead.
		cfg.Scenarios = unmapped(cfg.Scenarios)
	}

	for i := range cfg.ConfidenceLevels {
		cl := &cfg.ConfidenceLevels[i]
		if cl.ZScore == 0 && cl.Level > 0 && cl.Level < 1 {
			cl.ZScore = ZScore(cl.Level)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// unmapped returns copies of scenarios without explicit class lists.
func unmapped(scenarios []models.StressScenario) []models.StressScenario {
	out := make([]models.StressScenario, len(scenarios))
	for i, s := range scenarios {
		out[i] = models.StressScenario{Name: s.Name, Shock: s.Shock}
	}
	return out
}

// ZScore returns the one-tailed standard-normal quantile for a confidence level.
func ZScore(level float64) float64 {
	return distuv.UnitNormal.Quantile(level)
}

// Validate checks the configuration for values the engines cannot use.
func (c Config) Validate() error {
	if c.TradingDaysPerYear <= 0 {
		return fmt.Errorf("%w: trading_days_per_year must be positive, got %d", ErrInvalidCatalog, c.TradingDaysPerYear)
	}
	for _, h := range c.Horizons {
		if h <= 0 {
			return fmt.Errorf("%w: horizon %d is not positive", ErrInvalidCatalog, h)
		}
	}
	seen := make(map[string]struct{}, len(c.ConfidenceLevels))
	for i, cl := range c.ConfidenceLevels {
		if cl.Option == "" {
			return fmt.Errorf("%w: confidence_levels[%d] has empty option", ErrInvalidCatalog, i)
		}
		if _, dup := seen[cl.Option]; dup {
			return fmt.Errorf("%w: duplicate confidence option %q", ErrInvalidCatalog, cl.Option)
		}
		seen[cl.Option] = struct{}{}
		if cl.Level <= 0 || cl.Level >= 1 {
			return fmt.Errorf("%w: confidence option %q has level %.4f outside (0, 1)", ErrInvalidCatalog, cl.Option, cl.Level)
		}
		if cl.ZScore <= 0 {
			return fmt.Errorf("%w: confidence option %q has non-positive z_score", ErrInvalidCatalog, cl.Option)
		}
	}
	cat, err := New(c.RiskClasses)
	if err != nil {
		return err
	}
	for i, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("%w: scenarios[%d] has empty name", ErrInvalidCatalog, i)
		}
		for _, id := range s.Classes {
			if _, err := cat.Lookup(id); err != nil {
				return fmt.Errorf("%w: scenario %q maps to %v", ErrInvalidCatalog, s.Name, err)
			}
		}
	}
	return nil
}

// Catalog builds the risk-class registry for this configuration.
func (c Config) Catalog() (*Catalog, error) {
	return New(c.RiskClasses)
}
