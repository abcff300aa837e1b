// Package catalog holds the read-only reference data the risk engines run on:
// risk-class volatilities, stress scenarios, selectable horizons and
// confidence levels.
package catalog

import (
	"errors"
	"fmt"

	"github.com/epeers/varstress/internal/models"
)

var (
	ErrUnknownRiskClass = errors.New("unknown risk class")
	ErrInvalidCatalog   = errors.New("invalid catalog")
)

// Catalog is an immutable registry of risk classes keyed by ID.
type Catalog struct {
	classes []models.RiskClass
	byID    map[string]models.RiskClass
}

// New builds a Catalog, rejecting empty or duplicate IDs and non-positive
// volatilities. Declaration order is preserved.
func New(classes []models.RiskClass) (*Catalog, error) {
	c := &Catalog{
		classes: make([]models.RiskClass, 0, len(classes)),
		byID:    make(map[string]models.RiskClass, len(classes)),
	}
	for i, rc := range classes {
		if rc.ID == "" {
			return nil, fmt.Errorf("%w: risk_classes[%d] has empty id", ErrInvalidCatalog, i)
		}
		if rc.AnnualVolatility <= 0 {
			return nil, fmt.Errorf("%w: risk class %q has non-positive volatility %.4f", ErrInvalidCatalog, rc.ID, rc.AnnualVolatility)
		}
		if _, dup := c.byID[rc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate risk class %q", ErrInvalidCatalog, rc.ID)
		}
		c.byID[rc.ID] = rc
		c.classes = append(c.classes, rc)
	}
	return c, nil
}

// Default returns the seven reference risk classes.
func Default() *Catalog {
	c, err := New(DefaultRiskClasses())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultRiskClasses returns the reference volatility table.
func DefaultRiskClasses() []models.RiskClass {
	return []models.RiskClass{
		{ID: "Ações (Ibovespa)", AnnualVolatility: 0.25},
		{ID: "Juros-Pré", AnnualVolatility: 0.08},
		{ID: "Câmbio (Dólar)", AnnualVolatility: 0.15},
		{ID: "Cupom Cambial", AnnualVolatility: 0.12},
		{ID: "Crédito Privado", AnnualVolatility: 0.05},
		{ID: "Multimercado", AnnualVolatility: 0.18},
		{ID: "Outros", AnnualVolatility: 0.10},
	}
}

// Lookup returns the risk class registered under id.
func (c *Catalog) Lookup(id string) (models.RiskClass, error) {
	rc, ok := c.byID[id]
	if !ok {
		return models.RiskClass{}, fmt.Errorf("%w: %q", ErrUnknownRiskClass, id)
	}
	return rc, nil
}

// Classes returns a copy of the registered classes in declaration order.
func (c *Catalog) Classes() []models.RiskClass {
	out := make([]models.RiskClass, len(c.classes))
	copy(out, c.classes)
	return out
}

// Len returns the number of registered classes.
func (c *Catalog) Len() int {
	return len(c.classes)
}
