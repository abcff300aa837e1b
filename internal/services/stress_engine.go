package services

import (
	"github.com/epeers/varstress/internal/catalog"
	"github.com/epeers/varstress/internal/models"
)

// StressEngine applies deterministic shock scenarios to a set of allocations.
type StressEngine struct{}

// NewStressEngine creates a new StressEngine
func NewStressEngine() *StressEngine {
	return &StressEngine{}
}

// Compute returns one StressResult per scenario, in scenario order. The impact
// is the sum of shock * weight over every matched allocation; a scenario that
// matches nothing has an impact of exactly zero. One allocation may feed
// several scenarios.
func (e *StressEngine) Compute(scenarios []models.StressScenario, allocations []models.Allocation) []models.StressResult {
	results := make([]models.StressResult, 0, len(scenarios))
	for _, s := range scenarios {
		var impact float64
		for _, idx := range e.Matches(s, allocations) {
			impact += s.Shock * (allocations[idx].PercentOfNAV / 100)
		}
		results = append(results, models.StressResult{
			ScenarioName:           s.Name,
			AggregateImpactPercent: impact,
		})
	}
	return results
}

// Matches returns the indexes of the allocations a scenario applies to.
func (e *StressEngine) Matches(s models.StressScenario, allocations []models.Allocation) []int {
	var idx []int
	for i, a := range allocations {
		if catalog.ScenarioMatches(s, a.RiskClassID) {
			idx = append(idx, i)
		}
	}
	return idx
}
