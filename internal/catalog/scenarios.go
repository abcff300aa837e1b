package catalog

import (
	"strings"

	"github.com/epeers/varstress/internal/models"
)

// DefaultScenarios returns the reference stress scenarios in output order.
// Each carries an explicit class mapping equal to what name matching yields
// over DefaultRiskClasses.
func DefaultScenarios() []models.StressScenario {
	return []models.StressScenario{
		{Name: "Ibovespa", Shock: -0.15, Classes: []string{"Ações (Ibovespa)"}},
		{Name: "Juros-Pré", Shock: 0.02, Classes: []string{"Juros-Pré"}},
		{Name: "Cupom Cambial", Shock: -0.01, Classes: []string{"Cupom Cambial"}},
		{Name: "Dólar", Shock: -0.05, Classes: []string{"Câmbio (Dólar)"}},
		{Name: "Outros", Shock: -0.03, Classes: []string{"Outros"}},
	}
}

// ScenarioMatches reports whether a scenario applies to the given class id.
// Scenarios without an explicit class list fall back to case-insensitive
// containment of the scenario name in the class id, which may match several
// classes or none.
func ScenarioMatches(s models.StressScenario, classID string) bool {
	if len(s.Classes) > 0 {
		for _, id := range s.Classes {
			if id == classID {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(classID), strings.ToLower(s.Name))
}

// SubstringMapping returns copies of scenarios whose class lists are filled in
// from name containment over classes. Scenarios that already carry a list are
// returned unchanged.
func SubstringMapping(scenarios []models.StressScenario, classes []models.RiskClass) []models.StressScenario {
	out := make([]models.StressScenario, len(scenarios))
	for i, s := range scenarios {
		out[i] = s
		if len(s.Classes) > 0 {
			out[i].Classes = append([]string(nil), s.Classes...)
			continue
		}
		var ids []string
		for _, rc := range classes {
			if ScenarioMatches(s, rc.ID) {
				ids = append(ids, rc.ID)
			}
		}
		out[i].Classes = ids
	}
	return out
}
