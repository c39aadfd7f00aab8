package engine

import (
	"fmt"

	"github.com/piwi3910/BinStack/internal/geometry"
	"github.com/piwi3910/BinStack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Result      model.PackResult
	CartonsUsed int
	ItemsPlaced int
	Utilization float64
	Err         error
}

// CompareScenarios packs the same input under each scenario's settings and
// returns the results in scenario order. This enables side-by-side
// comparison of optimizer parameters (rotation mode, elite bias, population
// size, and so on).
func CompareScenarios(scenarios []ComparisonScenario, carton model.Carton, items []model.Item) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Pack(scenario.Settings, carton, items)
		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Result:      result,
			CartonsUsed: result.NumBins(),
			ItemsPlaced: result.TotalItems(),
			Utilization: result.TotalUtilization(),
			Err:         err,
		})
	}

	return results
}

// BuildDefaultScenarios generates comparison scenarios based on the current
// settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: the other rotation mode
	altRotation := baseSettings
	if baseSettings.BoxRotation == geometry.ThreeDimension {
		altRotation.BoxRotation = geometry.TwoDimension
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Upright Only (2D rotation)",
			Settings: altRotation,
		})
	} else {
		altRotation.BoxRotation = geometry.ThreeDimension
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Free Rotation (3D)",
			Settings: altRotation,
		})
	}

	// Scenario: larger population, more patience
	if baseSettings.PopulationFactor < 60 {
		thorough := baseSettings
		thorough.PopulationFactor = baseSettings.PopulationFactor * 2
		thorough.MaxGenerationsNoImprovement = baseSettings.MaxGenerationsNoImprovement * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Thorough (population x%d)", thorough.PopulationFactor),
			Settings: thorough,
		})
	}

	// Scenario: weaker elite bias for more exploration
	if baseSettings.InheritEliteProbability > 0.55 {
		explore := baseSettings
		explore.InheritEliteProbability = 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Exploratory (elite bias 0.5)",
			Settings: explore,
		})
	}

	return scenarios
}
