package nutrition

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// Water goal constants
const (
	DefaultWaterGoalMl = 2000.0
	WaterMlPerKg       = 30.0
	TrainingWaterBonus = 500.0
)

// WaterGoal returns the daily water target in ml: the explicit profile goal,
// otherwise weight-based with a bonus on training days, otherwise the default.
func WaterGoal(p models.Profile, hasTraining bool) float64 {
	if p.WaterGoalMl > 0 {
		return p.WaterGoalMl
	}
	if p.Weight <= 0 {
		return DefaultWaterGoalMl
	}
	goal := p.Weight * WaterMlPerKg
	if hasTraining {
		goal += TrainingWaterBonus
	}
	return goal
}
