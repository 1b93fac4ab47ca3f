package advice

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Training advice ids
const (
	IDPostTrainingProtein = "post_training_protein"
	IDTrainingRecovery    = "training_recovery_meal"
	IDTrainingFuel        = "training_fuel"
	IDStepsGoal           = "steps_goal"
	IDStepsLow            = "steps_low"
)

type trainingModule struct {
	cfg Config
}

// NewTrainingModule creates the training and activity module
func NewTrainingModule(cfg Config) RuleModule {
	return &trainingModule{cfg: cfg}
}

func (m *trainingModule) Name() string { return "training" }

func (m *trainingModule) Generate(actx Context, _ Helpers) []models.Candidate {
	var out []models.Candidate
	now := actx.clockMinutes()

	for _, t := range actx.Day.Trainings {
		start, ok := models.ParseClock(t.Time)
		if !ok {
			continue
		}
		end := start + t.Minutes()
		since := now - end

		switch {
		case start > now:
			if actx.KcalRatio() < m.cfg.KcalDeficitCritical {
				out = append(out, candidate(IDTrainingFuel, "🍌", models.AdviceTypeTip, models.CategoryTraining, 64,
					"Fuel up before your workout",
					"A banana or toast an hour before training gives you energy to push.",
					models.TriggerTraining))
			}
		case since >= 0 && since <= m.cfg.PostTrainingWindowMin:
			if r, ok := ratio(actx.DayTot.Protein, actx.NormAbs.Protein); ok && r < m.cfg.ProteinSources {
				out = append(out, candidate(IDPostTrainingProtein, "🥤", models.AdviceTypeTip, models.CategoryTraining, 63,
					"Get some protein in after your workout",
					"20-30 g of protein within two hours supports recovery.",
					models.TriggerTraining))
			}
		case since > m.cfg.PostTrainingWindowMin && since <= m.cfg.RecoveryWindowMin:
			if !mealAfter(actx.Day, end) {
				out = append(out, candidate(IDTrainingRecovery, "🍱", models.AdviceTypeTip, models.CategoryTraining, 54,
					"Time for a recovery meal",
					fmt.Sprintf("You trained %d minutes and have not eaten since.", t.Minutes()),
					models.TriggerTraining, models.TriggerProductAdded))
			}
		}
	}

	goal := actx.Profile.StepsGoal
	if goal <= 0 {
		goal = models.DefaultStepsGoal
	}
	steps := actx.Day.Steps
	switch {
	case steps >= goal:
		out = append(out, candidate(IDStepsGoal, "👟", models.AdviceTypeAchievement, models.CategoryTraining, 37,
			"Step goal reached",
			fmt.Sprintf("%d steps today.", steps)))
	case steps > 0 && actx.Hour >= m.cfg.EveningHour && steps < goal/2:
		out = append(out, candidate(IDStepsLow, "🚶", models.AdviceTypeTip, models.CategoryTraining, 31,
			"A short evening walk would help",
			fmt.Sprintf("%d of %d steps so far.", steps, goal)))
	}

	return out
}

// mealAfter reports whether a meal with items was logged at or after minutes
func mealAfter(day models.DayRecord, minutes int) bool {
	for _, meal := range day.Meals {
		if mins, ok := models.ParseClock(meal.Time); ok && mins >= minutes && len(meal.Items) > 0 {
			return true
		}
	}
	return false
}
