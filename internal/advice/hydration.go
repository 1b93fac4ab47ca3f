package advice

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
)

// Hydration advice ids
const (
	IDWaterEveningLow  = "water_evening_low"
	IDWaterReminder    = "water_reminder"
	IDWaterTraining    = "water_training"
	IDWaterGoalReached = "water_goal_reached"
	IDSuperHydration   = "super_hydration"
)

const reminderTTLms = 30_000

type hydrationModule struct {
	cfg Config
}

// NewHydrationModule creates the water intake module
func NewHydrationModule(cfg Config) RuleModule {
	return &hydrationModule{cfg: cfg}
}

func (m *hydrationModule) Name() string { return "hydration" }

func (m *hydrationModule) Generate(actx Context, h Helpers) []models.Candidate {
	goal := actx.WaterGoal
	if goal <= 0 {
		goal = nutrition.DefaultWaterGoalMl
	}
	water := actx.Day.WaterMl
	progress := water / goal

	var out []models.Candidate

	if actx.Hour >= m.cfg.EveningHour && progress < m.cfg.WaterEveningLow {
		out = append(out, candidate(IDWaterEveningLow, "💧", models.AdviceTypeTip, models.CategoryHydration, 36,
			fmt.Sprintf("Only %.0f%% of your water goal so far, have a glass now", progress*100),
			fmt.Sprintf("%.0f of %.0f ml. Spread the rest over the evening rather than drinking it all before bed.", water, goal),
			models.TriggerTabOpen, models.TriggerWaterAdded))
	}

	if actx.Hour >= m.cfg.WaterReminderFrom && actx.Hour <= m.cfg.WaterReminderTo &&
		HoursSinceWater(actx.Day, actx.clockMinutes()) >= m.cfg.WaterReminderHours &&
		h.CooldownElapsed(IDWaterReminder) {
		c := candidate(IDWaterReminder, "🚰", models.AdviceTypeTip, models.CategoryHydration, 34,
			"It has been a while since your last drink",
			"A glass of water every couple of hours keeps energy and focus up.",
			models.TriggerTabOpen, models.TriggerWaterAdded)
		c.TTLms = reminderTTLms
		out = append(out, c)
	}

	if actx.HasTraining && progress < 1 {
		out = append(out, candidate(IDWaterTraining, "🏃", models.AdviceTypeTip, models.CategoryHydration, 38,
			"Training day: drink a bit more than usual",
			"Replace what you sweat out. Aim for an extra 500 ml around your workout.",
			models.TriggerTraining, models.TriggerWaterAdded))
	}

	if progress >= 1 {
		out = append(out, candidate(IDWaterGoalReached, "✅", models.AdviceTypeAchievement, models.CategoryHydration, 36,
			"Water goal reached",
			fmt.Sprintf("%.0f ml today. Nicely done.", water),
			models.TriggerWaterAdded))
	}

	if water >= m.cfg.SuperHydrationMl {
		out = append(out, candidate(IDSuperHydration, "🌊", models.AdviceTypeAchievement, models.CategoryHydration, 39,
			"Super hydration!",
			fmt.Sprintf("Over %.0f ml today.", m.cfg.SuperHydrationMl),
			models.TriggerWaterAdded))
	}

	return out
}
