package advice

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Emotional and sleep advice ids
const (
	IDStressEating  = "stress_eating_alert"
	IDStressSupport = "stress_support"
	IDLowMoodCare   = "low_mood_care"
	IDGoodMood      = "good_mood"
	IDPoorSleep     = "poor_sleep"
	IDSleepGreat    = "sleep_great"
	IDWellbeingLow  = "wellbeing_low"
)

type emotionalModule struct {
	cfg Config
}

// NewEmotionalModule creates the mood, stress and sleep module
func NewEmotionalModule(cfg Config) RuleModule {
	return &emotionalModule{cfg: cfg}
}

func (m *emotionalModule) Name() string { return "emotional" }

func (m *emotionalModule) Generate(actx Context, _ Helpers) []models.Candidate {
	day := actx.Day
	var out []models.Candidate

	if day.Stress >= m.cfg.HighStress {
		if r, ok := ratio(actx.DayTot.Simple, actx.NormAbs.Simple); ok && r > m.cfg.SugarSwap {
			out = append(out, candidate(IDStressEating, "😤", models.AdviceTypeWarning, models.CategoryEmotional, 61,
				"Stress and sweets are showing up together",
				"Stress drives sugar cravings. A short walk or breathing break can break the loop.",
				models.TriggerMoodLogged, models.TriggerProductAdded))
		}
		out = append(out, candidate(IDStressSupport, "🫶", models.AdviceTypeTip, models.CategoryEmotional, 48,
			"A stressful day",
			"Five minutes of slow breathing lowers cortisol. Be kind to yourself today.",
			models.TriggerMoodLogged))
	}

	mood := day.Mood
	switch {
	case mood > 0 && mood < m.cfg.LowMoodCutoff:
		out = append(out, candidate(IDLowMoodCare, "🌧️", models.AdviceTypeTip, models.CategoryEmotional, 52,
			"Take care of yourself today",
			"A warm meal, fresh air or a call with a friend can lift a heavy day.",
			models.TriggerMoodLogged))
	case mood >= m.cfg.HighMoodCutoff:
		out = append(out, candidate(IDGoodMood, "😊", models.AdviceTypeAchievement, models.CategoryEmotional, 35,
			"Great mood today",
			"Notice what helped today so you can repeat it.",
			models.TriggerMoodLogged))
	}

	if hours, ok := day.SleepHours(); ok {
		switch {
		case hours < m.cfg.PoorSleepHours:
			out = append(out, candidate(IDPoorSleep, "😴", models.AdviceTypeTip, models.CategoryEmotional, 53,
				fmt.Sprintf("Only %.1f hours of sleep", hours),
				"Short sleep raises appetite. Plan regular meals and an earlier night."))
		case hours >= m.cfg.GoodSleepHours && (day.SleepQuality == 0 || day.SleepQuality >= 7):
			out = append(out, candidate(IDSleepGreat, "🛌", models.AdviceTypeAchievement, models.CategoryEmotional, 29,
				"Well rested",
				fmt.Sprintf("%.1f hours of sleep last night.", hours)))
		}
	}

	if day.Wellbeing > 0 && day.Wellbeing <= m.cfg.LowWellbeing {
		out = append(out, candidate(IDWellbeingLow, "🤒", models.AdviceTypeTip, models.CategoryEmotional, 44,
			"Not feeling your best",
			"Go easy on training today and keep fluids and meals regular.",
			models.TriggerMoodLogged))
	}

	return out
}
