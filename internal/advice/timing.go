package advice

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
)

// Timing advice ids
const (
	IDCircadianGood     = "circadian_score_good"
	IDCircadianPoor     = "circadian_score_poor"
	IDNightEating       = "night_eating"
	IDLateDinner        = "late_dinner"
	IDMealGap           = "meal_gap"
	IDEveningHeavy      = "evening_heavy"
	IDBreakfastChampion = "breakfast_champion"
)

func bandFor(bands []CircadianBand, hour int) (CircadianBand, bool) {
	for _, b := range bands {
		if b.Window.Contains(hour) {
			return b, true
		}
	}
	return CircadianBand{}, false
}

// CircadianScore is the kcal-weighted band multiplier over the day, with
// the band that carried the most calories. Hours outside every band weigh 1.
// ok is false when nothing was eaten. Empty bands mean the defaults.
func CircadianScore(byHour [24]float64, bands []CircadianBand) (score float64, dominant string, ok bool) {
	if len(bands) == 0 {
		bands = DefaultCircadianBands()
	}
	var total, weighted float64
	perBand := make(map[string]float64, len(bands))
	for hour, kcal := range byHour {
		if kcal <= 0 {
			continue
		}
		total += kcal
		b, found := bandFor(bands, hour)
		if !found {
			weighted += kcal
			continue
		}
		weighted += kcal * b.Multiplier
		perBand[b.Name] += kcal
	}
	if total == 0 {
		return 0, "", false
	}
	var best float64
	for _, b := range bands {
		if perBand[b.Name] > best {
			best, dominant = perBand[b.Name], b.Name
		}
	}
	return weighted / total, dominant, true
}

type timingModule struct {
	cfg Config
}

// NewTimingModule creates the meal timing module
func NewTimingModule(cfg Config) RuleModule {
	return &timingModule{cfg: cfg}
}

func (m *timingModule) Name() string { return "timing" }

func (m *timingModule) Generate(actx Context, h Helpers) []models.Candidate {
	if actx.MealCount == 0 {
		return nil
	}

	var out []models.Candidate

	bands := m.cfg.CircadianBands
	if len(bands) == 0 {
		bands = DefaultCircadianBands()
	}
	if score, dominant, ok := CircadianScore(actx.KcalByHour, bands); ok && actx.MealCount >= 2 {
		desc := ""
		for _, b := range bands {
			if b.Name == dominant {
				desc = b.Description
			}
		}
		switch {
		case score >= m.cfg.CircadianGoodScore:
			out = append(out, candidate(IDCircadianGood, "🌅", models.AdviceTypeAchievement, models.CategoryTiming, 32,
				"Your meal timing is in sync with your body clock",
				fmt.Sprintf("Timing score %.2f. %s.", score, desc)))
		case score < m.cfg.CircadianPoorScore:
			out = append(out, candidate(IDCircadianPoor, "🌙", models.AdviceTypeTip, models.CategoryTiming, 46,
				"Most of today's calories came late",
				fmt.Sprintf("Timing score %.2f. %s. Try moving calories earlier.", score, desc)))
		}
	}

	night, lateDinner := false, false
	for _, meal := range actx.Day.Meals {
		mins, ok := models.ParseClock(meal.Time)
		if !ok || len(meal.Items) == 0 {
			continue
		}
		hour := mins / 60
		if m.cfg.Windows.Night.Contains(hour) {
			night = true
		} else if hour >= m.cfg.LateDinnerHour {
			lateDinner = true
		}
	}
	if night {
		out = append(out, candidate(IDNightEating, "🦉", models.AdviceTypeWarning, models.CategoryTiming, 57,
			"Eating late at night",
			"Late meals hurt sleep quality. Close the kitchen two to three hours before bed.",
			models.TriggerProductAdded))
	}
	if lateDinner {
		out = append(out, windowed(candidate(IDLateDinner, "🕘", models.AdviceTypeTip, models.CategoryTiming, 47,
			"Late dinner today",
			"A lighter, earlier dinner helps you fall asleep.", models.TriggerProductAdded), m.cfg.Windows.Evening))
	}

	var evening, total float64
	for hour, kcal := range actx.KcalByHour {
		total += kcal
		if hour >= m.cfg.EveningStartHour {
			evening += kcal
		}
	}
	if total >= m.cfg.EveningKcalMin && evening/total > m.cfg.EveningKcalHigh {
		out = append(out, candidate(IDEveningHeavy, "🌆", models.AdviceTypeTip, models.CategoryTiming, 43,
			"Your day is back-loaded",
			fmt.Sprintf("%.0f%% of calories came after %d:00. A bigger lunch can prevent evening hunger.", evening/total*100, m.cfg.EveningStartHour)))
	}

	if last, ok := lastMealMinutes(actx.Day); ok && actx.Hour >= m.cfg.MealGapFromHour && actx.Hour < m.cfg.LateDinnerHour {
		gap := float64(actx.clockMinutes()-last) / 60
		if gap >= m.cfg.MealGapHours && h.CooldownElapsed(IDMealGap) {
			c := candidate(IDMealGap, "⏰", models.AdviceTypeTip, models.CategoryTiming, 41,
				fmt.Sprintf("%.0f hours since your last meal", gap),
				"Long gaps lead to overeating later. Have a small snack.")
			c.TTLms = reminderTTLms
			out = append(out, c)
		}
	}

	if first, ok := firstMeal(actx.Day); ok {
		if mins, _ := models.ParseClock(first.Time); mins < m.cfg.BreakfastBeforeHour*60 {
			if t := nutrition.MealTotals(first, actx.PIndex); t.Protein >= m.cfg.BreakfastProtein {
				out = append(out, windowed(candidate(IDBreakfastChampion, "🍳", models.AdviceTypeAchievement, models.CategoryTiming, 30,
					"Protein-rich breakfast",
					fmt.Sprintf("%.0f g of protein before %d:00 sets up steady energy.", t.Protein, m.cfg.BreakfastBeforeHour),
					models.TriggerProductAdded), m.cfg.Windows.Morning))
			}
		}
	}

	return out
}

// firstMeal returns the earliest timed meal with items
func firstMeal(day models.DayRecord) (models.Meal, bool) {
	var best models.Meal
	bestMins, found := 0, false
	for _, meal := range day.Meals {
		if len(meal.Items) == 0 {
			continue
		}
		mins, ok := models.ParseClock(meal.Time)
		if !ok {
			continue
		}
		if !found || mins < bestMins {
			best, bestMins, found = meal, mins, true
		}
	}
	return best, found
}
