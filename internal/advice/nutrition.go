package advice

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Nutrition advice ids
const (
	IDKcalExcessCritical  = "kcal_excess_critical"
	IDKcalExcessMild      = "kcal_excess_mild"
	IDRefeedDayOK         = "refeed_day_ok"
	IDKcalDeficitCritical = "kcal_deficit_critical"
	IDKcalDeficitMild     = "kcal_deficit_mild"
	IDKcalOnTrack         = "kcal_on_track"
	IDCaloricDebt         = "caloric_debt"
	IDProteinLow          = "protein_low"
	IDProteinSources      = "protein_sources"
	IDProteinChampion     = "protein_champion"
	IDFiberLow            = "fiber_low"
	IDFiberSources        = "fiber_sources"
	IDSimpleCarbsHigh     = "simple_carbs_high"
	IDSugarSwap           = "sugar_swap"
	IDTransFatAlert       = "trans_fat_alert"
	IDBadFatHigh          = "bad_fat_high"
	IDGIHigh              = "gi_high"
	IDGLHigh              = "gl_high"
	IDGoodGL              = "good_gl"
	IDHarmHigh            = "harm_high"
)

type nutritionModule struct {
	cfg Config
}

// NewNutritionModule creates the calorie and macro balance module
func NewNutritionModule(cfg Config) RuleModule {
	return &nutritionModule{cfg: cfg}
}

func (m *nutritionModule) Name() string { return "nutrition" }

func (m *nutritionModule) Generate(actx Context, _ Helpers) []models.Candidate {
	if actx.MealCount == 0 || actx.Optimum <= 0 {
		return nil
	}

	var out []models.Candidate
	out = append(out, m.balance(actx)...)
	out = append(out, m.protein(actx)...)
	out = append(out, m.fiber(actx)...)
	out = append(out, m.sugar(actx)...)
	out = append(out, m.fat(actx)...)
	out = append(out, m.glycemic(actx)...)
	return out
}

func (m *nutritionModule) balance(actx Context) []models.Candidate {
	r := actx.KcalRatio()
	dr := actx.DisplayRatio()
	kcal := actx.DayTot.Kcal
	target := actx.Optimum
	display := actx.DisplayOptimum
	if display <= 0 {
		display = target
	}
	trig := models.TriggerProductAdded

	var out []models.Candidate
	switch {
	case actx.Day.IsRefeedDay:
		// Refeed days are exempt from excess advice at any ratio
		if r <= m.cfg.RefeedCeiling {
			out = append(out, candidate(IDRefeedDayOK, "🍝", models.AdviceTypeTip, models.CategoryNutrition, 60,
				"Refeed day: eating more today is the plan",
				fmt.Sprintf("%.0f kcal so far. Favour complex carbs and keep protein steady.", kcal), trig))
		}
	case r >= m.cfg.KcalExcessCritical:
		out = append(out, candidate(IDKcalExcessCritical, "🛑", models.AdviceTypeWarning, models.CategoryNutrition, 90,
			fmt.Sprintf("You are %.0f kcal over today's target", kcal-target),
			"Keep the rest of the day light: vegetables, lean protein, and no more snacks.", trig))
	case r >= m.cfg.KcalExcessMild:
		out = append(out, candidate(IDKcalExcessMild, "⚠️", models.AdviceTypeWarning, models.CategoryNutrition, 70,
			"Slightly above today's calorie target",
			fmt.Sprintf("%.0f of %.0f kcal. A walk or a lighter dinner evens it out.", kcal, target), trig))
	case actx.Hour >= m.cfg.LateCheckHour && dr < m.cfg.KcalDeficitCritical:
		out = append(out, candidate(IDKcalDeficitCritical, "🍽️", models.AdviceTypeWarning, models.CategoryNutrition, 80,
			"You have eaten less than half your target today",
			"Very low intake days backfire. Have a proper meal with protein and carbs.", trig))
	case actx.Hour >= m.cfg.EveningHour && dr < m.cfg.KcalDeficitMild:
		out = append(out, candidate(IDKcalDeficitMild, "🥪", models.AdviceTypeTip, models.CategoryNutrition, 55,
			fmt.Sprintf("%.0f kcal left to reach your target", display-kcal),
			"A balanced dinner will close the gap.", trig))
	case r >= m.cfg.KcalOnTrack:
		out = append(out, candidate(IDKcalOnTrack, "🎯", models.AdviceTypeAchievement, models.CategoryNutrition, 50,
			"Right on target today",
			fmt.Sprintf("%.0f of %.0f kcal.", kcal, target), trig))
	}

	if actx.CaloricDebt >= m.cfg.CaloricDebtNotice {
		out = append(out, candidate(IDCaloricDebt, "📒", models.AdviceTypeInsight, models.CategoryInsight, 58,
			fmt.Sprintf("%.0f kcal carried over from recent days", actx.CaloricDebt),
			"Your target today includes part of the shortfall from the last few days."))
	}
	return out
}

func (m *nutritionModule) protein(actx Context) []models.Candidate {
	r, ok := ratio(actx.DayTot.Protein, actx.NormAbs.Protein)
	if !ok {
		return nil
	}
	switch {
	case r >= 1:
		return []models.Candidate{candidate(IDProteinChampion, "💪", models.AdviceTypeAchievement, models.CategoryNutrition, 48,
			"Protein target reached",
			fmt.Sprintf("%.0f g of protein today.", actx.DayTot.Protein), models.TriggerProductAdded)}
	case actx.Hour >= m.cfg.AfternoonHour && r < m.cfg.ProteinLow:
		return []models.Candidate{candidate(IDProteinLow, "🥩", models.AdviceTypeWarning, models.CategoryNutrition, 65,
			"Protein is running low today",
			fmt.Sprintf("%.0f of %.0f g. Build your next meal around a protein source.", actx.DayTot.Protein, actx.NormAbs.Protein),
			models.TriggerProductAdded)}
	case r < m.cfg.ProteinSources:
		return []models.Candidate{candidate(IDProteinSources, "🥚", models.AdviceTypeTip, models.CategoryNutrition, 45,
			"Add some protein to your next meal",
			"Eggs, cottage cheese, fish, poultry or legumes all work.", models.TriggerProductAdded)}
	}
	return nil
}

func (m *nutritionModule) fiber(actx Context) []models.Candidate {
	r, ok := ratio(actx.DayTot.Fiber, actx.NormAbs.Fiber)
	if !ok {
		return nil
	}
	switch {
	case actx.Hour >= m.cfg.AfternoonHour && r < m.cfg.FiberLow:
		return []models.Candidate{candidate(IDFiberLow, "🥦", models.AdviceTypeTip, models.CategoryNutrition, 50,
			"Fiber is low today",
			fmt.Sprintf("%.0f of %.0f g. Vegetables with dinner will help.", actx.DayTot.Fiber, actx.NormAbs.Fiber),
			models.TriggerProductAdded)}
	case r < m.cfg.FiberSources:
		return []models.Candidate{candidate(IDFiberSources, "🌾", models.AdviceTypeTip, models.CategoryNutrition, 35,
			"Easy fiber: berries, oats, beans or wholegrain bread",
			"Fiber keeps you full for longer.", models.TriggerProductAdded)}
	}
	return nil
}

func (m *nutritionModule) sugar(actx Context) []models.Candidate {
	r, ok := ratio(actx.DayTot.Simple, actx.NormAbs.Simple)
	if !ok {
		return nil
	}
	switch {
	case r > m.cfg.SugarHigh:
		return []models.Candidate{candidate(IDSimpleCarbsHigh, "🍬", models.AdviceTypeWarning, models.CategoryNutrition, 60,
			"Sugar is over your daily limit",
			fmt.Sprintf("%.0f of %.0f g of simple carbs.", actx.DayTot.Simple, actx.NormAbs.Simple),
			models.TriggerProductAdded)}
	case r > m.cfg.SugarSwap:
		return []models.Candidate{candidate(IDSugarSwap, "🍓", models.AdviceTypeTip, models.CategoryNutrition, 40,
			"Close to your sugar limit: swap the next sweet for fruit",
			"Fruit and nuts satisfy cravings with less of a spike.", models.TriggerProductAdded)}
	}
	return nil
}

func (m *nutritionModule) fat(actx Context) []models.Candidate {
	tot, norm := actx.DayTot, actx.NormAbs
	switch {
	case tot.TransFat > 0 && tot.TransFat > norm.TransFat:
		return []models.Candidate{candidate(IDTransFatAlert, "🚫", models.AdviceTypeWarning, models.CategoryNutrition, 62,
			"Trans fats above the safe limit",
			"Usually hidden in pastries, margarine and fried fast food.", models.TriggerProductAdded)}
	case norm.BadFat > 0 && tot.BadFat > norm.BadFat*m.cfg.BadFatHigh:
		return []models.Candidate{candidate(IDBadFatHigh, "🧈", models.AdviceTypeTip, models.CategoryNutrition, 52,
			"Saturated fat is high today",
			"Olive oil, nuts and fish are better fat sources.", models.TriggerProductAdded)}
	}
	return nil
}

func (m *nutritionModule) glycemic(actx Context) []models.Candidate {
	tot := actx.DayTot
	var out []models.Candidate
	switch {
	case tot.GL >= m.cfg.GLHigh:
		out = append(out, candidate(IDGLHigh, "📈", models.AdviceTypeWarning, models.CategoryNutrition, 46,
			fmt.Sprintf("High glycemic load today (%.0f)", tot.GL),
			"Pair carbs with protein, fat or fiber to blunt blood sugar swings.", models.TriggerProductAdded))
	case tot.Carbs > 0 && tot.GI >= m.cfg.GIHigh:
		out = append(out, candidate(IDGIHigh, "⚡", models.AdviceTypeTip, models.CategoryNutrition, 44,
			"Mostly fast carbs today",
			fmt.Sprintf("Average GI %.0f. Choose wholegrains and legumes for steadier energy.", tot.GI),
			models.TriggerProductAdded))
	case actx.Hour >= m.cfg.EveningHour && tot.GL > 0 && tot.GL < m.cfg.GLGood:
		out = append(out, candidate(IDGoodGL, "🌿", models.AdviceTypeAchievement, models.CategoryNutrition, 33,
			"Steady blood sugar today",
			fmt.Sprintf("Glycemic load %.0f, in the good range.", tot.GL)))
	}

	if tot.Grams > 0 && actx.NormAbs.Harm > 0 && tot.Harm > actx.NormAbs.Harm*m.cfg.HarmHighFactor {
		out = append(out, candidate(IDHarmHigh, "🍟", models.AdviceTypeTip, models.CategoryNutrition, 42,
			"Lots of processed food today",
			"Try a home-cooked meal next.", models.TriggerProductAdded))
	}
	return out
}
