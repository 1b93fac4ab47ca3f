package nutrition

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// accumulator sums portions and keeps the weights needed for GI/harm averages
type accumulator struct {
	t          models.DayTotals
	giWeighted float64
	harmWeight float64
}

func (a *accumulator) add(it models.DayTotals) {
	a.t.Kcal += it.Kcal
	a.t.Carbs += it.Carbs
	a.t.Simple += it.Simple
	a.t.Complex += it.Complex
	a.t.Protein += it.Protein
	a.t.Fat += it.Fat
	a.t.BadFat += it.BadFat
	a.t.GoodFat += it.GoodFat
	a.t.TransFat += it.TransFat
	a.t.Fiber += it.Fiber
	a.t.GL += it.GL
	a.t.Grams += it.Grams
	a.giWeighted += it.GI * it.Carbs
	a.harmWeight += it.Harm * it.Grams
}

func (a *accumulator) totals() models.DayTotals {
	t := a.t
	if t.Carbs > 0 {
		t.GI = a.giWeighted / t.Carbs
	}
	if t.Grams > 0 {
		t.Harm = a.harmWeight / t.Grams
	}
	return t
}

// MealTotals sums one meal. Items that cannot be resolved are skipped.
func MealTotals(meal models.Meal, idx *models.ProductIndex) models.DayTotals {
	var acc accumulator
	for _, item := range meal.Items {
		p, ok := idx.Lookup(item)
		if !ok {
			continue
		}
		acc.add(ItemTotals(p, item.Grams))
	}
	return acc.totals()
}

// DayTotals sums every meal of the day. A manual kcal override replaces the
// derived kcal but leaves macros untouched.
func DayTotals(day models.DayRecord, idx *models.ProductIndex) models.DayTotals {
	var acc accumulator
	for _, meal := range day.Meals {
		for _, item := range meal.Items {
			p, ok := idx.Lookup(item)
			if !ok {
				continue
			}
			acc.add(ItemTotals(p, item.Grams))
		}
	}
	t := acc.totals()
	if day.KcalOverride != nil && *day.KcalOverride >= 0 {
		t.Kcal = *day.KcalOverride
	}
	return t
}

// KcalByHour returns kcal eaten per clock hour (0-23). Meals without a
// parseable time are omitted.
func KcalByHour(day models.DayRecord, idx *models.ProductIndex) [24]float64 {
	var out [24]float64
	for _, meal := range day.Meals {
		mins, ok := models.ParseClock(meal.Time)
		if !ok {
			continue
		}
		out[mins/60] += MealTotals(meal, idx).Kcal
	}
	return out
}
