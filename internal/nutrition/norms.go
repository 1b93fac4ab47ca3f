package nutrition

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// NormAbs converts percentage targets into absolute grams for a calorie optimum.
// Fat takes whatever energy share carbs and protein leave.
func NormAbs(optimum float64, norms models.NormsProfile) models.NormAbs {
	n := norms.WithDefaults()
	if optimum <= 0 {
		return models.NormAbs{GI: n.GIPct, Harm: n.HarmPct}
	}

	fatPct := 100 - n.CarbsPct - n.ProteinPct
	if fatPct < 0 {
		fatPct = 0
	}

	abs := models.NormAbs{
		Kcal:    optimum,
		Carbs:   optimum * n.CarbsPct / 100 / CarbKcalPerGram,
		Protein: optimum * n.ProteinPct / 100 / ProteinKcalPerGram,
		Fat:     optimum * fatPct / 100 / FatKcalPerGram,
		Fiber:   optimum / 1000 * n.FiberPer1000,
		GI:      n.GIPct,
		Harm:    n.HarmPct,
	}
	abs.Simple = abs.Carbs * n.SimplePct / 100
	abs.Complex = abs.Carbs - abs.Simple
	abs.BadFat = abs.Fat * n.BadFatPct / 100
	abs.TransFat = abs.Fat * n.TransFatPct / 100
	abs.GoodFat = abs.Fat - abs.BadFat - abs.TransFat
	if abs.GoodFat < 0 {
		abs.GoodFat = 0
	}
	return abs
}
