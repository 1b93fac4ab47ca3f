// Package nutrition derives energy and macro totals from logged food.
// It is the only place the kcal formula lives; the statistics and advice
// layers must both go through it.
package nutrition

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// Energy density per gram. Protein uses 3 kcal/g rather than 4 to account for
// its thermic effect; downstream thresholds are calibrated against it.
const (
	ProteinKcalPerGram = 3.0
	CarbKcalPerGram    = 4.0
	FatKcalPerGram     = 9.0
)

// Kcal converts grams of protein, carbs and fat to kilocalories
func Kcal(protein, carbs, fat float64) float64 {
	return ProteinKcalPerGram*protein + CarbKcalPerGram*carbs + FatKcalPerGram*fat
}

// ProductKcal returns kilocalories per 100g of a product
func ProductKcal(p models.Product) float64 {
	return Kcal(p.Protein, p.Carbs(), p.Fat())
}

// ItemKcal returns kilocalories for grams of a product
func ItemKcal(p models.Product, grams float64) float64 {
	if grams <= 0 {
		return 0
	}
	return ProductKcal(p) * grams / 100
}

// ItemTotals returns the nutrient contribution of one portion
func ItemTotals(p models.Product, grams float64) models.DayTotals {
	if grams <= 0 {
		return models.DayTotals{}
	}
	f := grams / 100
	t := models.DayTotals{
		Simple:   p.Simple * f,
		Complex:  p.Complex * f,
		Protein:  p.Protein * f,
		BadFat:   p.BadFat * f,
		GoodFat:  p.GoodFat * f,
		TransFat: p.TransFat * f,
		Fiber:    p.Fiber * f,
		Grams:    grams,
	}
	t.Carbs = t.Simple + t.Complex
	t.Fat = t.BadFat + t.GoodFat + t.TransFat
	t.Kcal = Kcal(t.Protein, t.Carbs, t.Fat)
	t.GI = p.GI
	t.Harm = p.Harm
	t.GL = t.Carbs * p.GI / 100
	return t
}
