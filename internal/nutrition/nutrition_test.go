package nutrition

import (
	"math"
	"testing"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testIndex() *models.ProductIndex {
	return BuildProductIndex([]models.Product{
		{ID: "Oats", Name: "Rolled  Oats", Simple: 1, Complex: 59, Protein: 12, GoodFat: 5, BadFat: 1, Fiber: 10, GI: 55, Harm: 0},
		{ID: "cola", Name: "Cola", Simple: 10.6, GI: 63, Harm: 6},
		{ID: "chicken", Name: "Chicken breast", Protein: 23, GoodFat: 1, BadFat: 1, Harm: 0},
	})
}

func TestKcalUsesTEFAdjustedProtein(t *testing.T) {
	// 10 g protein, 10 g carbs, 10 g fat => 30 + 40 + 90
	if got := Kcal(10, 10, 10); !approx(got, 160) {
		t.Errorf("Kcal(10,10,10) = %v, want 160", got)
	}
}

func TestItemKcalMatchesItemTotals(t *testing.T) {
	p := models.Product{Simple: 5, Complex: 20, Protein: 8, BadFat: 2, GoodFat: 3, TransFat: 0.5}
	for _, grams := range []float64{0, 35, 100, 250} {
		if a, b := ItemKcal(p, grams), ItemTotals(p, grams).Kcal; !approx(a, b) {
			t.Errorf("grams=%v: ItemKcal=%v ItemTotals.Kcal=%v", grams, a, b)
		}
	}
}

func TestProductIndexLookup(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name   string
		item   models.MealItem
		wantID string
		wantOK bool
	}{
		{name: "id case-insensitive", item: models.MealItem{ProductID: "OATS"}, wantID: "Oats", wantOK: true},
		{name: "normalized name", item: models.MealItem{Name: "  rolled oats "}, wantID: "Oats", wantOK: true},
		{name: "unknown id falls back to name", item: models.MealItem{ProductID: "x", Name: "cola"}, wantID: "cola", wantOK: true},
		{name: "unknown", item: models.MealItem{Name: "pizza"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := idx.Lookup(tt.item)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && p.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", p.ID, tt.wantID)
			}
		})
	}
}

func TestDayTotals(t *testing.T) {
	day := models.DayRecord{
		Date: "2026-03-02",
		Meals: []models.Meal{
			{Time: "08:00", Items: []models.MealItem{{ProductID: "oats", Grams: 50}, {Name: "pizza", Grams: 300}}},
			{Time: "13:00", Items: []models.MealItem{{ProductID: "chicken", Grams: 200}, {ProductID: "cola", Grams: 330}}},
		},
	}

	tot := DayTotals(day, testIndex())

	wantKcal := ItemKcal(testIndex().ByID["oats"], 50) + ItemKcal(testIndex().ByID["chicken"], 200) + ItemKcal(testIndex().ByID["cola"], 330)
	if !approx(tot.Kcal, wantKcal) {
		t.Errorf("Kcal = %v, want %v", tot.Kcal, wantKcal)
	}
	if !approx(tot.Protein, 6+46) {
		t.Errorf("Protein = %v, want 52", tot.Protein)
	}
	if tot.GI <= 55 || tot.GI >= 63 {
		t.Errorf("GI = %v, want carb-weighted average between 55 and 63", tot.GI)
	}
	if tot.Grams != 580 {
		t.Errorf("Grams = %v, want 580 (unresolved items skipped)", tot.Grams)
	}
}

func TestDayTotalsKcalOverride(t *testing.T) {
	override := 1800.0
	day := models.DayRecord{
		Date:         "2026-03-02",
		Meals:        []models.Meal{{Time: "08:00", Items: []models.MealItem{{ProductID: "oats", Grams: 50}}}},
		KcalOverride: &override,
	}
	tot := DayTotals(day, testIndex())
	if tot.Kcal != 1800 {
		t.Errorf("Kcal = %v, want override 1800", tot.Kcal)
	}
	if !approx(tot.Protein, 6) {
		t.Errorf("Protein = %v, want 6 (macros not overridden)", tot.Protein)
	}
}

func TestKcalByHour(t *testing.T) {
	day := models.DayRecord{
		Date: "2026-03-02",
		Meals: []models.Meal{
			{Time: "08:30", Items: []models.MealItem{{ProductID: "oats", Grams: 100}}},
			{Time: "bad", Items: []models.MealItem{{ProductID: "oats", Grams: 100}}},
			{Time: "22:10", Items: []models.MealItem{{ProductID: "cola", Grams: 100}}},
		},
	}
	hours := KcalByHour(day, testIndex())
	if hours[8] == 0 || hours[22] == 0 {
		t.Errorf("expected kcal at hours 8 and 22, got %v", hours)
	}
	total := 0.0
	for _, v := range hours {
		total += v
	}
	if want := hours[8] + hours[22]; !approx(total, want) {
		t.Errorf("meal with bad time should be omitted, total %v want %v", total, want)
	}
}

func TestNormAbs(t *testing.T) {
	abs := NormAbs(2000, models.NormsProfile{})

	if !approx(abs.Carbs, 2000*0.50/4) {
		t.Errorf("Carbs = %v", abs.Carbs)
	}
	if !approx(abs.Protein, 2000*0.25/3) {
		t.Errorf("Protein = %v", abs.Protein)
	}
	if !approx(abs.Fat, 2000*0.25/9) {
		t.Errorf("Fat = %v", abs.Fat)
	}
	if !approx(abs.Simple+abs.Complex, abs.Carbs) {
		t.Errorf("Simple+Complex = %v, want %v", abs.Simple+abs.Complex, abs.Carbs)
	}
	if !approx(abs.Fiber, 28) {
		t.Errorf("Fiber = %v, want 28", abs.Fiber)
	}
}

func TestCalorieOptimum(t *testing.T) {
	p := models.Profile{Weight: 80, Height: 180, Age: 30, Gender: "male", DeficitPctTarget: -10}
	day := models.DayRecord{Date: "2026-03-02", Meals: []models.Meal{}}

	bmr := 10*80 + 6.25*180 - 5*30 + 5.0
	want := bmr * 1.2 * 0.9
	if got := CalorieOptimum(p, day); !approx(got, want) {
		t.Errorf("CalorieOptimum = %v, want %v", got, want)
	}

	if got := CalorieOptimum(models.Profile{}, day); got != FallbackOptimum {
		t.Errorf("empty profile optimum = %v, want fallback %v", got, FallbackOptimum)
	}
}

func TestTrainingKcalZonesAndDuration(t *testing.T) {
	day := models.DayRecord{Trainings: []models.Training{
		{Zones: [4]int{10, 20, 0, 0}},
		{DurationMin: 30},
	}}
	want := (10*0.04 + 20*0.07 + 30*0.07) * 70
	if got := TrainingKcal(day, 70); !approx(got, want) {
		t.Errorf("TrainingKcal = %v, want %v", got, want)
	}
}
