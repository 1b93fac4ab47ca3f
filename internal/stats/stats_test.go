package stats

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
)

// "base" is 100 kcal per 100 g of pure complex carbs; "whey" is pure protein
func testIndex() *models.ProductIndex {
	return nutrition.BuildProductIndex([]models.Product{
		{ID: "base", Name: "Base", Complex: 25, GI: 50},
		{ID: "whey", Name: "Whey", Protein: 80},
	})
}

func clock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// day builds a record with kcal of "base" eaten at noon
func day(date time.Time, kcal float64) models.DayRecord {
	return models.DayRecord{
		Date:  date.Format(models.DateLayout),
		Meals: []models.Meal{{Time: "12:00", Items: []models.MealItem{{ProductID: "base", Grams: kcal}}}},
	}
}

func withSleep(d models.DayRecord, hours float64) models.DayRecord {
	d.SleepStart = "23:00"
	d.SleepEnd = clock(23*60 + int(hours*60))
	return d
}

var start = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

func TestPearsonCorrelation(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		xs, ys []float64
		want   float64
		wantOK bool
	}{
		{"perfect positive", []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10}, 1, true},
		{"perfect negative", []float64{1, 2, 3, 4, 5}, []float64{10, 8, 6, 4, 2}, -1, true},
		{"too few samples", []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}, 0, false},
		{"zero variance", []float64{3, 3, 3, 3, 3}, []float64{1, 2, 3, 4, 5}, 0, false},
		{"missing pairs dropped", []float64{1, 2, nan, 3, 4, 5}, []float64{1, 2, 9, 3, 4, 5}, 1, true},
		{"missing pairs below minimum", []float64{1, nan, 3, 4, 5}, []float64{1, 2, 3, 4, 5}, 0, false},
		{"length mismatch", []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PearsonCorrelation(tt.xs, tt.ys)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("r = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearsonCorrelationSymmetricAndBounded(t *testing.T) {
	xs := []float64{7, 3, 9, 1, 4, 6, 8, 2}
	ys := []float64{2, 5, 1, 8, 6, 3, 2, 9}
	a, okA := PearsonCorrelation(xs, ys)
	b, okB := PearsonCorrelation(ys, xs)
	if !okA || !okB {
		t.Fatal("expected correlation to be available")
	}
	if a != b {
		t.Errorf("r(x,y) = %v, r(y,x) = %v", a, b)
	}
	if a < -1 || a > 1 {
		t.Errorf("r = %v out of range", a)
	}
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name          string
		series        []float64
		lowerIsBetter bool
		want          models.TrendDirection
	}{
		{"rising", []float64{1, 2, 3, 4, 5}, false, models.TrendImproving},
		{"falling", []float64{5, 4, 3, 2, 1}, false, models.TrendWorsening},
		{"rising stress", []float64{3, 4, 5, 6, 7}, true, models.TrendWorsening},
		{"within dead band", []float64{100, 100.1, 100, 100.2, 100.1}, false, models.TrendFlat},
		{"single sample", []float64{4}, false, models.TrendFlat},
		{"gaps keep their index", []float64{1, math.NaN(), math.NaN(), 4, 5}, false, models.TrendImproving},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTrendFor(tt.series, tt.lowerIsBetter)
			if got.Direction != tt.want {
				t.Errorf("direction = %s, want %s (slope %v)", got.Direction, tt.want, got.Slope)
			}
		})
	}

	if got := CalculateTrend([]float64{1, 2, 3}); math.Abs(got.Slope-1) > 1e-9 || got.Mean != 2 {
		t.Errorf("CalculateTrend slope=%v mean=%v, want 1 and 2", got.Slope, got.Mean)
	}
}

func TestCalculateTimeLaggedCorrelations(t *testing.T) {
	a := []float64{1, 5, 2, 8, 3, 9, 4, 7, 6, 10}
	b := make([]float64, len(a))
	b[0] = 5
	copy(b[1:], a[:len(a)-1]) // b is a delayed by one day

	res, ok := CalculateTimeLaggedCorrelations(a, b, 3)
	if !ok {
		t.Fatal("expected a lagged correlation")
	}
	if res.Lag != 1 {
		t.Errorf("lag = %d, want 1", res.Lag)
	}
	if math.Abs(res.R-1) > 1e-9 {
		t.Errorf("r = %v, want 1", res.R)
	}
	if res.N != len(a)-1 {
		t.Errorf("n = %d, want %d", res.N, len(a)-1)
	}

	if _, ok := CalculateTimeLaggedCorrelations([]float64{1, 2}, []float64{2, 1}, 3); ok {
		t.Error("expected short series to be unavailable")
	}
}

func TestCalculateBayesianConfidence(t *testing.T) {
	if got := CalculateBayesianConfidence(4, 0.9); got != 0 {
		t.Errorf("below minimum samples = %v, want 0", got)
	}
	prev := 0.0
	for _, n := range []int{5, 10, 20, 40, 80} {
		got := CalculateBayesianConfidence(n, 0.6)
		if got <= prev {
			t.Errorf("n=%d: confidence %v did not increase from %v", n, got, prev)
		}
		if got > 0.6 {
			t.Errorf("n=%d: confidence %v exceeds |r|", n, got)
		}
		prev = got
	}
	if a, b := CalculateBayesianConfidence(20, -0.5), CalculateBayesianConfidence(20, 0.5); a != b {
		t.Errorf("sign changed confidence: %v vs %v", a, b)
	}
}

func TestPrepareDays(t *testing.T) {
	sparse := day(start, 500)
	rich := day(start, 500)
	rich.Meals = append(rich.Meals, models.Meal{Time: "18:00", Items: []models.MealItem{{ProductID: "base", Grams: 100}}})
	broken := models.DayRecord{Date: "not-a-date", Meals: []models.Meal{}}
	noMeals := models.DayRecord{Date: start.AddDate(0, 0, 1).Format(models.DateLayout)}
	later := day(start.AddDate(0, 0, 2), 800)

	for _, in := range [][]models.DayRecord{
		{later, sparse, broken, rich, noMeals},
		{rich, noMeals, later, broken, sparse},
	} {
		got := PrepareDays(in)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].MealCount() != 2 {
			t.Errorf("duplicate date kept the sparser record")
		}
		if got[1].Date != later.Date {
			t.Errorf("days not sorted: %s", got[1].Date)
		}
	}
}

func TestPrepareDaysTiedDuplicates(t *testing.T) {
	date := start.AddDate(0, 0, 7)
	small := day(date, 100)
	small.Mood = 6
	big := day(date, 900)
	big.Mood = 6
	sameGrams := day(date, 900)
	sameGrams.Mood = 6
	sameGrams.Meals[0].Time = "13:00"

	history := strainedHistory()
	e := NewEngine(DefaultConfig())

	var picked []models.DayRecord
	var reports []models.AnalysisReport
	for _, dups := range [][]models.DayRecord{
		{small, big, sameGrams},
		{sameGrams, big, small},
		{big, small, sameGrams},
	} {
		got := PrepareDays(dups)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		picked = append(picked, got[0])
		reports = append(reports, e.Analyze(append(append([]models.DayRecord{}, history...), dups...), models.Profile{}, testIndex()))
	}

	if picked[0].Meals[0].Items[0].Grams != 900 {
		t.Errorf("picked %v g, want the 900 g record", picked[0].Meals[0].Items[0].Grams)
	}
	for i := 1; i < len(picked); i++ {
		if !reflect.DeepEqual(picked[0], picked[i]) {
			t.Errorf("order %d picked %+v, want %+v", i, picked[i], picked[0])
		}
		if !reflect.DeepEqual(reports[0], reports[i]) {
			t.Errorf("order %d changed the analysis", i)
		}
	}
}

// strainedHistory is two weeks of a deepening deficit, shrinking sleep and rising stress
func strainedHistory() []models.DayRecord {
	days := make([]models.DayRecord, 0, 14)
	for i := 0; i < 14; i++ {
		d := withSleep(day(start.AddDate(0, 0, i), 1800-60*float64(i)), 8-0.2*float64(i))
		d.Stress = 3 + float64(i)*0.45
		d.Mood = 6
		days = append(days, d)
	}
	return days
}

func TestAnalyzeRecoveryRisk(t *testing.T) {
	e := NewEngine(DefaultConfig())
	report := e.Analyze(strainedHistory(), models.Profile{}, testIndex())

	if len(report.Warnings) == 0 {
		t.Fatal("expected warnings")
	}
	first := report.Warnings[0]
	if first.Type != WarningRecoveryRisk || first.Severity != models.SeverityHigh {
		t.Errorf("first warning = %s/%s, want %s/high", first.Type, first.Severity, WarningRecoveryRisk)
	}
	for i := 1; i < len(report.Warnings); i++ {
		if report.Warnings[i-1].Severity.Rank() < report.Warnings[i].Severity.Rank() {
			t.Errorf("warnings not sorted by severity at %d", i)
		}
	}
	if report.Risk.Level != models.SeverityHigh {
		t.Errorf("risk level = %s (score %v), want high", report.Risk.Level, report.Risk.Score)
	}
	if tr, ok := report.Trend(MetricSleepHours); !ok || tr.Direction != models.TrendWorsening {
		t.Errorf("sleep trend = %+v, want worsening", tr)
	}
	if report.Confidence.ValidDays != 14 {
		t.Errorf("valid days = %d, want 14", report.Confidence.ValidDays)
	}
}

func TestWarningThresholdsAreConfigurable(t *testing.T) {
	hasWarning := func(report models.AnalysisReport, typ string) bool {
		for _, w := range report.Warnings {
			if w.Type == typ {
				return true
			}
		}
		return false
	}

	if report := NewEngine(DefaultConfig()).Analyze(strainedHistory(), models.Profile{}, testIndex()); !hasWarning(report, WarningSleepDecline) {
		t.Fatalf("default config: expected %s, got %+v", WarningSleepDecline, report.Warnings)
	}

	// recent sleep averages about six hours
	cfg := DefaultConfig()
	cfg.ShortSleepHours = 5
	if report := NewEngine(cfg).Analyze(strainedHistory(), models.Profile{}, testIndex()); hasWarning(report, WarningSleepDecline) {
		t.Errorf("short sleep at 5 h: unexpected %s", WarningSleepDecline)
	}
}

func TestAnalyzeIsOrderIndependentAndIdempotent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	days := strainedHistory()
	days = append(days, day(start.AddDate(0, 0, 3), 100)) // same date as days[3], loses on mood
	days[5].WaterMl = 1200

	reversed := make([]models.DayRecord, len(days))
	for i, d := range days {
		reversed[len(days)-1-i] = d
	}

	a := e.Analyze(days, models.Profile{}, testIndex())
	b := e.Analyze(days, models.Profile{}, testIndex())
	c := e.Analyze(reversed, models.Profile{}, testIndex())
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated analysis differs")
	}
	if !reflect.DeepEqual(a, c) {
		t.Error("analysis depends on input order")
	}
}

func TestAnalyzeSparseHistory(t *testing.T) {
	e := NewEngine(Config{})
	days := []models.DayRecord{day(start, 1500), day(start.AddDate(0, 0, 1), 1600)}
	report := e.Analyze(days, models.Profile{}, testIndex())

	if len(report.Correlations) != 0 {
		t.Errorf("correlations = %d, want 0", len(report.Correlations))
	}
	if len(report.Patterns) != 0 {
		t.Errorf("patterns = %d, want 0", len(report.Patterns))
	}
	if report.Risk.Level != models.SeverityLow {
		t.Errorf("risk = %s, want low", report.Risk.Level)
	}
	if report.Confidence.Score >= 0.5 {
		t.Errorf("confidence = %v, want < 0.5", report.Confidence.Score)
	}

	empty := e.Analyze(nil, models.Profile{}, nil)
	if empty.Confidence.ValidDays != 0 || len(empty.Warnings) != 0 {
		t.Errorf("empty history produced %+v", empty)
	}
}

func TestDetectMetabolicPatterns(t *testing.T) {
	e := NewEngine(DefaultConfig())

	t.Run("chronic deficit and protein deficit", func(t *testing.T) {
		var days []models.DayRecord
		for i := 0; i < 7; i++ {
			days = append(days, day(start.AddDate(0, 0, i), 1000))
		}
		got := types(e.DetectMetabolicPatterns(days, models.Profile{}, testIndex()))
		for _, want := range []string{PatternChronicDeficit, PatternProteinDeficit} {
			if !got[want] {
				t.Errorf("missing %s in %v", want, got)
			}
		}
		if got[PatternStableIntake] {
			t.Error("stable_intake should require an on-target mean")
		}
	})

	t.Run("stable intake", func(t *testing.T) {
		var days []models.DayRecord
		for i := 0; i < 10; i++ {
			d := day(start.AddDate(0, 0, i), 1900)
			d.Meals[0].Items = append(d.Meals[0].Items, models.MealItem{ProductID: "whey", Grams: 60})
			days = append(days, d)
		}
		got := types(e.DetectMetabolicPatterns(days, models.Profile{}, testIndex()))
		if !got[PatternStableIntake] {
			t.Errorf("missing stable_intake in %v", got)
		}
	})

	t.Run("late eating", func(t *testing.T) {
		var days []models.DayRecord
		for i := 0; i < 6; i++ {
			d := day(start.AddDate(0, 0, i), 1000)
			d.Meals = append(d.Meals, models.Meal{Time: "22:30", Items: []models.MealItem{{ProductID: "base", Grams: 800}}})
			days = append(days, d)
		}
		got := types(e.DetectMetabolicPatterns(days, models.Profile{}, testIndex()))
		if !got[PatternLateEating] {
			t.Errorf("missing late_eating in %v", got)
		}
	})
}

func types(patterns []models.MetabolicPattern) map[string]bool {
	out := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		out[p.Type] = true
	}
	return out
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Severity
	}{
		{0, models.SeverityLow},
		{29, models.SeverityLow},
		{30, models.SeverityMedium},
		{59, models.SeverityMedium},
		{60, models.SeverityHigh},
		{100, models.SeverityHigh},
	}
	for _, tt := range tests {
		if got := RiskLevel(tt.score); got != tt.want {
			t.Errorf("RiskLevel(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
