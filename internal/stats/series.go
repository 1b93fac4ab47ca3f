package stats

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
)

// Metric names used in correlations and trends
const (
	MetricKcal          = "kcal"
	MetricKcalRatio     = "kcal_ratio"
	MetricKcalDeviation = "kcal_deviation"
	MetricDeficitPct    = "deficit_pct"
	MetricProtein       = "protein"
	MetricProteinRatio  = "protein_ratio"
	MetricSimple        = "simple_carbs"
	MetricSimpleShare   = "simple_share"
	MetricWater         = "water"
	MetricSteps         = "steps"
	MetricSleepHours    = "sleep_hours"
	MetricSleepQuality  = "sleep_quality"
	MetricMood          = "mood"
	MetricWellbeing     = "wellbeing"
	MetricStress        = "stress"
	MetricTrainingMin   = "training_min"
	MetricLateShare     = "late_share"
)

var metricLabels = map[string]string{
	MetricKcal:          "Calorie intake",
	MetricKcalRatio:     "Calorie target ratio",
	MetricKcalDeviation: "Distance from calorie target",
	MetricDeficitPct:    "Calorie deficit",
	MetricProtein:       "Protein intake",
	MetricProteinRatio:  "Protein target ratio",
	MetricSimple:        "Sugar intake",
	MetricSimpleShare:   "Sugar share of carbs",
	MetricWater:         "Water intake",
	MetricSteps:         "Steps",
	MetricSleepHours:    "Sleep duration",
	MetricSleepQuality:  "Sleep quality",
	MetricMood:          "Mood",
	MetricWellbeing:     "Wellbeing",
	MetricStress:        "Stress",
	MetricTrainingMin:   "Training time",
	MetricLateShare:     "Late-evening eating",
}

// MetricLabel returns a display name for a metric
func MetricLabel(metric string) string {
	if l, ok := metricLabels[metric]; ok {
		return l
	}
	return metric
}

// history is a calendar-aligned view of the analysis window: one slot per
// day from the first to the last valid record, missing days held as NaN.
type history struct {
	dates   []time.Time
	valid   []bool
	metrics map[string][]float64
	water   []float64 // water goal per day
	weekend []bool
}

func (h *history) series(metric string) []float64 {
	return h.metrics[metric]
}

func (h *history) validDays() int {
	n := 0
	for _, v := range h.valid {
		if v {
			n++
		}
	}
	return n
}

// PrepareDays keeps structurally valid records, sorts them by date and
// resolves duplicate dates deterministically, so the result does not depend
// on input order.
func PrepareDays(days []models.DayRecord) []models.DayRecord {
	out := make([]models.DayRecord, 0, len(days))
	for _, d := range days {
		if d.HasData() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return richer(out[i], out[j])
	})

	deduped := out[:0]
	for _, d := range out {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date == d.Date {
			continue
		}
		deduped = append(deduped, d)
	}
	return deduped
}

// richer orders duplicate records for the same date, most complete first
func richer(a, b models.DayRecord) bool {
	if a.MealCount() != b.MealCount() {
		return a.MealCount() > b.MealCount()
	}
	if a.WaterMl != b.WaterMl {
		return a.WaterMl > b.WaterMl
	}
	if a.Steps != b.Steps {
		return a.Steps > b.Steps
	}
	if a.Mood != b.Mood {
		return a.Mood > b.Mood
	}
	if a.TrainingMinutes() != b.TrainingMinutes() {
		return a.TrainingMinutes() > b.TrainingMinutes()
	}
	if ga, gb := loggedGrams(a), loggedGrams(b); ga != gb {
		return ga > gb
	}
	// last resort: byte order of the encoded record, so any two distinct
	// records have a fixed order
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	return bytes.Compare(ja, jb) < 0
}

func loggedGrams(d models.DayRecord) float64 {
	var g float64
	for _, m := range d.Meals {
		for _, it := range m.Items {
			g += it.Grams
		}
	}
	return g
}

// buildHistory derives the metric series for the last window days
func buildHistory(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex, window int, lateHour int) *history {
	prepared := PrepareDays(days)
	h := &history{metrics: make(map[string][]float64)}
	if len(prepared) == 0 {
		return h
	}

	last := prepared[len(prepared)-1].ParsedDate()
	first := last.AddDate(0, 0, -(window - 1))
	if start := prepared[0].ParsedDate(); start.After(first) {
		first = start
	}
	span := int(last.Sub(first).Hours()/24) + 1

	names := []string{
		MetricKcal, MetricKcalRatio, MetricKcalDeviation, MetricDeficitPct,
		MetricProtein, MetricProteinRatio, MetricSimple, MetricSimpleShare,
		MetricWater, MetricSteps, MetricSleepHours, MetricSleepQuality,
		MetricMood, MetricWellbeing, MetricStress, MetricTrainingMin, MetricLateShare,
	}
	for _, n := range names {
		s := make([]float64, span)
		for i := range s {
			s[i] = Missing
		}
		h.metrics[n] = s
	}
	h.dates = make([]time.Time, span)
	h.valid = make([]bool, span)
	h.water = make([]float64, span)
	h.weekend = make([]bool, span)
	for i := range h.dates {
		h.dates[i] = first.AddDate(0, 0, i)
		wd := h.dates[i].Weekday()
		h.weekend[i] = wd == time.Saturday || wd == time.Sunday
		h.water[i] = nutrition.WaterGoal(profile, false)
	}

	profile = profile.WithDefaults()
	for _, d := range prepared {
		i := int(d.ParsedDate().Sub(first).Hours() / 24)
		if i < 0 || i >= span {
			continue
		}
		h.valid[i] = true
		h.water[i] = nutrition.WaterGoal(profile, len(d.Trainings) > 0)
		fillDay(h, i, d, profile, idx, lateHour)
	}
	return h
}

func fillDay(h *history, i int, d models.DayRecord, profile models.Profile, idx *models.ProductIndex, lateHour int) {
	set := func(metric string, v float64) { h.metrics[metric][i] = v }

	tot := nutrition.DayTotals(d, idx)
	optimum := nutrition.CalorieOptimum(profile, d)
	norms := nutrition.NormAbs(optimum, profile.Norms)

	// An empty plate is an unlogged day for intake purposes
	if tot.Kcal > 0 {
		ratio := tot.Kcal / optimum
		set(MetricKcal, tot.Kcal)
		set(MetricKcalRatio, ratio)
		dev := ratio - 1
		if dev < 0 {
			dev = -dev
		}
		set(MetricKcalDeviation, dev)
		set(MetricDeficitPct, (optimum-tot.Kcal)/optimum*100)
		set(MetricProtein, tot.Protein)
		if norms.Protein > 0 {
			set(MetricProteinRatio, tot.Protein/norms.Protein)
		}
		set(MetricSimple, tot.Simple)
		if tot.Carbs > 0 {
			set(MetricSimpleShare, tot.Simple/tot.Carbs)
		}

		byHour := nutrition.KcalByHour(d, idx)
		var late, all float64
		for hr, k := range byHour {
			all += k
			if hr >= lateHour {
				late += k
			}
		}
		if all > 0 {
			set(MetricLateShare, late/all)
		}
	}

	if d.WaterMl > 0 {
		set(MetricWater, d.WaterMl)
	}
	if d.Steps > 0 {
		set(MetricSteps, float64(d.Steps))
	}
	if hours, ok := d.SleepHours(); ok {
		set(MetricSleepHours, hours)
	}
	if d.SleepQuality > 0 {
		set(MetricSleepQuality, d.SleepQuality)
	}
	if d.Mood > 0 {
		set(MetricMood, d.Mood)
	}
	if d.Wellbeing > 0 {
		set(MetricWellbeing, d.Wellbeing)
	}
	if d.Stress > 0 {
		set(MetricStress, d.Stress)
	}
	set(MetricTrainingMin, float64(d.TrainingMinutes()))
}
