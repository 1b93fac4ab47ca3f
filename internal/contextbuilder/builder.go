// Package contextbuilder derives the advice Context for one day from the
// raw record, the recent history, the profile and the statistics report.
package contextbuilder

import (
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/advice"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
	"github.com/JonnyWalker81/nutrisense/backend/internal/stats"
)

// Config holds the context derivation constants
type Config struct {
	DebtDays        int     `mapstructure:"debt_days"`
	DebtCap         float64 `mapstructure:"debt_cap"` // kcal
	RefeedBonus     float64 `mapstructure:"refeed_bonus"`
	SuccessRatioMin float64 `mapstructure:"success_ratio_min"`
	SuccessRatioMax float64 `mapstructure:"success_ratio_max"`
	RefeedRatioMax  float64 `mapstructure:"refeed_ratio_max"`
	EncourageStreak int     `mapstructure:"encourage_streak"`
	LowMoodCutoff   float64 `mapstructure:"-"` // pipeline copies advice.Config.LowMoodCutoff
	StressedLevel   float64 `mapstructure:"stressed_level"`
	GreatMoodLevel  float64 `mapstructure:"great_mood_level"`
}

// DefaultConfig returns the default derivation constants
func DefaultConfig() Config {
	return Config{
		DebtDays:        3,
		DebtCap:         500,
		RefeedBonus:     0.35,
		SuccessRatioMin: 0.75,
		SuccessRatioMax: 1.10,
		RefeedRatioMax:  1.35,
		EncourageStreak: 3,
		LowMoodCutoff:   advice.DefaultLowMoodCutoff,
		StressedLevel:   7,
		GreatMoodLevel:  8,
	}
}

// Input is everything needed to build one Context
type Input struct {
	Today   models.DayRecord
	History []models.DayRecord // any order; today's date is ignored if present
	Profile models.Profile
	PIndex  *models.ProductIndex
	Report  *models.AnalysisReport
	Now     time.Time
}

// Builder derives advice contexts
type Builder struct {
	cfg Config
}

// New creates a builder; a zero config means defaults
func New(cfg Config) *Builder {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Builder{cfg: cfg}
}

// Build derives the context. Inputs are not modified.
func (b *Builder) Build(in Input) advice.Context {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	profile := in.Profile.WithDefaults()
	today := in.Today
	if today.Date == "" {
		today.Date = now.Format(models.DateLayout)
	}

	tot := nutrition.DayTotals(today, in.PIndex)
	optimum := nutrition.CalorieOptimum(profile, today)
	previous := priorDays(today.Date, in.History)

	debt := 0.0
	if !today.IsRefeedDay {
		debt = b.caloricDebt(previous, profile, in.PIndex)
	}
	display := optimum + debt
	if today.IsRefeedDay {
		display = optimum * (1 + b.cfg.RefeedBonus)
	}

	kcalPct := 0.0
	if optimum > 0 {
		kcalPct = tot.Kcal / optimum * 100
	}

	hasTraining := len(today.Trainings) > 0
	streak := b.streak(today.ParsedDate(), previous, profile, in.PIndex)

	return advice.Context{
		Day:            today,
		DayTot:         tot,
		NormAbs:        nutrition.NormAbs(display, profile.Norms),
		Optimum:        optimum,
		DisplayOptimum: display,
		CaloricDebt:    debt,
		KcalPct:        kcalPct,
		KcalByHour:     nutrition.KcalByHour(today, in.PIndex),
		Hour:           now.Hour(),
		Now:            now,
		MealCount:      today.MealCount(),
		HasTraining:    hasTraining,
		CurrentStreak:  streak,
		Tone:           b.tone(today, streak, in.Report),
		SpecialDay:     specialDay(today, profile, now),
		EmotionalState: b.emotionalState(today),
		MoodLevel:      today.Mood,
		Profile:        profile,
		WaterGoal:      nutrition.WaterGoal(profile, hasTraining),
		PIndex:         in.PIndex,
		Report:         in.Report,
	}
}

// priorDays returns valid records dated before date, most recent first,
// one per date
func priorDays(date string, history []models.DayRecord) []models.DayRecord {
	prepared := stats.PrepareDays(history)
	out := make([]models.DayRecord, 0, len(prepared))
	for i := len(prepared) - 1; i >= 0; i-- {
		if prepared[i].Date < date {
			out = append(out, prepared[i])
		}
	}
	return out
}

// caloricDebt sums the shortfall of the most recent logged days, capped
func (b *Builder) caloricDebt(previous []models.DayRecord, profile models.Profile, idx *models.ProductIndex) float64 {
	var debt float64
	counted := 0
	for _, d := range previous {
		if counted == b.cfg.DebtDays {
			break
		}
		eaten := nutrition.DayTotals(d, idx).Kcal
		if eaten <= 0 || d.IsRefeedDay {
			continue
		}
		counted++
		if gap := nutrition.CalorieOptimum(profile, d) - eaten; gap > 0 {
			debt += gap
		}
	}
	if debt > b.cfg.DebtCap {
		return b.cfg.DebtCap
	}
	return debt
}

// streak counts consecutive days before today within the success band
func (b *Builder) streak(today time.Time, previous []models.DayRecord, profile models.Profile, idx *models.ProductIndex) int {
	if today.IsZero() {
		return 0
	}
	n := 0
	expected := today.AddDate(0, 0, -1)
	for _, d := range previous {
		if !d.ParsedDate().Equal(expected) {
			break
		}
		optimum := nutrition.CalorieOptimum(profile, d)
		r := nutrition.DayTotals(d, idx).Kcal / optimum
		upper := b.cfg.SuccessRatioMax
		if d.IsRefeedDay {
			upper = b.cfg.RefeedRatioMax
		}
		if r < b.cfg.SuccessRatioMin || r > upper {
			break
		}
		n++
		expected = expected.AddDate(0, 0, -1)
	}
	return n
}

func (b *Builder) tone(today models.DayRecord, streak int, report *models.AnalysisReport) advice.Tone {
	if report.HasHighSeverityWarning() || (today.Mood > 0 && today.Mood < b.cfg.LowMoodCutoff) {
		return advice.ToneGentle
	}
	if streak >= b.cfg.EncourageStreak {
		return advice.ToneEncouraging
	}
	if t, ok := report.Trend(stats.MetricKcalDeviation); ok && t.Direction == models.TrendWorsening {
		return advice.ToneFirm
	}
	return advice.ToneNeutral
}

func specialDay(today models.DayRecord, profile models.Profile, now time.Time) advice.SpecialDay {
	if today.IsRefeedDay {
		return advice.SpecialRefeed
	}
	date := today.ParsedDate()
	if date.IsZero() {
		date = now
	}
	if bd, err := time.Parse(models.DateLayout, profile.Birthday); err == nil &&
		bd.Month() == date.Month() && bd.Day() == date.Day() {
		return advice.SpecialBirthday
	}
	switch date.Weekday() {
	case time.Monday:
		return advice.SpecialNewWeek
	case time.Saturday, time.Sunday:
		return advice.SpecialWeekend
	}
	return advice.SpecialNone
}

func (b *Builder) emotionalState(today models.DayRecord) advice.EmotionalState {
	switch {
	case today.Stress >= b.cfg.StressedLevel:
		return advice.EmotionStressed
	case today.Mood > 0 && today.Mood < b.cfg.LowMoodCutoff:
		return advice.EmotionLow
	case today.Mood >= b.cfg.GreatMoodLevel:
		return advice.EmotionGreat
	}
	return advice.EmotionNeutral
}
