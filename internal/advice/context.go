// Package advice turns a day's context into ranked, deduplicated,
// mood-aware advice. Rule modules propose candidates; the Aggregator
// filters and ranks them.
package advice

import (
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Tone is the overall register chosen for the day
type Tone string

const (
	ToneNeutral     Tone = "neutral"
	ToneGentle      Tone = "gentle"
	ToneEncouraging Tone = "encouraging"
	ToneFirm        Tone = "firm"
)

// SpecialDay marks calendar days that change what advice is relevant
type SpecialDay string

const (
	SpecialNone     SpecialDay = ""
	SpecialRefeed   SpecialDay = "refeed"
	SpecialBirthday SpecialDay = "birthday"
	SpecialNewWeek  SpecialDay = "new_week"
	SpecialWeekend  SpecialDay = "weekend"
)

// EmotionalState summarizes today's mood and stress
type EmotionalState string

const (
	EmotionNeutral  EmotionalState = "neutral"
	EmotionStressed EmotionalState = "stressed"
	EmotionLow      EmotionalState = "low"
	EmotionGreat    EmotionalState = "great"
)

// Context is the read-only snapshot every rule module evaluates
type Context struct {
	Day            models.DayRecord
	DayTot         models.DayTotals
	NormAbs        models.NormAbs
	Optimum        float64
	DisplayOptimum float64 // optimum plus carried debt and refeed allowance
	CaloricDebt    float64
	KcalPct        float64 // DayTot.Kcal as a percentage of Optimum
	KcalByHour     [24]float64
	Hour           int
	Now            time.Time
	MealCount      int
	HasTraining    bool
	CurrentStreak  int
	Tone           Tone
	SpecialDay     SpecialDay
	EmotionalState EmotionalState
	MoodLevel      float64
	Profile        models.Profile
	WaterGoal      float64
	PIndex         *models.ProductIndex
	Report         *models.AnalysisReport
}

// KcalRatio returns KcalPct as a fraction
func (c Context) KcalRatio() float64 {
	return c.KcalPct / 100
}

// DisplayRatio is intake over DisplayOptimum. Shortfall advice uses it so
// carried debt raises what is left to eat without moving the excess tiers.
func (c Context) DisplayRatio() float64 {
	if c.DisplayOptimum <= 0 {
		return c.KcalRatio()
	}
	return c.DayTot.Kcal / c.DisplayOptimum
}

// clockMinutes returns the context time as minutes after midnight
func (c Context) clockMinutes() int {
	if c.Now.IsZero() {
		return c.Hour * 60
	}
	return c.Now.Hour()*60 + c.Now.Minute()
}

func ratio(value, norm float64) (float64, bool) {
	if norm <= 0 {
		return 0, false
	}
	return value / norm, true
}
