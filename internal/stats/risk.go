package stats

import "github.com/JonnyWalker81/nutrisense/backend/internal/models"

// Risk factor names and weights; weights sum to 100
const (
	RiskDeficitAccumulation = "deficit_accumulation"
	RiskSleepDecline        = "sleep_decline"
	RiskStressRise          = "stress_rise"
	RiskLowMood             = "low_mood"
	RiskLowProtein          = "low_protein"
	RiskHighSugar           = "high_sugar"
)

var riskWeights = map[string]float64{
	RiskDeficitAccumulation: 25,
	RiskSleepDecline:        20,
	RiskStressRise:          20,
	RiskLowMood:             15,
	RiskLowProtein:          10,
	RiskHighSugar:           10,
}

// Risk level cutoffs on the 0-100 score
const (
	RiskMediumScore = 30
	RiskHighScore   = 60
)

// RiskLevel maps a score to a level
func RiskLevel(score float64) models.Severity {
	switch {
	case score >= RiskHighScore:
		return models.SeverityHigh
	case score >= RiskMediumScore:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func (e *Engine) risk(h *history) models.RiskAssessment {
	samples := Count(Tail(h.series(MetricKcalRatio), e.cfg.RecentWindow))

	factor := func(name string, value float64, active bool) models.RiskFactor {
		return models.RiskFactor{Name: name, Weight: riskWeights[name], Value: value, Active: active}
	}

	deficit, _, okDeficit := e.recentMean(h, MetricDeficitPct)
	deficitTrend := e.recentTrend(h, MetricDeficitPct, true)
	sleep := e.recentTrend(h, MetricSleepHours, false)
	stress := e.recentTrend(h, MetricStress, true)
	mood, _, okMood := e.recentMean(h, MetricMood)
	protein, _, okProtein := e.recentMean(h, MetricProteinRatio)
	sugar, _, okSugar := e.recentMean(h, MetricSimpleShare)

	factors := []models.RiskFactor{
		factor(RiskDeficitAccumulation, deficit,
			okDeficit && (deficit > e.cfg.DeficitHighPct ||
				(deficit > e.cfg.DeficitRisingPct && deficitTrend.Direction == models.TrendWorsening))),
		factor(RiskSleepDecline, sleep.Slope, sleep.Samples >= e.cfg.MinPatternDays && sleep.Direction == models.TrendWorsening),
		factor(RiskStressRise, stress.Slope, stress.Samples >= e.cfg.MinPatternDays && stress.Direction == models.TrendWorsening),
		factor(RiskLowMood, mood, okMood && mood < e.cfg.LowMood),
		factor(RiskLowProtein, protein, okProtein && protein < e.cfg.ProteinRatioLow),
		factor(RiskHighSugar, sugar, okSugar && sugar > e.cfg.SugarShareHigh),
	}

	var score float64
	for _, f := range factors {
		if f.Active {
			score += f.Weight
		}
	}
	return models.RiskAssessment{
		Score:   score,
		Level:   RiskLevel(score),
		Factors: factors,
		Samples: samples,
	}
}
