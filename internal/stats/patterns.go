package stats

import (
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Pattern types
const (
	PatternChronicDeficit    = "chronic_deficit"
	PatternWeekendOvereating = "weekend_overeating"
	PatternLateEating        = "late_eating"
	PatternSugarDependency   = "sugar_dependency"
	PatternProteinDeficit    = "protein_deficit"
	PatternSleepDebt         = "sleep_debt"
	PatternStableIntake      = "stable_intake"
)

func (e *Engine) patterns(h *history) []models.MetabolicPattern {
	patterns := make([]models.MetabolicPattern, 0)
	detectors := []func(*history) (models.MetabolicPattern, bool){
		e.chronicDeficit,
		e.weekendOvereating,
		e.lateEating,
		e.sugarDependency,
		e.proteinDeficit,
		e.sleepDebt,
		e.stableIntake,
	}
	for _, detect := range detectors {
		if p, ok := detect(h); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// weekMeanRatio is the mean calorie ratio over the last seven calendar days
func (e *Engine) weekMeanRatio(h *history) (float64, int, bool) {
	week := Tail(h.series(MetricKcalRatio), 7)
	n := Count(week)
	if n < e.cfg.MinPatternDays {
		return 0, n, false
	}
	m, _ := Mean(week)
	return m, n, true
}

func (e *Engine) chronicDeficit(h *history) (models.MetabolicPattern, bool) {
	mean, n, ok := e.weekMeanRatio(h)
	if !ok || mean >= e.cfg.ChronicDeficitRatio {
		return models.MetabolicPattern{}, false
	}
	sev := models.SeverityMedium
	if mean < e.cfg.ChronicDeficitRatio-0.15 {
		sev = models.SeverityHigh
	}
	return models.MetabolicPattern{
		Type:        PatternChronicDeficit,
		Severity:    sev,
		Value:       mean,
		Days:        n,
		Description: fmt.Sprintf("You averaged %.0f%% of your calorie target over the last week", mean*100),
	}, true
}

func (e *Engine) weekendOvereating(h *history) (models.MetabolicPattern, bool) {
	ratios := h.series(MetricKcalRatio)
	var weekend, weekday []float64
	for i, r := range ratios {
		if IsMissing(r) {
			continue
		}
		if h.weekend[i] {
			weekend = append(weekend, r)
		} else {
			weekday = append(weekday, r)
		}
	}
	if len(weekend) < 2 || len(weekday) < 3 {
		return models.MetabolicPattern{}, false
	}
	we, _ := Mean(weekend)
	wd, _ := Mean(weekday)
	delta := we - wd
	if delta <= e.cfg.WeekendExcessDelta {
		return models.MetabolicPattern{}, false
	}
	sev := models.SeverityMedium
	if delta > 2*e.cfg.WeekendExcessDelta {
		sev = models.SeverityHigh
	}
	return models.MetabolicPattern{
		Type:        PatternWeekendOvereating,
		Severity:    sev,
		Value:       delta,
		Days:        len(weekend) + len(weekday),
		Description: fmt.Sprintf("Weekend intake runs %.0f%% of target higher than weekdays", delta*100),
	}, true
}

func (e *Engine) lateEating(h *history) (models.MetabolicPattern, bool) {
	shares := Valid(Tail(h.series(MetricLateShare), e.cfg.RecentWindow))
	if len(shares) < e.cfg.MinPatternDays {
		return models.MetabolicPattern{}, false
	}
	late := 0
	for _, s := range shares {
		if s > e.cfg.LateEatingShare {
			late++
		}
	}
	if late*2 < len(shares) {
		return models.MetabolicPattern{}, false
	}
	return models.MetabolicPattern{
		Type:        PatternLateEating,
		Severity:    models.SeverityMedium,
		Value:       float64(late) / float64(len(shares)),
		Days:        len(shares),
		Description: fmt.Sprintf("On %d of %d days a large share of calories came after %d:00", late, len(shares), e.cfg.LateEatingHour),
	}, true
}

func (e *Engine) sugarDependency(h *history) (models.MetabolicPattern, bool) {
	mean, n, ok := e.recentMean(h, MetricSimpleShare)
	if !ok || mean <= e.cfg.SugarShareHigh {
		return models.MetabolicPattern{}, false
	}
	sev := models.SeverityMedium
	if mean > e.cfg.SugarShareHigh+0.15 {
		sev = models.SeverityHigh
	}
	return models.MetabolicPattern{
		Type:        PatternSugarDependency,
		Severity:    sev,
		Value:       mean,
		Days:        n,
		Description: fmt.Sprintf("Sugars make up %.0f%% of your carbohydrates on average", mean*100),
	}, true
}

func (e *Engine) proteinDeficit(h *history) (models.MetabolicPattern, bool) {
	mean, n, ok := e.recentMean(h, MetricProteinRatio)
	if !ok || mean >= e.cfg.ProteinRatioLow {
		return models.MetabolicPattern{}, false
	}
	sev := models.SeverityMedium
	if mean < e.cfg.ProteinRatioLow-0.2 {
		sev = models.SeverityHigh
	}
	return models.MetabolicPattern{
		Type:        PatternProteinDeficit,
		Severity:    sev,
		Value:       mean,
		Days:        n,
		Description: fmt.Sprintf("Protein averages %.0f%% of your target", mean*100),
	}, true
}

func (e *Engine) sleepDebt(h *history) (models.MetabolicPattern, bool) {
	mean, n, ok := e.recentMean(h, MetricSleepHours)
	if !ok || mean >= e.cfg.SleepDebtHours {
		return models.MetabolicPattern{}, false
	}
	sev := models.SeverityMedium
	if mean < e.cfg.SleepDebtHours-1 {
		sev = models.SeverityHigh
	}
	return models.MetabolicPattern{
		Type:        PatternSleepDebt,
		Severity:    sev,
		Value:       mean,
		Days:        n,
		Description: fmt.Sprintf("You are sleeping %.1f hours a night on average", mean),
	}, true
}

func (e *Engine) stableIntake(h *history) (models.MetabolicPattern, bool) {
	recent := Tail(h.series(MetricKcalRatio), e.cfg.RecentWindow)
	n := Count(recent)
	if n < e.cfg.MinCorrelationSamples {
		return models.MetabolicPattern{}, false
	}
	mean, _ := Mean(recent)
	sd, _ := StdDev(recent)
	if sd >= e.cfg.StableIntakeMaxSD || mean < e.cfg.SuccessRatioMin || mean > e.cfg.SuccessRatioMax {
		return models.MetabolicPattern{}, false
	}
	return models.MetabolicPattern{
		Type:        PatternStableIntake,
		Severity:    models.SeverityLow,
		Positive:    true,
		Value:       sd,
		Days:        n,
		Description: "Your daily intake has been steady and on target",
	}, true
}
