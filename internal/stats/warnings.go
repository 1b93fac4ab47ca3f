package stats

import (
	"fmt"
	"sort"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Warning signal types
const (
	WarningRecoveryRisk  = "recovery_risk"
	WarningBingeRisk     = "binge_risk"
	WarningSleepDecline  = "sleep_decline"
	WarningMoodDecline   = "mood_decline"
	WarningHydrationDrop = "hydration_drop"
	WarningProteinGap    = "protein_gap"
	WarningOvertraining  = "overtraining"
)

func (e *Engine) warnings(h *history) []models.WarningSignal {
	signals := make([]models.WarningSignal, 0)
	detectors := []func(*history) (models.WarningSignal, bool){
		e.recoveryRisk,
		e.bingeRisk,
		e.sleepDecline,
		e.moodDecline,
		e.hydrationDrop,
		e.proteinGap,
		e.overtraining,
	}
	for _, detect := range detectors {
		if w, ok := detect(h); ok {
			signals = append(signals, w)
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Severity.Rank() != signals[j].Severity.Rank() {
			return signals[i].Severity.Rank() > signals[j].Severity.Rank()
		}
		return signals[i].Type < signals[j].Type
	})
	return signals
}

func (e *Engine) worsening(h *history, metric string, lowerIsBetter bool) bool {
	t := e.recentTrend(h, metric, lowerIsBetter)
	return t.Samples >= e.cfg.MinPatternDays && t.Direction == models.TrendWorsening
}

func (e *Engine) recoveryRisk(h *history) (models.WarningSignal, bool) {
	deficitRising := e.worsening(h, MetricDeficitPct, true)
	sleepFalling := e.worsening(h, MetricSleepHours, false)
	stressRising := e.worsening(h, MetricStress, true)
	deficit, _, okDeficit := e.recentMean(h, MetricDeficitPct)

	w := models.WarningSignal{
		Type:   WarningRecoveryRisk,
		Action: "Eat at maintenance for a day or two and prioritise an early night",
	}
	switch {
	case deficitRising && sleepFalling && stressRising:
		w.Severity = models.SeverityHigh
		w.Message = "Your body is under growing strain"
		w.Detail = "Your deficit is deepening while sleep is falling and stress is rising"
	case okDeficit && deficit > e.cfg.DeficitStrainPct && (sleepFalling || stressRising):
		w.Severity = models.SeverityMedium
		w.Message = "Recovery may be falling behind"
		w.Detail = fmt.Sprintf("You are running a %.0f%% deficit while sleep or stress is trending the wrong way", deficit)
	default:
		return models.WarningSignal{}, false
	}
	return w, true
}

func (e *Engine) bingeRisk(h *history) (models.WarningSignal, bool) {
	ratio, _, ok := e.weekMeanRatio(h)
	if !ok || ratio >= e.cfg.ChronicDeficitRatio {
		return models.WarningSignal{}, false
	}
	stress, _, okStress := e.recentMean(h, MetricStress)
	sleep, _, okSleep := e.recentMean(h, MetricSleepHours)

	w := models.WarningSignal{
		Type:   WarningBingeRisk,
		Action: "Plan a satisfying, protein-rich meal instead of pushing the deficit further",
		Detail: fmt.Sprintf("You averaged %.0f%% of your calorie target this week", ratio*100),
	}
	switch {
	case okStress && stress >= e.cfg.HighStress:
		w.Severity = models.SeverityHigh
		w.Message = "High stress on a deep deficit often ends in overeating"
	case okSleep && sleep < e.cfg.SleepDebtHours:
		w.Severity = models.SeverityMedium
		w.Message = "Short sleep on a deep deficit raises cravings"
	default:
		return models.WarningSignal{}, false
	}
	return w, true
}

func (e *Engine) sleepDecline(h *history) (models.WarningSignal, bool) {
	if !e.worsening(h, MetricSleepHours, false) {
		return models.WarningSignal{}, false
	}
	mean, _, ok := e.recentMean(h, MetricSleepHours)
	if !ok || mean >= e.cfg.ShortSleepHours {
		return models.WarningSignal{}, false
	}
	return models.WarningSignal{
		Type:     WarningSleepDecline,
		Severity: models.SeverityMedium,
		Message:  "Your sleep has been getting shorter",
		Detail:   fmt.Sprintf("Recent average is %.1f hours", mean),
		Action:   "Keep a fixed bedtime for the next few nights",
	}, true
}

func (e *Engine) moodDecline(h *history) (models.WarningSignal, bool) {
	if !e.worsening(h, MetricMood, false) {
		return models.WarningSignal{}, false
	}
	mean, _, _ := e.recentMean(h, MetricMood)
	sev := models.SeverityLow
	if mean < e.cfg.MoodDeclineMedium {
		sev = models.SeverityMedium
	}
	return models.WarningSignal{
		Type:     WarningMoodDecline,
		Severity: sev,
		Message:  "Your mood has been dipping lately",
		Detail:   fmt.Sprintf("Recent average mood is %.1f out of 10", mean),
		Action:   "Make room for something you enjoy today",
	}, true
}

func (e *Engine) hydrationDrop(h *history) (models.WarningSignal, bool) {
	water := h.series(MetricWater)
	n := len(water)
	if n == 0 {
		return models.WarningSignal{}, false
	}
	start := n - 3
	if start < 0 {
		start = 0
	}
	var share float64
	count := 0
	for i := start; i < n; i++ {
		if IsMissing(water[i]) || h.water[i] <= 0 {
			continue
		}
		share += water[i] / h.water[i]
		count++
	}
	if count < 2 {
		return models.WarningSignal{}, false
	}
	share /= float64(count)
	if share >= e.cfg.HydrationLowShare {
		return models.WarningSignal{}, false
	}
	return models.WarningSignal{
		Type:     WarningHydrationDrop,
		Severity: models.SeverityLow,
		Message:  "You have been drinking less than usual",
		Detail:   fmt.Sprintf("Last days averaged %.0f%% of your water goal", share*100),
		Action:   "Keep a bottle of water within reach",
	}, true
}

func (e *Engine) proteinGap(h *history) (models.WarningSignal, bool) {
	week := Tail(h.series(MetricProteinRatio), 7)
	low := 0
	for _, r := range week {
		if !IsMissing(r) && r < e.cfg.ProteinGapRatio {
			low++
		}
	}
	if low < e.cfg.ProteinGapDays {
		return models.WarningSignal{}, false
	}
	return models.WarningSignal{
		Type:     WarningProteinGap,
		Severity: models.SeverityMedium,
		Message:  "Protein has been well below target most of this week",
		Detail:   fmt.Sprintf("%d of the last 7 days were under %.0f%% of your protein target", low, e.cfg.ProteinGapRatio*100),
		Action:   "Add a protein source to every meal",
	}, true
}

func (e *Engine) overtraining(h *history) (models.WarningSignal, bool) {
	load := e.recentTrend(h, MetricTrainingMin, false)
	if load.Direction != models.TrendImproving || load.Mean < e.cfg.OvertrainingMinutes {
		return models.WarningSignal{}, false
	}
	if !e.worsening(h, MetricWellbeing, false) {
		return models.WarningSignal{}, false
	}
	return models.WarningSignal{
		Type:     WarningOvertraining,
		Severity: models.SeverityMedium,
		Message:  "Training load is climbing while wellbeing drops",
		Detail:   fmt.Sprintf("You average %.0f training minutes a day", load.Mean),
		Action:   "Schedule a rest or light day",
	}, true
}
