package stats

import (
	"math"
	"sort"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Engine runs the statistical analysis over a user's history
type Engine struct {
	cfg Config
}

// NewEngine creates an engine; zero-valued config fields take their defaults
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Correlate is PearsonCorrelation with the configured minimum sample count
func (e *Engine) Correlate(xs, ys []float64) (float64, bool) {
	r, _, ok := pearson(xs, ys, e.cfg.MinCorrelationSamples)
	return r, ok
}

// LaggedCorrelation is CalculateTimeLaggedCorrelations with configured limits
func (e *Engine) LaggedCorrelation(a, b []float64) (LagResult, bool) {
	return laggedCorrelation(a, b, e.cfg.MaxLag, e.cfg.MinCorrelationSamples)
}

// Trend is CalculateTrendFor with the configured dead band
func (e *Engine) Trend(series []float64, lowerIsBetter bool) models.TrendResult {
	return trend(series, lowerIsBetter, e.cfg.TrendDeadBand)
}

// Confidence is CalculateBayesianConfidence with the configured prior
func (e *Engine) Confidence(sampleSize int, effectSize float64) float64 {
	return bayesianConfidence(sampleSize, effectSize, e.cfg.MinCorrelationSamples, e.cfg.ConfidencePrior)
}

// correlationPair is a fixed metric pair worth testing
type correlationPair struct {
	a, b   string
	lagged bool
}

var correlationPairs = []correlationPair{
	{MetricSleepHours, MetricKcal, true},
	{MetricStress, MetricSimple, false},
	{MetricSleepHours, MetricMood, false},
	{MetricSteps, MetricMood, false},
	{MetricKcalRatio, MetricMood, false},
	{MetricWater, MetricWellbeing, false},
	{MetricTrainingMin, MetricSleepQuality, true},
	{MetricSleepHours, MetricStress, false},
}

// trendMetric is a metric tracked for direction, with its polarity
type trendMetric struct {
	name          string
	lowerIsBetter bool
}

var trendMetrics = []trendMetric{
	{MetricKcalDeviation, true},
	{MetricDeficitPct, true},
	{MetricSleepHours, false},
	{MetricStress, true},
	{MetricMood, false},
	{MetricWellbeing, false},
	{MetricProteinRatio, false},
	{MetricWater, false},
	{MetricSteps, false},
	{MetricTrainingMin, false},
}

// Analyze builds the composite report. It never fails: sparse history
// produces empty sections and a low data confidence.
func (e *Engine) Analyze(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex) models.AnalysisReport {
	h := e.history(days, profile, idx)

	report := models.AnalysisReport{
		Correlations: e.correlations(h),
		Trends:       e.trends(h),
		Patterns:     e.patterns(h),
		Risk:         e.risk(h),
		Warnings:     e.warnings(h),
		Confidence:   e.dataConfidence(len(days), h.validDays()),
	}
	return report
}

// DetectMetabolicPatterns finds recurring behaviours in the history
func (e *Engine) DetectMetabolicPatterns(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex) []models.MetabolicPattern {
	return e.patterns(e.history(days, profile, idx))
}

// CalculatePredictiveRisk scores near-term risk from recent trends
func (e *Engine) CalculatePredictiveRisk(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex) models.RiskAssessment {
	return e.risk(e.history(days, profile, idx))
}

// DetectEarlyWarningSignals runs the composite warning detectors
func (e *Engine) DetectEarlyWarningSignals(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex) []models.WarningSignal {
	return e.warnings(e.history(days, profile, idx))
}

func (e *Engine) history(days []models.DayRecord, profile models.Profile, idx *models.ProductIndex) *history {
	return buildHistory(days, profile, idx, e.cfg.HistoryWindow, e.cfg.LateEatingHour)
}

func (e *Engine) correlations(h *history) []models.CorrelationResult {
	results := make([]models.CorrelationResult, 0, len(correlationPairs))
	for _, pair := range correlationPairs {
		a, b := h.series(pair.a), h.series(pair.b)
		var res LagResult
		var ok bool
		if pair.lagged {
			res, ok = e.LaggedCorrelation(a, b)
		} else {
			var r float64
			var n int
			r, n, ok = pearson(a, b, e.cfg.MinCorrelationSamples)
			res = LagResult{R: r, N: n, PValue: pValue(r, n)}
		}
		if !ok {
			continue
		}
		results = append(results, models.CorrelationResult{
			MetricA:     pair.a,
			MetricB:     pair.b,
			Coefficient: res.R,
			PValue:      res.PValue,
			SampleSize:  res.N,
			LagDays:     res.Lag,
			Confidence:  e.Confidence(res.N, res.R),
			Tier:        tier(res.R, res.PValue, res.N, e.cfg.MinCorrelationSamples),
			Direction:   directionOf(res.R),
			Description: describeCorrelation(MetricLabel(pair.a), MetricLabel(pair.b), res.R, res.Lag),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].Coefficient) > math.Abs(results[j].Coefficient)
	})
	return results
}

func (e *Engine) trends(h *history) []models.TrendResult {
	trends := make([]models.TrendResult, 0, len(trendMetrics))
	for _, m := range trendMetrics {
		recent := Tail(h.series(m.name), e.cfg.RecentWindow)
		if Count(recent) < 2 {
			continue
		}
		t := e.Trend(recent, m.lowerIsBetter)
		t.Metric = m.name
		trends = append(trends, t)
	}
	return trends
}

func (e *Engine) dataConfidence(days, valid int) models.DataConfidence {
	return models.DataConfidence{
		Days:      days,
		ValidDays: valid,
		Score:     float64(valid) / (float64(valid) + e.cfg.ConfidencePrior),
	}
}

// recentTrend returns the trend of a metric over the recent window
func (e *Engine) recentTrend(h *history, metric string, lowerIsBetter bool) models.TrendResult {
	t := e.Trend(Tail(h.series(metric), e.cfg.RecentWindow), lowerIsBetter)
	t.Metric = metric
	return t
}

// recentMean returns the mean over the recent window when enough days exist
func (e *Engine) recentMean(h *history, metric string) (float64, int, bool) {
	recent := Tail(h.series(metric), e.cfg.RecentWindow)
	n := Count(recent)
	if n < e.cfg.MinPatternDays {
		return 0, n, false
	}
	m, _ := Mean(recent)
	return m, n, true
}
