// Package stats is the statistics engine: pure functions over numeric series
// and day-record histories. Nothing here returns an error or NaN to callers;
// insufficient or degenerate data yields an "unavailable" result instead.
package stats

// DefaultMinSamples is the minimum number of paired samples for a correlation
const DefaultMinSamples = 5

// Config holds the named thresholds of the statistics engine
type Config struct {
	MinCorrelationSamples int     `mapstructure:"min_correlation_samples"`
	TrendDeadBand         float64 `mapstructure:"trend_dead_band"`  // relative slope per day treated as flat
	ConfidencePrior       float64 `mapstructure:"confidence_prior"` // pseudo-samples shrinking small-n correlations
	MaxLag                int     `mapstructure:"max_lag"`
	HistoryWindow         int     `mapstructure:"history_window"` // days
	RecentWindow          int     `mapstructure:"recent_window"`  // days used for trends and risk
	MinPatternDays        int     `mapstructure:"min_pattern_days"`

	SuccessRatioMin float64 `mapstructure:"success_ratio_min"`
	SuccessRatioMax float64 `mapstructure:"success_ratio_max"`

	ChronicDeficitRatio float64 `mapstructure:"chronic_deficit_ratio"`
	WeekendExcessDelta  float64 `mapstructure:"weekend_excess_delta"`
	LateEatingHour      int     `mapstructure:"late_eating_hour"`
	LateEatingShare     float64 `mapstructure:"late_eating_share"`
	SugarShareHigh      float64 `mapstructure:"sugar_share_high"`
	ProteinRatioLow     float64 `mapstructure:"protein_ratio_low"`
	SleepDebtHours      float64 `mapstructure:"sleep_debt_hours"`
	HighStress          float64 `mapstructure:"high_stress"`
	LowMood             float64 `mapstructure:"low_mood"`
	HydrationLowShare   float64 `mapstructure:"hydration_low_share"`

	// Warning and risk detector limits
	DeficitHighPct      float64 `mapstructure:"deficit_high_pct"`   // mean deficit that alone is a risk factor
	DeficitStrainPct    float64 `mapstructure:"deficit_strain_pct"` // deficit behind a medium recovery warning
	DeficitRisingPct    float64 `mapstructure:"deficit_rising_pct"` // deficit that counts when still deepening
	ShortSleepHours     float64 `mapstructure:"short_sleep_hours"`
	MoodDeclineMedium   float64 `mapstructure:"mood_decline_medium"`
	ProteinGapRatio     float64 `mapstructure:"protein_gap_ratio"`
	ProteinGapDays      int     `mapstructure:"protein_gap_days"` // of the last 7
	OvertrainingMinutes float64 `mapstructure:"overtraining_minutes"`
	StableIntakeMaxSD   float64 `mapstructure:"stable_intake_max_sd"`
}

// DefaultConfig returns the calibrated defaults
func DefaultConfig() Config {
	return Config{
		MinCorrelationSamples: DefaultMinSamples,
		TrendDeadBand:         0.01,
		ConfidencePrior:       10,
		MaxLag:                3,
		HistoryWindow:         60,
		RecentWindow:          14,
		MinPatternDays:        4,

		SuccessRatioMin: 0.75,
		SuccessRatioMax: 1.10,

		ChronicDeficitRatio: 0.75,
		WeekendExcessDelta:  0.15,
		LateEatingHour:      21,
		LateEatingShare:     0.25,
		SugarShareHigh:      0.40,
		ProteinRatioLow:     0.70,
		SleepDebtHours:      6.5,
		HighStress:          6,
		LowMood:             5,
		HydrationLowShare:   0.60,

		DeficitHighPct:      20,
		DeficitStrainPct:    15,
		DeficitRisingPct:    10,
		ShortSleepHours:     7,
		MoodDeclineMedium:   6,
		ProteinGapRatio:     0.6,
		ProteinGapDays:      5,
		OvertrainingMinutes: 45,
		StableIntakeMaxSD:   0.1,
	}
}

// withDefaults replaces non-positive values with defaults so a partially
// filled config from a file never disables a detector by accident.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinCorrelationSamples < 2 {
		c.MinCorrelationSamples = d.MinCorrelationSamples
	}
	if c.TrendDeadBand <= 0 {
		c.TrendDeadBand = d.TrendDeadBand
	}
	if c.ConfidencePrior <= 0 {
		c.ConfidencePrior = d.ConfidencePrior
	}
	if c.MaxLag < 0 {
		c.MaxLag = d.MaxLag
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = d.HistoryWindow
	}
	if c.RecentWindow <= 0 {
		c.RecentWindow = d.RecentWindow
	}
	if c.MinPatternDays <= 0 {
		c.MinPatternDays = d.MinPatternDays
	}
	if c.SuccessRatioMin <= 0 {
		c.SuccessRatioMin = d.SuccessRatioMin
	}
	if c.SuccessRatioMax <= c.SuccessRatioMin {
		c.SuccessRatioMax = d.SuccessRatioMax
	}
	if c.ChronicDeficitRatio <= 0 {
		c.ChronicDeficitRatio = d.ChronicDeficitRatio
	}
	if c.WeekendExcessDelta <= 0 {
		c.WeekendExcessDelta = d.WeekendExcessDelta
	}
	if c.LateEatingHour <= 0 || c.LateEatingHour > 23 {
		c.LateEatingHour = d.LateEatingHour
	}
	if c.LateEatingShare <= 0 {
		c.LateEatingShare = d.LateEatingShare
	}
	if c.SugarShareHigh <= 0 {
		c.SugarShareHigh = d.SugarShareHigh
	}
	if c.ProteinRatioLow <= 0 {
		c.ProteinRatioLow = d.ProteinRatioLow
	}
	if c.SleepDebtHours <= 0 {
		c.SleepDebtHours = d.SleepDebtHours
	}
	if c.HighStress <= 0 {
		c.HighStress = d.HighStress
	}
	if c.LowMood <= 0 {
		c.LowMood = d.LowMood
	}
	if c.HydrationLowShare <= 0 {
		c.HydrationLowShare = d.HydrationLowShare
	}
	if c.DeficitHighPct <= 0 {
		c.DeficitHighPct = d.DeficitHighPct
	}
	if c.DeficitStrainPct <= 0 {
		c.DeficitStrainPct = d.DeficitStrainPct
	}
	if c.DeficitRisingPct <= 0 {
		c.DeficitRisingPct = d.DeficitRisingPct
	}
	if c.ShortSleepHours <= 0 {
		c.ShortSleepHours = d.ShortSleepHours
	}
	if c.MoodDeclineMedium <= 0 {
		c.MoodDeclineMedium = d.MoodDeclineMedium
	}
	if c.ProteinGapRatio <= 0 {
		c.ProteinGapRatio = d.ProteinGapRatio
	}
	if c.ProteinGapDays <= 0 || c.ProteinGapDays > 7 {
		c.ProteinGapDays = d.ProteinGapDays
	}
	if c.OvertrainingMinutes <= 0 {
		c.OvertrainingMinutes = d.OvertrainingMinutes
	}
	if c.StableIntakeMaxSD <= 0 {
		c.StableIntakeMaxSD = d.StableIntakeMaxSD
	}
	return c
}
