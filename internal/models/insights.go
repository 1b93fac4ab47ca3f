package models

// Confidence represents a qualitative confidence tier
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Direction represents the sign of a correlation
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

// TrendDirection is the qualitative reading of a slope
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendWorsening TrendDirection = "worsening"
	TrendFlat      TrendDirection = "flat"
)

// Severity of a warning signal or pattern
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities, high first
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// CorrelationResult holds the relationship between two metrics
type CorrelationResult struct {
	MetricA     string     `json:"metric_a"`
	MetricB     string     `json:"metric_b"`
	Coefficient float64    `json:"coefficient"` // Pearson r value (-1 to 1)
	PValue      float64    `json:"p_value"`
	SampleSize  int        `json:"sample_size"`
	LagDays     int        `json:"lag_days"` // 0 = same day, 1 = next day
	Confidence  float64    `json:"confidence"`
	Tier        Confidence `json:"tier"`
	Direction   Direction  `json:"direction"`
	Description string     `json:"description"`
}

// TrendResult is the least-squares trend of one series
type TrendResult struct {
	Metric    string         `json:"metric,omitempty"`
	Slope     float64        `json:"slope"`
	Mean      float64        `json:"mean"`
	Samples   int            `json:"samples"`
	Direction TrendDirection `json:"direction"`
}

// MetabolicPattern is a recurring behaviour found in the history
type MetabolicPattern struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Positive    bool     `json:"positive"`
	Value       float64  `json:"value"`
	Days        int      `json:"days"`
	Description string   `json:"description"`
}

// RiskFactor is one contributor to the predictive risk score
type RiskFactor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
	Active bool    `json:"active"`
}

// RiskAssessment summarizes near-term risk from recent trends
type RiskAssessment struct {
	Score   float64      `json:"score"` // 0-100
	Level   Severity     `json:"level"`
	Factors []RiskFactor `json:"factors"`
	Samples int          `json:"samples"`
}

// WarningSignal is an early-warning detection
type WarningSignal struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Detail   string   `json:"detail"`
	Action   string   `json:"action"`
}

// DataConfidence describes how much history backs the report
type DataConfidence struct {
	Days      int     `json:"days"`
	ValidDays int     `json:"valid_days"`
	Score     float64 `json:"score"` // 0-1
}

// AnalysisReport is the composite statistics output
type AnalysisReport struct {
	Correlations []CorrelationResult `json:"correlations"`
	Trends       []TrendResult       `json:"trends"`
	Patterns     []MetabolicPattern  `json:"patterns"`
	Risk         RiskAssessment      `json:"risk"`
	Warnings     []WarningSignal     `json:"warnings"`
	Confidence   DataConfidence      `json:"confidence"`
}

// HasHighSeverityWarning reports whether any warning is high severity
func (r *AnalysisReport) HasHighSeverityWarning() bool {
	if r == nil {
		return false
	}
	for _, w := range r.Warnings {
		if w.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// Trend returns the trend for a metric, if present
func (r *AnalysisReport) Trend(metric string) (TrendResult, bool) {
	if r == nil {
		return TrendResult{}, false
	}
	for _, t := range r.Trends {
		if t.Metric == metric {
			return t, true
		}
	}
	return TrendResult{}, false
}
