package stats

import (
	"fmt"
	"math"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Correlation thresholds
const (
	CorrelationThresholdHigh   = 0.5
	CorrelationThresholdMedium = 0.3

	PValueThresholdHigh   = 0.01
	PValueThresholdMedium = 0.05
)

// LagResult is the best time-lagged correlation between two series
type LagResult struct {
	Lag    int     `json:"lag"`
	R      float64 `json:"r"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// PearsonCorrelation computes Pearson r over the pairs where both values are
// present. ok is false with fewer than DefaultMinSamples pairs or when either
// series has zero variance.
func PearsonCorrelation(xs, ys []float64) (r float64, ok bool) {
	r, _, ok = pearson(xs, ys, DefaultMinSamples)
	return r, ok
}

// pearson returns r, the number of pairs used, and availability
func pearson(xs, ys []float64, minSamples int) (float64, int, bool) {
	if len(xs) != len(ys) {
		return 0, 0, false
	}

	var sumX, sumY float64
	n := 0
	for i := range xs {
		if IsMissing(xs[i]) || IsMissing(ys[i]) {
			continue
		}
		sumX += xs[i]
		sumY += ys[i]
		n++
	}
	if n < minSamples {
		return 0, n, false
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var numerator, denomX, denomY float64
	for i := range xs {
		if IsMissing(xs[i]) || IsMissing(ys[i]) {
			continue
		}
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0, n, false // No variance, no correlation
	}

	r := numerator / math.Sqrt(denomX*denomY)
	if math.IsNaN(r) {
		return 0, n, false
	}
	return math.Max(-1, math.Min(1, r)), n, true
}

// pValue approximates the two-tailed p-value of r with n samples
func pValue(r float64, n int) float64 {
	if n <= 2 {
		return 1
	}
	if math.Abs(r) >= 1.0 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	return 2 * (1 - normalCDF(math.Abs(t)))
}

// normalCDF calculates the cumulative distribution function for standard normal
func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt(2)))
}

// CalculateTimeLaggedCorrelations correlates a[i] with b[i+lag] for lag in
// 0..maxLag and returns the lag with the largest |r|. Ties keep the smaller lag.
func CalculateTimeLaggedCorrelations(a, b []float64, maxLag int) (LagResult, bool) {
	return laggedCorrelation(a, b, maxLag, DefaultMinSamples)
}

func laggedCorrelation(a, b []float64, maxLag, minSamples int) (LagResult, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	best := LagResult{}
	found := false
	for lag := 0; lag <= maxLag && lag < n; lag++ {
		shiftedA := a[:n-lag]
		shiftedB := b[lag:n]
		r, used, ok := pearson(shiftedA, shiftedB, minSamples)
		if !ok {
			continue
		}
		if !found || math.Abs(r) > math.Abs(best.R) {
			best = LagResult{Lag: lag, R: r, PValue: pValue(r, used), N: used}
			found = true
		}
	}
	return best, found
}

// tier maps r, p-value and sample size to a qualitative confidence level
func tier(r, p float64, sampleSize, minSamples int) models.Confidence {
	absR := math.Abs(r)

	if p < PValueThresholdHigh && sampleSize > 30 && absR > CorrelationThresholdHigh {
		return models.ConfidenceHigh
	}
	if p < PValueThresholdMedium && sampleSize >= 2*minSamples && absR > CorrelationThresholdMedium {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

func directionOf(r float64) models.Direction {
	switch {
	case r > 0:
		return models.DirectionPositive
	case r < 0:
		return models.DirectionNegative
	default:
		return models.DirectionNeutral
	}
}

// describeCorrelation creates a human-readable description
func describeCorrelation(nameA, nameB string, r float64, lag int) string {
	strength := "somewhat"
	if math.Abs(r) > 0.7 {
		strength = "strongly"
	} else if math.Abs(r) > 0.5 {
		strength = "moderately"
	}

	sign := "positively"
	if r < 0 {
		sign = "negatively"
	}

	if lag > 0 {
		return fmt.Sprintf("%s is %s %s linked to %s %d day(s) later (r=%.2f)", nameA, strength, sign, nameB, lag, r)
	}
	return fmt.Sprintf("%s and %s are %s %s correlated (r=%.2f)", nameA, nameB, strength, sign, r)
}
