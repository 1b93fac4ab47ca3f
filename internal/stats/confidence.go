package stats

import "math"

// DefaultConfidencePrior is the pseudo-sample count that small samples are shrunk toward
const DefaultConfidencePrior = 10.0

// CalculateBayesianConfidence maps a sample size and effect size to [0,1].
// |r| is shrunk by n/(n+prior), so for a fixed r the score rises with n and a
// handful of days never looks as certain as a month of data.
func CalculateBayesianConfidence(sampleSize int, effectSize float64) float64 {
	return bayesianConfidence(sampleSize, effectSize, DefaultMinSamples, DefaultConfidencePrior)
}

func bayesianConfidence(sampleSize int, effectSize float64, minSamples int, prior float64) float64 {
	if sampleSize < minSamples || IsMissing(effectSize) {
		return 0
	}
	r := math.Min(1, math.Abs(effectSize))
	n := float64(sampleSize)
	return r * n / (n + prior)
}
