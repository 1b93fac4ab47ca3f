package stats

import (
	"math"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// DefaultTrendDeadBand is the relative slope per step below which a trend is flat
const DefaultTrendDeadBand = 0.01

// CalculateTrend fits an ordinary-least-squares line over the series index.
// Missing samples keep their index so gaps do not compress time.
// A positive slope reads as improving.
func CalculateTrend(series []float64) models.TrendResult {
	return trend(series, false, DefaultTrendDeadBand)
}

// CalculateTrendFor is CalculateTrend with the polarity flipped for metrics
// where a falling value is the good direction (stress, deficit).
func CalculateTrendFor(series []float64, lowerIsBetter bool) models.TrendResult {
	return trend(series, lowerIsBetter, DefaultTrendDeadBand)
}

func trend(series []float64, lowerIsBetter bool, deadBand float64) models.TrendResult {
	var n, sumX, sumY, sumXY, sumXX float64
	for i, v := range series {
		if IsMissing(v) {
			continue
		}
		x := float64(i)
		n++
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	res := models.TrendResult{Samples: int(n), Direction: models.TrendFlat}
	if n == 0 {
		return res
	}
	res.Mean = sumY / n
	if n < 2 {
		return res
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return res
	}
	res.Slope = (n*sumXY - sumX*sumY) / denom

	scale := math.Abs(res.Mean)
	if scale < 1 {
		scale = 1
	}
	if math.Abs(res.Slope)/scale < deadBand {
		return res
	}

	rising := res.Slope > 0
	if rising != lowerIsBetter {
		res.Direction = models.TrendImproving
	} else {
		res.Direction = models.TrendWorsening
	}
	return res
}
