package stats

import "math"

// Missing marks an absent sample in a series
var Missing = math.NaN()

// IsMissing reports whether v is an absent sample
func IsMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Valid returns the present samples of a series
func Valid(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of present samples
func Count(series []float64) int {
	n := 0
	for _, v := range series {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}

// Mean returns the mean of the present samples; ok is false when there are none
func Mean(series []float64) (mean float64, ok bool) {
	var sum float64
	n := 0
	for _, v := range series {
		if IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// StdDev returns the population standard deviation of the present samples
func StdDev(series []float64) (sd float64, ok bool) {
	mean, ok := Mean(series)
	if !ok {
		return 0, false
	}
	var sq float64
	n := 0
	for _, v := range series {
		if IsMissing(v) {
			continue
		}
		d := v - mean
		sq += d * d
		n++
	}
	return math.Sqrt(sq / float64(n)), true
}

// Tail returns the last n entries of a series (or all of it)
func Tail(series []float64, n int) []float64 {
	if n <= 0 || n >= len(series) {
		return series
	}
	return series[len(series)-n:]
}
