package engine

import (
	"math"
	"sort"
)

// Quantile returns the q-quantile of values with linear interpolation between
// the two closest ranks, h = (n-1)q. NaN values are ignored; an empty input
// or q outside [0,1] gives NaN.
func Quantile(values []float64, q float64) float64 {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return math.NaN()
	}
	sorted := finite(values)
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Band is a closed range of acceptable values for one column
type Band struct {
	Column string  `json:"column"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
}

// Contains reports whether v lies in the band; NaN never does
func (b Band) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// PercentileBand computes the [lower, upper] quantile band of a column
func PercentileBand(column string, values []float64, lower, upper float64) Band {
	return Band{
		Column: column,
		Lower:  Quantile(values, lower),
		Upper:  Quantile(values, upper),
	}
}

// finite copies values without NaN
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
