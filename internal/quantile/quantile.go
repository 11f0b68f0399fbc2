// Package quantile holds the order statistics shared by imputation and the
// distribution report.
package quantile

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Of interpolates linearly between closest ranks of sorted values.
func Of(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Sorted returns a sorted copy of xs.
func Sorted(xs []float64) []float64 {
	s := stats.Sample{Xs: append([]float64(nil), xs...)}
	s.Sort()
	return s.Xs
}

// Median is Of(sorted xs, 0.5). xs is not modified.
func Median(xs []float64) float64 {
	return Of(Sorted(xs), 0.5)
}

// Finite drops NaN and infinite values.
func Finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
