package sampler

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// fubiniExpectation estimates E[X] for a non-negative random variable X
// from a (possibly right-censored) sample list, using Fubini's identity
// E[X] = integral_0^inf (1 - F(x)) dx.
//
// samples holds the observed completion times (k <= total); total is the
// number of trials attempted, including any that censored (never
// completed within the horizon and so contributed no sample). When
// k < total, the empirical survival curve is extended with a tail point
// extrapolated by linearly regressing time against the survival
// fraction, so that the unobserved mass beyond the horizon is still
// accounted for instead of silently biasing the mean low.
func fubiniExpectation(samples []float64, total int) float64 {
	if total == 0 {
		return 0
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	type point struct{ x, y float64 }
	curve := []point{{0, 1}}
	step := 1.0 / float64(total)
	for i := 0; i < len(sorted); {
		x := sorted[i]
		count := 0
		for i < len(sorted) && sorted[i] == x {
			count++
			i++
		}
		curve = append(curve, point{x, curve[len(curve)-1].y - step*float64(count)})
	}

	if len(samples) < total {
		if len(curve) < 2 {
			// No observed samples at all: nothing to regress against,
			// so there is no basis for a tail estimate beyond "unknown".
			return 0
		}
		xs := make([]float64, len(curve))
		ys := make([]float64, len(curve))
		for i, p := range curve {
			xs[i] = p.x
			ys[i] = p.y
		}
		// Fit x as a function of y (x = alpha + beta*y) so we can read
		// off the x-intercept at y == 0, the extrapolated censoring
		// horizon.
		alpha, _ := stat.LinearRegression(ys, xs, nil, false)
		last := curve[len(curve)-1].x
		curve = append(curve, point{math.Max(alpha, last), 0})
	}

	area := 0.0
	for i := 1; i < len(curve); i++ {
		dx := curve[i].x - curve[i-1].x
		area += dx * (curve[i].y + curve[i-1].y) / 2
	}
	return area
}
