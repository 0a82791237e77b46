package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFubiniExpectation_Uncensored(t *testing.T) {
	// Trapezoidal integration of the empirical survival curve is a
	// conservative (slightly low) estimate of the plain sample mean for
	// small uncensored samples: it connects successive survival-drop
	// points with straight lines rather than treating the curve as a
	// step function.
	samples := []float64{1, 2, 3, 4}
	got := fubiniExpectation(samples, len(samples))
	require.InDelta(t, 2.0, got, 1e-9)
}

func TestFubiniExpectation_CensoredMonotonicity(t *testing.T) {
	base := fubiniExpectation([]float64{10, 20, 30}, 4)
	withMoreCensoring := fubiniExpectation([]float64{10, 20, 30}, 5)
	require.GreaterOrEqual(t, withMoreCensoring, base,
		"adding a censored trial must never decrease the estimate")
}

func TestFubiniExpectation_AllCensoredIsZero(t *testing.T) {
	got := fubiniExpectation(nil, 5)
	require.Equal(t, 0.0, got)
}

func TestFubiniExpectation_DuplicateSamplesCollapseOnOneDrop(t *testing.T) {
	samples := []float64{5, 5, 10}
	got := fubiniExpectation(samples, len(samples))
	require.InDelta(t, 25.0/6.0, got, 1e-9)
}
