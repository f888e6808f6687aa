package senses

import (
	"math"
	"sort"

	"gocorrnet/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SpearmanSense detects monotonic relationships using rank correlation
type SpearmanSense struct{}

// NewSpearmanSense creates a new Spearman correlation sense
func NewSpearmanSense() *SpearmanSense {
	return &SpearmanSense{}
}

// Method returns the correlation method
func (s *SpearmanSense) Method() stats.CorrelationMethod {
	return stats.MethodSpearman
}

// Description returns a human-readable description
func (s *SpearmanSense) Description() string {
	return "Detects monotonic relationships robust to outliers and non-normality"
}

// Correlate computes Spearman's rho as the Pearson correlation of the
// average ranks, with a t-distribution p-value on n-2 degrees of freedom.
// With two samples the t statistic has no degrees of freedom; p is 1 there,
// as for pearson, where scipy's spearmanr yields NaN.
func (s *SpearmanSense) Correlate(x, y []float64) Result {
	if degenerate(x, y) {
		return undefined()
	}

	rho := stat.Correlation(computeRanks(x), computeRanks(y), nil)
	if math.IsNaN(rho) || math.IsInf(rho, 0) {
		return undefined()
	}
	rho = clip(rho)

	n := len(x)
	if n == 2 {
		return Result{R: rho, P: 1.0}
	}
	if math.Abs(rho) == 1 {
		return Result{R: rho, P: 0}
	}

	df := float64(n - 2)
	tStat := rho * math.Sqrt(df/((1+rho)*(1-rho)))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * tDist.Survival(math.Abs(tStat))

	return Result{R: rho, P: math.Min(math.Max(pValue, 0), 1)}
}

// computeRanks converts values to 1-based ranks, averaging ties
func computeRanks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, val := range data {
		pairs[i] = pair{value: val, index: i}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)

	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}

		groupSize := j - i
		avgRank := float64(i+1) + float64(groupSize-1)/2.0
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}

		i = j
	}

	return ranks
}
