package senses

import (
	"math"

	"gocorrnet/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PearsonSense measures linear association
type PearsonSense struct{}

// NewPearsonSense creates a new Pearson correlation sense
func NewPearsonSense() *PearsonSense {
	return &PearsonSense{}
}

// Method returns the correlation method
func (s *PearsonSense) Method() stats.CorrelationMethod {
	return stats.MethodPearson
}

// Description returns a human-readable description
func (s *PearsonSense) Description() string {
	return "Product-moment correlation for linear relationships"
}

// Correlate computes Pearson's r. Under the null hypothesis r follows a
// Beta(n/2-1, n/2-1) distribution rescaled to [-1, 1], which gives an exact
// two-sided p-value.
func (s *PearsonSense) Correlate(x, y []float64) Result {
	if degenerate(x, y) {
		return undefined()
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// zero variance in one of the vectors
		return undefined()
	}
	r = clip(r)

	n := float64(len(x))
	if len(x) == 2 {
		return Result{R: r, P: 1.0}
	}

	ab := n/2 - 1
	dist := distuv.Beta{Alpha: ab, Beta: ab}
	p := 2 * dist.CDF((1-math.Abs(r))/2)

	return Result{R: r, P: math.Min(math.Max(p, 0), 1)}
}
