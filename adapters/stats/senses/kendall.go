package senses

import (
	"math"
	"slices"

	"gocorrnet/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// exactMaxN is the largest sample size for which the exact null
// distribution is used when there are no ties.
const exactMaxN = 33

// KendallSense measures ordinal association with Kendall's tau-b
type KendallSense struct{}

// NewKendallSense creates a new Kendall tau sense
func NewKendallSense() *KendallSense {
	return &KendallSense{}
}

// Method returns the correlation method
func (s *KendallSense) Method() stats.CorrelationMethod {
	return stats.MethodKendall
}

// Description returns a human-readable description
func (s *KendallSense) Description() string {
	return "Concordance-based rank correlation (tau-b) with tie correction"
}

// Correlate computes tau-b. Without ties on small samples the p-value
// comes from the exact permutation distribution; otherwise from the
// tie-corrected normal approximation.
func (s *KendallSense) Correlate(x, y []float64) Result {
	if degenerate(x, y) {
		return undefined()
	}

	n := len(x)
	tot := n * (n - 1) / 2

	// conMinusDis is concordant minus discordant pairs
	conMinusDis, dis := 0, 0
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			prod := sign(x[i]-x[j]) * sign(y[i]-y[j])
			conMinusDis += prod
			if prod < 0 {
				dis++
			}
		}
	}

	xTie, x0, x1 := tieCounts(x)
	yTie, y0, y1 := tieCounts(y)
	if xTie == tot || yTie == tot {
		return undefined()
	}

	tau := float64(conMinusDis) / math.Sqrt(float64(tot-xTie)) / math.Sqrt(float64(tot-yTie))
	tau = clip(tau)

	c := min(dis, tot-dis)
	if xTie == 0 && yTie == 0 && (n <= exactMaxN || c <= 1) {
		return Result{R: tau, P: kendallExactP(n, c)}
	}

	m := float64(n * (n - 1))
	nf := float64(n)
	variance := (m*(2*nf+5)-x1-y1)/18 +
		2*float64(xTie)*float64(yTie)/m
	if n > 2 {
		variance += x0 * y0 / (9 * m * (nf - 2))
	}

	z := float64(conMinusDis) / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))

	return Result{R: tau, P: math.Min(math.Max(p, 0), 1)}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// tieCounts returns, over every group of t tied values, the sums of
// t(t-1)/2, t(t-1)(t-2) and t(t-1)(2t+5).
func tieCounts(data []float64) (ties int, v0, v1 float64) {
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if t := j - i; t > 1 {
			tf := float64(t)
			ties += t * (t - 1) / 2
			v0 += tf * (tf - 1) * (tf - 2)
			v1 += tf * (tf - 1) * (2*tf + 5)
		}
		i = j
	}
	return ties, v0, v1
}

// kendallExactP is the two-sided exact p-value for n untied samples
// where c is the smaller of the discordant count and its complement.
// It counts permutations of n with at most c inversions.
func kendallExactP(n, c int) float64 {
	switch {
	case n <= 2:
		return 1.0
	case c == 0:
		if n >= 171 {
			return 0
		}
		return 2.0 / math.Gamma(float64(n+1))
	case c == 1:
		if n >= 172 {
			return 0
		}
		return 2.0 / math.Gamma(float64(n))
	case 4*c == n*(n-1):
		return 1.0
	case n >= 171:
		// only reachable with c <= 1, handled above
		return 0
	}

	// counts[k] is the number of permutations of j elements with k inversions
	counts := make([]float64, c+1)
	counts[0], counts[1] = 1, 1
	prefix := make([]float64, c+1)
	for j := 3; j <= n; j++ {
		sum := 0.0
		for k := range counts {
			sum += counts[k]
			prefix[k] = sum
		}
		for k := range counts {
			counts[k] = prefix[k]
			if k >= j {
				counts[k] -= prefix[k-j]
			}
		}
	}

	total := 0.0
	for _, v := range counts {
		total += v
	}
	p := 2.0 * total / math.Gamma(float64(n+1))
	return math.Min(math.Max(p, 0), 1)
}
