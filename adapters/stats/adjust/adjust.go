// Package adjust implements multiple-testing corrections over a complete
// vector of p-values. Every correction is a vectorized transform: the
// output has the same length and order as the input.
package adjust

import (
	"math"
	"sort"

	"gocorrnet/domain/core"
	"gocorrnet/domain/stats"
)

// PValues applies method to pvals and returns the adjusted values in input
// order, clipped to [0, 1]. Non-finite p-values are left out of the family
// and come back as NaN. AdjustNone returns nil.
func PValues(method stats.AdjustmentMethod, pvals []float64) ([]float64, error) {
	correct, err := correction(method)
	if err != nil {
		return nil, err
	}
	if correct == nil {
		return nil, nil
	}

	out := make([]float64, len(pvals))
	idx := make([]int, 0, len(pvals))
	for i, p := range pvals {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			out[i] = math.NaN()
			continue
		}
		idx = append(idx, i)
	}
	if len(idx) == 0 {
		return out, nil
	}

	// ascending by p; ties keep input order
	sort.SliceStable(idx, func(a, b int) bool {
		return pvals[idx[a]] < pvals[idx[b]]
	})
	sorted := make([]float64, len(idx))
	for k, i := range idx {
		sorted[k] = pvals[i]
	}

	adjusted := correct(sorted)
	for k, i := range idx {
		out[i] = math.Min(math.Max(adjusted[k], 0), 1)
	}
	return out, nil
}

// sortedCorrection maps ascending p-values to adjusted values
type sortedCorrection func(sorted []float64) []float64

func correction(method stats.AdjustmentMethod) (sortedCorrection, error) {
	switch method {
	case stats.AdjustNone, "":
		return nil, nil
	case stats.AdjustBonferroni:
		return bonferroni, nil
	case stats.AdjustSidak:
		return sidak, nil
	case stats.AdjustHolmSidak:
		return holmSidak, nil
	case stats.AdjustHolm:
		return holm, nil
	case stats.AdjustSimesHochberg:
		return simesHochberg, nil
	case stats.AdjustHommel:
		return hommel, nil
	case stats.AdjustFDRBH:
		return benjaminiHochberg, nil
	case stats.AdjustFDRBY:
		return benjaminiYekutieli, nil
	}
	return nil, core.NewUnsupportedAdjustmentError(string(method))
}

func bonferroni(p []float64) []float64 {
	m := float64(len(p))
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = v * m
	}
	return out
}

func sidak(p []float64) []float64 {
	m := float64(len(p))
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = -math.Expm1(m * math.Log1p(-v))
	}
	return out
}

func holm(p []float64) []float64 {
	m := len(p)
	out := make([]float64, m)
	for i, v := range p {
		out[i] = v * float64(m-i)
	}
	return cumulativeMax(out)
}

func holmSidak(p []float64) []float64 {
	m := len(p)
	out := make([]float64, m)
	for i, v := range p {
		out[i] = -math.Expm1(float64(m-i) * math.Log1p(-v))
	}
	return cumulativeMax(out)
}

func simesHochberg(p []float64) []float64 {
	m := len(p)
	out := make([]float64, m)
	for i, v := range p {
		out[i] = v * float64(m-i)
	}
	return reverseCumulativeMin(out)
}

func hommel(p []float64) []float64 {
	n := len(p)
	a := make([]float64, n)
	copy(a, p)

	for m := n; m > 1; m-- {
		// cim = min over the m largest p-values of m*p/rank
		cim := math.Inf(1)
		for k := 0; k < m; k++ {
			cim = math.Min(cim, float64(m)*p[n-m+k]/float64(k+1))
		}
		for i := n - m; i < n; i++ {
			a[i] = math.Max(a[i], cim)
		}
		for i := 0; i < n-m; i++ {
			a[i] = math.Max(a[i], math.Min(float64(m)*p[i], cim))
		}
	}
	return a
}

func benjaminiHochberg(p []float64) []float64 {
	return stepUpFDR(p, 1.0)
}

func benjaminiYekutieli(p []float64) []float64 {
	cm := 0.0
	for k := 1; k <= len(p); k++ {
		cm += 1.0 / float64(k)
	}
	return stepUpFDR(p, cm)
}

// stepUpFDR computes p * m / rank * scale and enforces monotonicity from
// the largest p-value down.
func stepUpFDR(p []float64, scale float64) []float64 {
	m := float64(len(p))
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = v * m / float64(i+1) * scale
	}
	return reverseCumulativeMin(out)
}

func cumulativeMax(v []float64) []float64 {
	for i := 1; i < len(v); i++ {
		v[i] = math.Max(v[i], v[i-1])
	}
	return v
}

func reverseCumulativeMin(v []float64) []float64 {
	for i := len(v) - 2; i >= 0; i-- {
		v[i] = math.Min(v[i], v[i+1])
	}
	return v
}

// Validate reports whether method is a recognized correction
func Validate(method stats.AdjustmentMethod) error {
	_, err := correction(method)
	return err
}
