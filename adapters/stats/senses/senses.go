package senses

import (
	"math"

	"gocorrnet/domain/core"
	"gocorrnet/domain/stats"
)

// Result is the outcome of one correlation test on a pair of vectors
type Result struct {
	R float64
	P float64 // two-sided
}

// CorrelationSense is one pairwise correlation test
type CorrelationSense interface {
	Method() stats.CorrelationMethod
	Description() string
	// Correlate tests x against y. Both vectors must have the same length.
	// Degenerate input yields NaN statistics rather than an error.
	Correlate(x, y []float64) Result
}

// ForMethod returns the test for a correlation method
func ForMethod(method stats.CorrelationMethod) (CorrelationSense, error) {
	switch method {
	case stats.MethodPearson:
		return NewPearsonSense(), nil
	case stats.MethodSpearman:
		return NewSpearmanSense(), nil
	case stats.MethodKendall:
		return NewKendallSense(), nil
	}
	return nil, core.NewUnsupportedCorrelationError(string(method))
}

// undefined is the result for input the test has no answer for
func undefined() Result {
	return Result{R: math.NaN(), P: math.NaN()}
}

// degenerate reports whether a pair cannot be tested at all
func degenerate(x, y []float64) bool {
	if len(x) != len(y) || len(x) < 2 {
		return true
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return true
		}
	}
	return false
}

func clip(r float64) float64 {
	if r > 1.0 {
		return 1.0
	} else if r < -1.0 {
		return -1.0
	}
	return r
}
