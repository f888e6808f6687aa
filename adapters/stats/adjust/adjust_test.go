package adjust

import (
	"math"
	"testing"

	"gocorrnet/domain/core"
	"gocorrnet/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPValues_Methods(t *testing.T) {
	// deliberately unsorted so the results are mapped back to input order
	pvals := []float64{0.01, 0.04, 0.03}
	cm := 1.0 + 1.0/2 + 1.0/3

	tests := []struct {
		method stats.AdjustmentMethod
		want   []float64
	}{
		{stats.AdjustBonferroni, []float64{0.03, 0.12, 0.09}},
		{stats.AdjustHolm, []float64{0.03, 0.06, 0.06}},
		{stats.AdjustSimesHochberg, []float64{0.03, 0.04, 0.04}},
		{stats.AdjustHommel, []float64{0.03, 0.04, 0.04}},
		{stats.AdjustFDRBH, []float64{0.03, 0.04, 0.04}},
		{stats.AdjustFDRBY, []float64{0.03 * cm, 0.04 * cm, 0.04 * cm}},
		{stats.AdjustSidak, []float64{
			1 - math.Pow(0.99, 3),
			1 - math.Pow(0.96, 3),
			1 - math.Pow(0.97, 3),
		}},
		{stats.AdjustHolmSidak, []float64{
			1 - math.Pow(0.99, 3),
			1 - math.Pow(0.97, 2), // raised to the previous step by monotonicity
			1 - math.Pow(0.97, 2),
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := PValues(tt.method, pvals)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12, "index %d", i)
			}
		})
	}
}

func TestPValues_HolmSidakMonotone(t *testing.T) {
	got, err := PValues(stats.AdjustHolmSidak, []float64{0.01, 0.04, 0.03})
	require.NoError(t, err)

	// sorted order is 0.01, 0.03, 0.04
	step2 := 1 - math.Pow(0.97, 2)
	step3 := math.Max(1-0.96, step2)
	assert.InDelta(t, step2, got[2], 1e-12)
	assert.InDelta(t, step3, got[1], 1e-12)
}

func TestPValues_BenjaminiHochbergEqualSteps(t *testing.T) {
	got, err := PValues(stats.AdjustFDRBH, []float64{0.01, 0.02, 0.03, 0.04, 0.05})
	require.NoError(t, err)
	for _, v := range got {
		assert.InDelta(t, 0.05, v, 1e-12)
	}
}

func TestPValues_ClippedToOne(t *testing.T) {
	got, err := PValues(stats.AdjustBonferroni, []float64{0.5, 0.9, 0.2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 1.0, got[1])
	assert.InDelta(t, 0.6, got[2], 1e-12)
}

func TestPValues_NonFiniteExcluded(t *testing.T) {
	nan := math.NaN()
	got, err := PValues(stats.AdjustBonferroni, []float64{0.01, nan, 0.02})
	require.NoError(t, err)

	// family size counts only the two finite p-values
	assert.InDelta(t, 0.02, got[0], 1e-12)
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 0.04, got[2], 1e-12)

	got, err = PValues(stats.AdjustFDRBH, []float64{nan, nan})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
}

func TestPValues_None(t *testing.T) {
	got, err := PValues(stats.AdjustNone, []float64{0.1})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPValues_Empty(t *testing.T) {
	got, err := PValues(stats.AdjustFDRBH, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPValues_Unsupported(t *testing.T) {
	_, err := PValues(stats.AdjustmentMethod("fdr_tsbh"), []float64{0.1})
	assert.ErrorIs(t, err, core.ErrUnsupportedAdjustment)
}

func TestPValues_AdjustedNotBelowRaw(t *testing.T) {
	pvals := []float64{0.001, 0.2, 0.049, 0.5, 0.013, 0.013, 0.9, 0.04}
	for _, method := range stats.AdjustmentMethods() {
		if !method.Enabled() {
			continue
		}
		got, err := PValues(method, pvals)
		require.NoError(t, err, method)
		for i, p := range pvals {
			assert.GreaterOrEqual(t, got[i]+1e-15, p, "%s index %d", method, i)
			assert.LessOrEqual(t, got[i], 1.0, "%s index %d", method, i)
		}
	}
}

func TestPValues_DoesNotMutateInput(t *testing.T) {
	pvals := []float64{0.3, 0.1, 0.2}
	_, err := PValues(stats.AdjustHommel, pvals)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.1, 0.2}, pvals)
}

func TestValidate(t *testing.T) {
	for _, method := range stats.AdjustmentMethods() {
		assert.NoError(t, Validate(method), method)
	}
	assert.ErrorIs(t, Validate("fdr_gbs"), core.ErrUnsupportedMethod)
}
