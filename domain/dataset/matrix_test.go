package dataset

import (
	"testing"

	"gocorrnet/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatureMatrix_Validation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := NewFeatureMatrix(
			[]core.FeatureID{"a", "b"},
			[]core.SampleID{"s1", "s2", "s3"},
			[][]float64{{1, 2, 3}, {4, 5, 6}},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, m.FeatureCount())
		assert.Equal(t, 3, m.SampleCount())
	})

	t.Run("ragged feature vector", func(t *testing.T) {
		_, err := NewFeatureMatrix(
			[]core.FeatureID{"a", "b", "c"},
			nil,
			[][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8}},
		)
		require.ErrorIs(t, err, core.ErrDimensionMismatch)
		assert.Contains(t, err.Error(), "feature c has 2")
	})

	t.Run("sample axis mismatch", func(t *testing.T) {
		_, err := NewFeatureMatrix(
			[]core.FeatureID{"a"},
			[]core.SampleID{"s1"},
			[][]float64{{1, 2}},
		)
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	})

	t.Run("ids and vectors disagree", func(t *testing.T) {
		_, err := NewFeatureMatrix([]core.FeatureID{"a", "b"}, nil, [][]float64{{1}})
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	})

	t.Run("duplicate feature", func(t *testing.T) {
		_, err := NewFeatureMatrix(
			[]core.FeatureID{"a", "a"},
			nil,
			[][]float64{{1, 2}, {3, 4}},
		)
		assert.ErrorIs(t, err, core.ErrDuplicateFeature)
	})

	t.Run("empty feature id", func(t *testing.T) {
		_, err := NewFeatureMatrix([]core.FeatureID{""}, nil, [][]float64{{1}})
		assert.ErrorIs(t, err, core.ErrEmptyFeatureID)
	})

	t.Run("empty matrix", func(t *testing.T) {
		m, err := NewFeatureMatrix(nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.PairCount())
	})
}

func TestFeatureMatrix_Pairs(t *testing.T) {
	ids := []core.FeatureID{"a", "b", "c", "d", "e"}
	values := make([][]float64, len(ids))
	for i := range values {
		values[i] = []float64{float64(i), 1}
	}
	m, err := NewFeatureMatrix(ids, nil, values)
	require.NoError(t, err)

	seen := make(map[[2]int]bool)
	for p := range m.Pairs() {
		assert.Less(t, p.I, p.J)
		key := [2]int{p.I, p.J}
		assert.False(t, seen[key], "pair %v visited twice", key)
		seen[key] = true
	}
	assert.Len(t, seen, 10)
	assert.Equal(t, 10, m.PairCount())

	// restartable
	count := 0
	for range m.Pairs() {
		count++
	}
	assert.Equal(t, 10, count)

	// early stop
	count = 0
	for range m.Pairs() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestFeatureMatrix_Index(t *testing.T) {
	m, err := NewFeatureMatrix([]core.FeatureID{"a", "b"}, nil, [][]float64{{1}, {2}})
	require.NoError(t, err)

	i, ok := m.Index("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = m.Index("z")
	assert.False(t, ok)

	id, vals := m.Feature(0)
	assert.Equal(t, core.FeatureID("a"), id)
	assert.Equal(t, []float64{1}, vals)
}
