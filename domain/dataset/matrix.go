package dataset

import (
	"fmt"
	"iter"

	"gocorrnet/domain/core"
)

// FeatureMatrix is the canonical input to the correlation engine.
// Values is feature-major: Values[i] holds feature i's abundances across
// all samples, aligned by sample position.
type FeatureMatrix struct {
	FeatureIDs []core.FeatureID
	SampleIDs  []core.SampleID // optional; when present its length fixes the sample count
	Values     [][]float64
}

// Pair is an unordered pair of feature indices with I < J
type Pair struct {
	I int
	J int
}

// NewFeatureMatrix builds a matrix and validates it
func NewFeatureMatrix(featureIDs []core.FeatureID, sampleIDs []core.SampleID, values [][]float64) (*FeatureMatrix, error) {
	m := &FeatureMatrix{
		FeatureIDs: featureIDs,
		SampleIDs:  sampleIDs,
		Values:     values,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate ensures the matrix is rectangular and feature IDs are unique.
// The first ragged feature is reported against feature 0 (or the sample
// axis when SampleIDs is set).
func (m *FeatureMatrix) Validate() error {
	if len(m.FeatureIDs) != len(m.Values) {
		return fmt.Errorf("%w: %d feature identifiers for %d value vectors",
			core.ErrDimensionMismatch, len(m.FeatureIDs), len(m.Values))
	}

	seen := make(map[core.FeatureID]struct{}, len(m.FeatureIDs))
	for _, id := range m.FeatureIDs {
		if id == "" {
			return core.ErrEmptyFeatureID
		}
		if _, dup := seen[id]; dup {
			return core.NewDuplicateFeatureError(id)
		}
		seen[id] = struct{}{}
	}

	if len(m.Values) == 0 {
		return nil
	}

	want := len(m.Values[0])
	if m.SampleIDs != nil && len(m.SampleIDs) != want {
		return fmt.Errorf("%w: %d sample identifiers, feature %s has %d values",
			core.ErrDimensionMismatch, len(m.SampleIDs), m.FeatureIDs[0], want)
	}
	for i := 1; i < len(m.Values); i++ {
		if len(m.Values[i]) != want {
			return core.NewDimensionMismatchError(m.FeatureIDs[0], m.FeatureIDs[i], want, len(m.Values[i]))
		}
	}

	return nil
}

// FeatureCount returns the number of features
func (m *FeatureMatrix) FeatureCount() int {
	return len(m.FeatureIDs)
}

// SampleCount returns the number of samples
func (m *FeatureMatrix) SampleCount() int {
	if len(m.Values) == 0 {
		return len(m.SampleIDs)
	}
	return len(m.Values[0])
}

// Feature returns the identifier and value vector of feature i.
// The returned slice aliases the matrix and must not be modified.
func (m *FeatureMatrix) Feature(i int) (core.FeatureID, []float64) {
	return m.FeatureIDs[i], m.Values[i]
}

// Index returns the position of a feature
func (m *FeatureMatrix) Index(id core.FeatureID) (int, bool) {
	for i, fid := range m.FeatureIDs {
		if fid == id {
			return i, true
		}
	}
	return -1, false
}

// PairCount returns n*(n-1)/2
func (m *FeatureMatrix) PairCount() int {
	n := m.FeatureCount()
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Pairs yields every unordered pair of distinct features exactly once,
// upper triangle in row-major order. The sequence is restartable.
func (m *FeatureMatrix) Pairs() iter.Seq[Pair] {
	n := m.FeatureCount()
	return func(yield func(Pair) bool) {
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if !yield(Pair{I: i, J: j}) {
					return
				}
			}
		}
	}
}
