package engine

import (
	"math"

	"gocorrnet/domain/core"
	"gocorrnet/domain/dataset"

	"github.com/montanaflynn/stats"
)

// zeroVarianceEpsilon is the variance below which a feature is treated as constant
const zeroVarianceEpsilon = 1e-12

// FeatureProfile summarizes one feature's value vector
type FeatureProfile struct {
	FeatureID    core.FeatureID
	SampleCount  int
	MissingCount int     // NaN values
	Mean         float64 // over non-missing values
	Variance     float64 // population variance over non-missing values
	Prevalence   float64 // fraction of samples with a non-zero value
}

// ZeroVariance reports whether the feature is constant across samples
func (p FeatureProfile) ZeroVariance() bool {
	return p.SampleCount-p.MissingCount > 0 && p.Variance < zeroVarianceEpsilon
}

// Degenerate reports whether every pair involving the feature has
// undefined statistics
func (p FeatureProfile) Degenerate() bool {
	return p.MissingCount > 0 || p.SampleCount < 2 || p.ZeroVariance()
}

// Reason describes why a feature is degenerate
func (p FeatureProfile) Reason() string {
	switch {
	case p.SampleCount < 2:
		return "observed in fewer than 2 samples"
	case p.MissingCount == p.SampleCount:
		return "entirely missing"
	case p.MissingCount > 0:
		return "partially missing"
	case p.ZeroVariance():
		return "constant"
	}
	return ""
}

// ProfileFeatures profiles every feature of the matrix
func ProfileFeatures(matrix *dataset.FeatureMatrix) []FeatureProfile {
	profiles := make([]FeatureProfile, 0, matrix.FeatureCount())
	for i := 0; i < matrix.FeatureCount(); i++ {
		id, values := matrix.Feature(i)
		profiles = append(profiles, profileFeature(id, values))
	}
	return profiles
}

func profileFeature(id core.FeatureID, values []float64) FeatureProfile {
	profile := FeatureProfile{
		FeatureID:   id,
		SampleCount: len(values),
		Mean:        math.NaN(),
		Variance:    math.NaN(),
	}

	observed := make(stats.Float64Data, 0, len(values))
	nonZero := 0
	for _, v := range values {
		if math.IsNaN(v) {
			profile.MissingCount++
			continue
		}
		if v != 0 {
			nonZero++
		}
		observed = append(observed, v)
	}

	if len(values) > 0 {
		profile.Prevalence = float64(nonZero) / float64(len(values))
	}
	if len(observed) == 0 {
		return profile
	}

	if mean, err := observed.Mean(); err == nil {
		profile.Mean = mean
	}
	if variance, err := observed.PopulationVariance(); err == nil {
		profile.Variance = variance
	}
	return profile
}
