package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"gocorrnet/domain/core"
	"gocorrnet/domain/dataset"
)

// AbundanceGeneratorConfig configures the synthetic abundance table generator
type AbundanceGeneratorConfig struct {
	FeatureCount int     `json:"feature_count"`
	SampleCount  int     `json:"sample_count"`
	ModuleCount  int     `json:"module_count"` // groups of co-occurring features
	ModuleSize   int     `json:"module_size"`  // features per group
	Noise        float64 `json:"noise"`        // per-value log-scale noise
	Depth        float64 `json:"depth"`        // mean count per feature and sample
	Seed         int64   `json:"seed"`
}

// DefaultAbundanceConfig returns sensible defaults for abundance generation
func DefaultAbundanceConfig() AbundanceGeneratorConfig {
	return AbundanceGeneratorConfig{
		FeatureCount: 30,
		SampleCount:  40,
		ModuleCount:  3,
		ModuleSize:   4,
		Noise:        0.3,
		Depth:        200,
		Seed:         42,
	}
}

// AbundanceDataset is a generated matrix plus the planted structure
type AbundanceDataset struct {
	Matrix *dataset.FeatureMatrix
	// Modules lists the features driven by the same latent factor.
	// Features outside every module are independent.
	Modules [][]core.FeatureID
}

// AbundanceGenerator produces count tables with planted co-occurrence modules
type AbundanceGenerator struct {
	config AbundanceGeneratorConfig
	rng    *rand.Rand
}

// NewAbundanceGenerator creates a new abundance generator
func NewAbundanceGenerator(config AbundanceGeneratorConfig) *AbundanceGenerator {
	return &AbundanceGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the dataset. The same config always yields the same matrix.
func (g *AbundanceGenerator) Generate() (*AbundanceDataset, error) {
	cfg := g.config
	if cfg.FeatureCount < 0 || cfg.SampleCount < 0 {
		return nil, fmt.Errorf("feature and sample counts must not be negative")
	}
	if cfg.ModuleCount*cfg.ModuleSize > cfg.FeatureCount {
		return nil, fmt.Errorf("%d modules of %d features exceed %d features",
			cfg.ModuleCount, cfg.ModuleSize, cfg.FeatureCount)
	}
	depth := cfg.Depth
	if depth <= 0 {
		depth = 1
	}

	featureIDs := make([]core.FeatureID, cfg.FeatureCount)
	for i := range featureIDs {
		featureIDs[i] = core.FeatureID(fmt.Sprintf("otu_%03d", i+1))
	}
	sampleIDs := make([]core.SampleID, cfg.SampleCount)
	for s := range sampleIDs {
		sampleIDs[s] = core.SampleID(fmt.Sprintf("sample_%03d", s+1))
	}

	// latent[m][s] drives every feature of module m in sample s
	latent := make([][]float64, cfg.ModuleCount)
	for m := range latent {
		latent[m] = make([]float64, cfg.SampleCount)
		for s := range latent[m] {
			latent[m][s] = g.rng.NormFloat64()
		}
	}

	modules := make([][]core.FeatureID, cfg.ModuleCount)
	values := make([][]float64, cfg.FeatureCount)
	for i := range values {
		module := -1
		if cfg.ModuleSize > 0 && i < cfg.ModuleCount*cfg.ModuleSize {
			module = i / cfg.ModuleSize
			modules[module] = append(modules[module], featureIDs[i])
		}

		values[i] = make([]float64, cfg.SampleCount)
		for s := range values[i] {
			signal := g.rng.NormFloat64()
			if module >= 0 {
				signal = latent[module][s] + cfg.Noise*g.rng.NormFloat64()
			}
			values[i][s] = math.Round(depth * math.Exp(signal))
		}
	}

	matrix, err := dataset.NewFeatureMatrix(featureIDs, sampleIDs, values)
	if err != nil {
		return nil, err
	}
	return &AbundanceDataset{Matrix: matrix, Modules: modules}, nil
}

// MatrixFromRows builds a matrix from literal rows, failing the caller on error
func MatrixFromRows(ids []string, rows ...[]float64) (*dataset.FeatureMatrix, error) {
	featureIDs := make([]core.FeatureID, len(ids))
	for i, id := range ids {
		featureIDs[i] = core.FeatureID(id)
	}
	return dataset.NewFeatureMatrix(featureIDs, nil, rows)
}
