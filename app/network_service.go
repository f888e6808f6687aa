package app

import (
	"context"
	"time"

	"gocorrnet/adapters/builder"
	"gocorrnet/adapters/stats/engine"
	"gocorrnet/domain/core"
	"gocorrnet/domain/dataset"
	"gocorrnet/domain/network"
	"gocorrnet/domain/stats"
	"gocorrnet/internal"
	"gocorrnet/internal/config"
	"gocorrnet/internal/errors"
)

// NetworkKind selects which graph builder a network run uses
type NetworkKind string

const (
	ByStrength     NetworkKind = "r"
	BySignificance NetworkKind = "p"
)

// ParseNetworkKind resolves a builder name
func ParseNetworkKind(s string) (NetworkKind, error) {
	switch s {
	case "r", "strength":
		return ByStrength, nil
	case "p", "significance":
		return BySignificance, nil
	}
	return "", errors.InvalidInput("network kind must be r or p, got " + s)
}

// NetworkService runs the correlate-then-build pipeline with configured defaults
type NetworkService struct {
	engine *engine.StatsEngine
	config *config.Config
	logger *internal.Logger
}

// CorrelateRequest defines the inputs of a correlation run. Empty methods
// fall back to the configured defaults.
type CorrelateRequest struct {
	Matrix     *dataset.FeatureMatrix
	Method     stats.CorrelationMethod
	Adjustment stats.AdjustmentMethod
	RunID      core.RunID // optional, will be generated if empty
}

// NetworkRequest defines the inputs of a network run. Threshold fields
// left nil take the configured defaults.
type NetworkRequest struct {
	CorrelateRequest
	Kind     NetworkKind
	MinVal   *float64
	Cooccur  *bool
	MaxVal   *float64
	MaxParam stats.Column
}

// CorrelateResult contains the output of a correlation run
type CorrelateResult struct {
	RunID       core.RunID
	Table       *stats.PairwiseStatTable
	Fingerprint core.Hash
	Runtime     time.Duration
}

// NetworkResult contains the output of a network run
type NetworkResult struct {
	CorrelateResult
	Graph   *network.Graph
	Summary network.Summary
}

// NewNetworkService creates the pipeline service. A nil config uses
// config.Default and a nil logger uses internal.DefaultLogger.
func NewNetworkService(cfg *config.Config, logger *internal.Logger) *NetworkService {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	opts := engine.Options{
		Workers:  cfg.Correlation.Workers,
		MaxPairs: cfg.Correlation.MaxPairs,
	}
	return &NetworkService{
		engine: engine.NewStatsEngine(opts, logger),
		config: cfg,
		logger: logger.With("network"),
	}
}

// Correlate computes the pairwise statistics table for a matrix
func (s *NetworkService) Correlate(ctx context.Context, req CorrelateRequest) (*CorrelateResult, error) {
	if req.Matrix == nil {
		return nil, errors.InvalidInput("matrix is required")
	}

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}
	method := req.Method
	if method == "" {
		method = s.config.Correlation.Method
	}
	adjustment := req.Adjustment
	if adjustment == "" {
		adjustment = s.config.Correlation.Adjustment
	}

	startTime := time.Now()
	table, err := s.engine.ComputePairwiseCorrelations(ctx, req.Matrix, method, adjustment)
	if err != nil {
		return nil, errors.Wrapf(err, "run %s: correlation failed", runID)
	}
	runtime := time.Since(startTime)

	s.logger.Info("run %s: %s/%s over %d features produced %d rows in %s",
		runID, method, adjustment, req.Matrix.FeatureCount(), table.Len(), runtime)

	return &CorrelateResult{
		RunID:       runID,
		Table:       table,
		Fingerprint: table.Fingerprint(),
		Runtime:     runtime,
	}, nil
}

// BuildNetwork correlates the matrix and builds a graph from the table
func (s *NetworkService) BuildNetwork(ctx context.Context, req NetworkRequest) (*NetworkResult, error) {
	kind := req.Kind
	if kind == "" {
		kind = ByStrength
	}
	if kind != ByStrength && kind != BySignificance {
		return nil, errors.InvalidInput("network kind must be r or p, got " + string(kind))
	}

	// Reject an impossible significance column before paying for the sweep.
	column := req.MaxParam
	if kind == BySignificance {
		if column == "" {
			column = s.config.Significance.MaxParam
		}
		if _, err := stats.ParseColumn(string(column)); err != nil {
			return nil, errors.Wrap(err, "invalid significance column")
		}
	}

	correlated, err := s.Correlate(ctx, req.CorrelateRequest)
	if err != nil {
		return nil, err
	}

	var graph *network.Graph
	switch kind {
	case ByStrength:
		graph = s.StrengthNetwork(correlated.Table, req.MinVal, req.Cooccur)
	case BySignificance:
		graph, err = s.SignificanceNetwork(correlated.Table, req.MaxVal, column)
		if err != nil {
			return nil, errors.Wrapf(err, "run %s: network build failed", correlated.RunID)
		}
	}

	summary := graph.Summary()
	s.logger.Info("run %s: %s network has %d nodes, %d edges, %d components",
		correlated.RunID, kind, summary.Nodes, summary.Edges, summary.Components)

	return &NetworkResult{
		CorrelateResult: *correlated,
		Graph:           graph,
		Summary:         summary,
	}, nil
}

// StrengthNetwork builds the r-threshold graph; nil thresholds use the config
func (s *NetworkService) StrengthNetwork(table *stats.PairwiseStatTable, minVal *float64, cooccur *bool) *network.Graph {
	threshold := s.config.Strength.MinVal
	if minVal != nil {
		threshold = *minVal
	}
	mode := s.config.Strength.Cooccur
	if cooccur != nil {
		mode = *cooccur
	}
	return builder.BuildNetworkByStrength(table, threshold, mode)
}

// SignificanceNetwork builds the p-threshold graph; a nil threshold or
// empty column uses the config
func (s *NetworkService) SignificanceNetwork(table *stats.PairwiseStatTable, maxVal *float64, column stats.Column) (*network.Graph, error) {
	threshold := s.config.Significance.MaxVal
	if maxVal != nil {
		threshold = *maxVal
	}
	if column == "" {
		column = s.config.Significance.MaxParam
	}
	return builder.BuildNetworkBySignificance(table, threshold, column)
}
