package engine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"gocorrnet/adapters/stats/adjust"
	"gocorrnet/adapters/stats/senses"
	"gocorrnet/domain/core"
	"gocorrnet/domain/dataset"
	"gocorrnet/domain/stats"

	"golang.org/x/sync/errgroup"
)

// ComputePairwiseCorrelations tests every unordered feature pair of matrix
// with method, optionally adds adjusted p-values, and returns the rows
// sorted by ascending raw p-value.
//
// Method names are parsed case-insensitively with their aliases
// (kendall-tau, bh, ...), and they and the matrix shape are validated
// before any pair is computed. Degenerate pairs (constant or NaN-containing vectors) produce
// NaN statistics and sort last. The result is identical for any worker
// count.
func (e *StatsEngine) ComputePairwiseCorrelations(
	ctx context.Context,
	matrix *dataset.FeatureMatrix,
	method stats.CorrelationMethod,
	adjustment stats.AdjustmentMethod,
) (*stats.PairwiseStatTable, error) {
	method, err := stats.ParseCorrelationMethod(string(method))
	if err != nil {
		return nil, err
	}
	// "" parses to none
	adjustment, err = stats.ParseAdjustmentMethod(string(adjustment))
	if err != nil {
		return nil, err
	}
	sense, err := senses.ForMethod(method)
	if err != nil {
		return nil, err
	}
	if err := adjust.Validate(adjustment); err != nil {
		return nil, err
	}
	if err := matrix.Validate(); err != nil {
		return nil, err
	}

	table := &stats.PairwiseStatTable{
		Method:     method,
		Adjustment: adjustment,
		Rows:       []stats.PairwiseStatRow{},
	}

	totalPairs := matrix.PairCount()
	if totalPairs == 0 {
		return table, nil
	}
	if e.opts.MaxPairs > 0 && totalPairs > e.opts.MaxPairs {
		return nil, fmt.Errorf("%w: %d > %d", core.ErrTooManyPairs, totalPairs, e.opts.MaxPairs)
	}

	for _, profile := range ProfileFeatures(matrix) {
		if profile.Degenerate() {
			e.logger.Warn("feature %s is %s; its pairs will have undefined statistics", profile.FeatureID, profile.Reason())
		}
	}

	startTime := time.Now()
	rows, err := e.sweep(ctx, matrix, sense)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("%s: %d features, %d pairs in %s", method, matrix.FeatureCount(), len(rows), time.Since(startTime))

	// Adjustment needs the complete p-value vector, so it runs after the sweep.
	if adjustment.Enabled() {
		pvals := make([]float64, len(rows))
		for i := range rows {
			pvals[i] = rows[i].P
		}
		adjusted, err := adjust.PValues(adjustment, pvals)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].PAdjusted = adjusted[i]
		}
	}

	table.Rows = rows
	table.SortByP()
	return table, nil
}

// sweep computes one row per pair. Each pair has a fixed slot, so the
// row order is the pair enumeration order regardless of scheduling.
func (e *StatsEngine) sweep(ctx context.Context, matrix *dataset.FeatureMatrix, sense senses.CorrelationSense) ([]stats.PairwiseStatRow, error) {
	pairs := slices.Collect(matrix.Pairs())
	rows := make([]stats.PairwiseStatRow, len(pairs))

	workers := e.workers()
	chunk := e.chunkSize(len(pairs), workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(pairs); start += chunk {
		if gctx.Err() != nil {
			break
		}
		end := min(start+chunk, len(pairs))
		g.Go(func() error {
			for k := start; k < end; k++ {
				pair := pairs[k]
				idI, x := matrix.Feature(pair.I)
				idJ, y := matrix.Feature(pair.J)
				res := sense.Correlate(x, y)
				rows[k] = stats.PairwiseStatRow{
					FeatureI: idI,
					FeatureJ: idJ,
					R:        res.R,
					P:        res.P,
				}
			}
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
