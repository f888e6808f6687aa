// Package builder builds correlation networks from pairwise statistics.
//
// Both builders share one shape: visit every row of the table once and add
// at most one edge per row when the row passes an inclusion predicate.
// Significance thresholds, and strength thresholds outside co-occurrence
// mode, are replaced by their absolute value, so a negative threshold is
// normalized rather than rejected. Strength is compared against the signed
// r, not |r|: strongly negative correlations never pass a non-negative
// threshold.
package builder

import (
	"math"

	"gocorrnet/domain/core"
	"gocorrnet/domain/network"
	"gocorrnet/domain/stats"
)

// Predicate decides whether a row becomes an edge
type Predicate func(row stats.PairwiseStatRow) bool

// Build adds an edge for every row accepted by include
func Build(table *stats.PairwiseStatTable, include Predicate) *network.Graph {
	g := network.NewGraph()
	for _, row := range table.Rows {
		if include(row) {
			g.AddEdge(row.FeatureI, row.FeatureJ)
		}
	}
	return g
}

// StrengthPredicate accepts rows with r > minVal when cooccur is set and
// r > |minVal| otherwise. Both comparisons are strict.
func StrengthPredicate(minVal float64, cooccur bool) Predicate {
	threshold := minVal
	if !cooccur {
		threshold = math.Abs(minVal)
	}
	return func(row stats.PairwiseStatRow) bool {
		return row.R > threshold
	}
}

// SignificancePredicate accepts rows whose column value is < |maxVal|
func SignificancePredicate(maxVal float64, column stats.Column) Predicate {
	threshold := math.Abs(maxVal)
	if column == stats.ColumnPAdjusted {
		return func(row stats.PairwiseStatRow) bool {
			return row.PAdjusted < threshold
		}
	}
	return func(row stats.PairwiseStatRow) bool {
		return row.P < threshold
	}
}

// BuildNetworkByStrength builds a network from correlation coefficients.
// With cooccur the threshold is used as given; without it the threshold
// is |minVal|. Either way only rows with r strictly above the threshold
// become edges.
func BuildNetworkByStrength(table *stats.PairwiseStatTable, minVal float64, cooccur bool) *network.Graph {
	return Build(table, StrengthPredicate(minVal, cooccur))
}

// BuildNetworkBySignificance builds a network from p-values: rows whose
// column value is strictly below |maxVal| become edges. It fails before
// adding any edge if the table lacks the column.
func BuildNetworkBySignificance(table *stats.PairwiseStatTable, maxVal float64, column stats.Column) (*network.Graph, error) {
	if _, err := stats.ParseColumn(string(column)); err != nil {
		return nil, err
	}
	if !table.HasColumn(column) {
		return nil, core.NewMissingColumnError(string(column))
	}
	return Build(table, SignificancePredicate(maxVal, column)), nil
}
