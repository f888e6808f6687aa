package stats

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gocorrnet/domain/core"
)

// ============================================================================
// METHOD SELECTORS (closed sets)
// ============================================================================

// CorrelationMethod selects the pairwise correlation test
type CorrelationMethod string

const (
	MethodPearson  CorrelationMethod = "pearson"
	MethodSpearman CorrelationMethod = "spearman"
	MethodKendall  CorrelationMethod = "kendall"

	DefaultCorrelationMethod = MethodSpearman
)

// CorrelationMethods lists every supported correlation test
func CorrelationMethods() []CorrelationMethod {
	return []CorrelationMethod{MethodPearson, MethodSpearman, MethodKendall}
}

// ParseCorrelationMethod resolves a method name, accepting the kendalltau
// and kendall-tau spellings.
func ParseCorrelationMethod(s string) (CorrelationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pearson":
		return MethodPearson, nil
	case "spearman":
		return MethodSpearman, nil
	case "kendall", "kendalltau", "kendall-tau", "kendall_tau":
		return MethodKendall, nil
	}
	return "", core.NewUnsupportedCorrelationError(s)
}

// Valid reports whether m is one of the supported tests
func (m CorrelationMethod) Valid() bool {
	return slices.Contains(CorrelationMethods(), m)
}

// AdjustmentMethod selects the multiple-testing correction
type AdjustmentMethod string

const (
	AdjustNone          AdjustmentMethod = "none"
	AdjustBonferroni    AdjustmentMethod = "bonferroni"
	AdjustSidak         AdjustmentMethod = "sidak"
	AdjustHolmSidak     AdjustmentMethod = "holm-sidak"
	AdjustHolm          AdjustmentMethod = "holm"
	AdjustSimesHochberg AdjustmentMethod = "simes-hochberg"
	AdjustHommel        AdjustmentMethod = "hommel"
	AdjustFDRBH         AdjustmentMethod = "fdr_bh" // Benjamini-Hochberg
	AdjustFDRBY         AdjustmentMethod = "fdr_by" // Benjamini-Yekutieli

	DefaultAdjustmentMethod = AdjustFDRBH
)

// AdjustmentMethods lists every supported correction, including none
func AdjustmentMethods() []AdjustmentMethod {
	return []AdjustmentMethod{
		AdjustNone, AdjustBonferroni, AdjustSidak, AdjustHolmSidak, AdjustHolm,
		AdjustSimesHochberg, AdjustHommel, AdjustFDRBH, AdjustFDRBY,
	}
}

// ParseAdjustmentMethod resolves a correction name. The empty string
// means none.
func ParseAdjustmentMethod(s string) (AdjustmentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AdjustNone, nil
	case "b", "bonferroni":
		return AdjustBonferroni, nil
	case "s", "sidak":
		return AdjustSidak, nil
	case "hs", "holm-sidak":
		return AdjustHolmSidak, nil
	case "h", "holm":
		return AdjustHolm, nil
	case "sh", "simes-hochberg", "hochberg":
		return AdjustSimesHochberg, nil
	case "ho", "hommel":
		return AdjustHommel, nil
	case "fdr_bh", "fdr_i", "fdr_p", "fdri", "fdrp", "bh":
		return AdjustFDRBH, nil
	case "fdr_by", "fdr_n", "fdr_c", "fdrn", "fdrcorr", "by":
		return AdjustFDRBY, nil
	}
	return "", core.NewUnsupportedAdjustmentError(s)
}

// Enabled reports whether the correction produces a p_adjusted column
func (m AdjustmentMethod) Enabled() bool {
	return m != "" && m != AdjustNone
}

// Column names a p-value column of a PairwiseStatTable
type Column string

const (
	ColumnP         Column = "p"
	ColumnPAdjusted Column = "p_adjusted"
)

// ParseColumn resolves a column name
func ParseColumn(s string) (Column, error) {
	switch Column(strings.TrimSpace(s)) {
	case ColumnP:
		return ColumnP, nil
	case ColumnPAdjusted:
		return ColumnPAdjusted, nil
	}
	return "", fmt.Errorf("%w %q (want p or p_adjusted)", core.ErrUnknownColumn, s)
}

// ============================================================================
// PAIRWISE STATISTICS
// ============================================================================

// PairwiseStatRow holds the statistics of one unordered feature pair.
// PAdjusted is meaningful only when the owning table has an adjusted column.
type PairwiseStatRow struct {
	FeatureI  core.FeatureID
	FeatureJ  core.FeatureID
	R         float64
	P         float64
	PAdjusted float64
}

// PairwiseStatTable is the ordered output of one engine invocation
type PairwiseStatTable struct {
	Method     CorrelationMethod
	Adjustment AdjustmentMethod
	Rows       []PairwiseStatRow
}

// HasColumn reports whether the table carries the given column
func (t *PairwiseStatTable) HasColumn(c Column) bool {
	switch c {
	case ColumnP:
		return true
	case ColumnPAdjusted:
		return t.Adjustment.Enabled()
	}
	return false
}

// HasAdjusted reports whether p_adjusted is present
func (t *PairwiseStatTable) HasAdjusted() bool {
	return t.HasColumn(ColumnPAdjusted)
}

// Len returns the number of rows
func (t *PairwiseStatTable) Len() int {
	return len(t.Rows)
}

// Value returns the named p-value column of row i
func (t *PairwiseStatTable) Value(i int, c Column) (float64, error) {
	if !t.HasColumn(c) {
		return math.NaN(), core.NewMissingColumnError(string(c))
	}
	if c == ColumnPAdjusted {
		return t.Rows[i].PAdjusted, nil
	}
	return t.Rows[i].P, nil
}

// PValues returns the raw p-values in table order
func (t *PairwiseStatTable) PValues() []float64 {
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.P
	}
	return out
}

// SortByP orders rows by ascending raw p-value. The sort is stable and
// non-finite p-values go last.
func (t *PairwiseStatTable) SortByP() {
	slices.SortStableFunc(t.Rows, func(a, b PairwiseStatRow) int {
		return ComparePValues(a.P, b.P)
	})
}

// ComparePValues orders p-values ascending with NaN after every number
func ComparePValues(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Fingerprint hashes the table contents; identical tables (same rows in
// the same order) share a fingerprint.
func (t *PairwiseStatTable) Fingerprint() core.Hash {
	var h core.Hasher
	h.WriteString(string(t.Method))
	h.WriteString(string(t.Adjustment))
	adjusted := t.HasAdjusted()
	for _, row := range t.Rows {
		h.WriteString(string(row.FeatureI))
		h.WriteString(string(row.FeatureJ))
		h.WriteFloat(row.R)
		h.WriteFloat(row.P)
		if adjusted {
			h.WriteFloat(row.PAdjusted)
		}
	}
	return h.Sum()
}
