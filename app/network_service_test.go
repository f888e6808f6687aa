package app

import (
	"context"
	"io"
	"testing"

	"gocorrnet/domain/core"
	"gocorrnet/domain/stats"
	"gocorrnet/internal"
	"gocorrnet/internal/config"
	"gocorrnet/internal/errors"
	"gocorrnet/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg *config.Config) *NetworkService {
	t.Helper()
	return NewNetworkService(cfg, internal.NewLoggerTo(io.Discard, internal.LogLevelError))
}

func plantedDataset(t *testing.T) *testkit.AbundanceDataset {
	t.Helper()
	ds, err := testkit.NewAbundanceGenerator(testkit.DefaultAbundanceConfig()).Generate()
	require.NoError(t, err)
	return ds
}

func TestCorrelate_UsesConfigDefaults(t *testing.T) {
	ds := plantedDataset(t)
	svc := newTestService(t, nil)

	res, err := svc.Correlate(context.Background(), CorrelateRequest{Matrix: ds.Matrix})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, stats.MethodSpearman, res.Table.Method)
	assert.Equal(t, stats.AdjustFDRBH, res.Table.Adjustment)
	assert.Equal(t, ds.Matrix.PairCount(), res.Table.Len())
	assert.Equal(t, res.Table.Fingerprint(), res.Fingerprint)
}

func TestCorrelate_ExplicitRunIDAndMethod(t *testing.T) {
	ds := plantedDataset(t)
	svc := newTestService(t, nil)

	res, err := svc.Correlate(context.Background(), CorrelateRequest{
		Matrix:     ds.Matrix,
		Method:     stats.MethodPearson,
		Adjustment: stats.AdjustNone,
		RunID:      core.RunID("run-1"),
	})
	require.NoError(t, err)

	assert.Equal(t, core.RunID("run-1"), res.RunID)
	assert.Equal(t, stats.MethodPearson, res.Table.Method)
	assert.False(t, res.Table.HasAdjusted())
}

func TestCorrelate_AcceptsMethodAliases(t *testing.T) {
	ds := plantedDataset(t)
	svc := newTestService(t, nil)

	for _, name := range []string{"kendall-tau", "kendalltau", "Pearson"} {
		res, err := svc.Correlate(context.Background(), CorrelateRequest{
			Matrix:     ds.Matrix,
			Method:     stats.CorrelationMethod(name),
			Adjustment: "bh",
		})
		require.NoError(t, err, name)
		assert.True(t, res.Table.Method.Valid(), name)
		assert.Equal(t, stats.AdjustFDRBH, res.Table.Adjustment, name)
	}
}

func TestCorrelate_ErrorCodes(t *testing.T) {
	ds := plantedDataset(t)
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Correlate(ctx, CorrelateRequest{Matrix: ds.Matrix, Method: "cosine"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedMethod, errors.GetCode(err))
	assert.ErrorIs(t, err, core.ErrUnsupportedMethod)

	_, err = svc.Correlate(ctx, CorrelateRequest{Matrix: ds.Matrix, Adjustment: "fdr_tsbh"})
	assert.Equal(t, errors.CodeUnsupportedMethod, errors.GetCode(err))

	_, err = svc.Correlate(ctx, CorrelateRequest{})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	ragged := *ds.Matrix
	ragged.Values = append([][]float64{}, ds.Matrix.Values...)
	ragged.Values[1] = ragged.Values[1][:3]
	_, err = svc.Correlate(ctx, CorrelateRequest{Matrix: &ragged})
	assert.Equal(t, errors.CodeDimensionMismatch, errors.GetCode(err))
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestCorrelate_MaxPairsFromConfig(t *testing.T) {
	ds := plantedDataset(t)
	cfg := config.Default()
	cfg.Correlation.MaxPairs = 10

	_, err := newTestService(t, cfg).Correlate(context.Background(), CorrelateRequest{Matrix: ds.Matrix})
	assert.ErrorIs(t, err, core.ErrTooManyPairs)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestBuildNetwork_StrengthRecoversModules(t *testing.T) {
	ds := plantedDataset(t)
	svc := newTestService(t, nil)
	minVal := 0.6

	res, err := svc.BuildNetwork(context.Background(), NetworkRequest{
		CorrelateRequest: CorrelateRequest{Matrix: ds.Matrix},
		Kind:             ByStrength,
		MinVal:           &minVal,
	})
	require.NoError(t, err)

	for _, module := range ds.Modules {
		for i := range module {
			for j := i + 1; j < len(module); j++ {
				assert.True(t, res.Graph.HasEdge(module[i], module[j]), "%s-%s", module[i], module[j])
			}
		}
	}
	assert.Equal(t, res.Graph.Summary(), res.Summary)
}

func TestBuildNetwork_SignificanceWithoutAdjustment(t *testing.T) {
	ds := plantedDataset(t)
	svc := newTestService(t, nil)

	_, err := svc.BuildNetwork(context.Background(), NetworkRequest{
		CorrelateRequest: CorrelateRequest{Matrix: ds.Matrix, Adjustment: stats.AdjustNone},
		Kind:             BySignificance,
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
	assert.ErrorIs(t, err, core.ErrMissingColumn)

	res, err := svc.BuildNetwork(context.Background(), NetworkRequest{
		CorrelateRequest: CorrelateRequest{Matrix: ds.Matrix, Adjustment: stats.AdjustNone},
		Kind:             BySignificance,
		MaxParam:         stats.ColumnP,
	})
	require.NoError(t, err)
	assert.Positive(t, res.Summary.Edges)
}

func TestBuildNetwork_RejectsBadInputsBeforeSweep(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.BuildNetwork(context.Background(), NetworkRequest{Kind: "q"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.BuildNetwork(context.Background(), NetworkRequest{Kind: BySignificance, MaxParam: "q"})
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}

func TestParseNetworkKind(t *testing.T) {
	kind, err := ParseNetworkKind("p")
	require.NoError(t, err)
	assert.Equal(t, BySignificance, kind)

	kind, err = ParseNetworkKind("strength")
	require.NoError(t, err)
	assert.Equal(t, ByStrength, kind)

	_, err = ParseNetworkKind("x")
	assert.Error(t, err)
}
