package main

import (
	"fmt"
	"os"

	"gocorrnet/app"
	"gocorrnet/domain/stats"
	"gocorrnet/internal"
	"gocorrnet/internal/config"
	"gocorrnet/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine; the environment and defaults still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "gocorrnet",
		Short:        "Pairwise correlation tables and threshold networks",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newCorrelateCmd(),
		newNetworkCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// matrixFlags selects the synthetic input and the correlation methods
type matrixFlags struct {
	features   int
	samples    int
	modules    int
	seed       int64
	method     string
	adjustment string
}

func (f *matrixFlags) register(cmd *cobra.Command) {
	defaults := testkit.DefaultAbundanceConfig()
	cmd.Flags().IntVar(&f.features, "features", defaults.FeatureCount, "Number of synthetic features")
	cmd.Flags().IntVar(&f.samples, "samples", defaults.SampleCount, "Number of synthetic samples")
	cmd.Flags().IntVar(&f.modules, "modules", defaults.ModuleCount, "Number of planted co-occurrence modules")
	cmd.Flags().Int64Var(&f.seed, "seed", defaults.Seed, "Random seed for the synthetic matrix")
	cmd.Flags().StringVar(&f.method, "method", "", "Correlation method: pearson|spearman|kendall (default CORR_METHOD)")
	cmd.Flags().StringVar(&f.adjustment, "adjust", "", "P-value adjustment, e.g. fdr_bh|bonferroni|none (default P_ADJUSTMENT_METHOD)")
}

// request parses the method flags and generates the synthetic matrix
func (f *matrixFlags) request() (app.CorrelateRequest, error) {
	var req app.CorrelateRequest
	if f.method != "" {
		method, err := stats.ParseCorrelationMethod(f.method)
		if err != nil {
			return req, err
		}
		req.Method = method
	}
	if f.adjustment != "" {
		adjustment, err := stats.ParseAdjustmentMethod(f.adjustment)
		if err != nil {
			return req, err
		}
		req.Adjustment = adjustment
	}

	genConfig := testkit.DefaultAbundanceConfig()
	genConfig.FeatureCount = f.features
	genConfig.SampleCount = f.samples
	genConfig.ModuleCount = f.modules
	genConfig.Seed = f.seed
	if genConfig.ModuleCount*genConfig.ModuleSize > genConfig.FeatureCount {
		genConfig.ModuleCount = genConfig.FeatureCount / genConfig.ModuleSize
	}
	ds, err := testkit.NewAbundanceGenerator(genConfig).Generate()
	if err != nil {
		return req, fmt.Errorf("failed to generate matrix: %w", err)
	}
	req.Matrix = ds.Matrix
	return req, nil
}

func newService() (*app.NetworkService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	for _, warning := range cfg.Warnings() {
		logger.Warn("%s", warning)
	}
	return app.NewNetworkService(cfg, logger), nil
}

func newCorrelateCmd() *cobra.Command {
	var input matrixFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Compute the pairwise correlation table of a synthetic matrix",
		Long: `Generate a synthetic abundance matrix with planted co-occurrence modules,
test every feature pair and print the table sorted by raw p-value.

Example: gocorrnet correlate --features 20 --method kendall --adjust holm --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			req, err := input.request()
			if err != nil {
				return err
			}
			res, err := svc.Correlate(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s  method=%s  adjustment=%s  fingerprint=%s\n",
				res.RunID, res.Table.Method, res.Table.Adjustment, res.Fingerprint)
			if err := writeMethod(out, res.Table.Method); err != nil {
				return err
			}
			return writeTable(out, res.Table, limit)
		},
	}

	input.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 20, "Rows to print (0 prints all)")
	return cmd
}

func newNetworkCmd() *cobra.Command {
	var input matrixFlags
	var by string
	var minVal, maxVal float64
	var cooccur bool
	var maxParam string
	var hubs int

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Build a threshold network from a synthetic matrix",
		Long: `Generate a synthetic abundance matrix, compute its correlation table and
build an undirected network by correlation strength (--by r) or by
significance (--by p). Unset thresholds come from MIN_VAL, COOCCUR,
MAX_VAL and MAX_PARAM.

Example: gocorrnet network --by p --max-val 0.01 --max-param p_adjusted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := app.ParseNetworkKind(by)
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			correlate, err := input.request()
			if err != nil {
				return err
			}

			req := app.NetworkRequest{CorrelateRequest: correlate, Kind: kind}
			flags := cmd.Flags()
			if flags.Changed("min-val") {
				req.MinVal = &minVal
			}
			if flags.Changed("cooccur") {
				req.Cooccur = &cooccur
			}
			if flags.Changed("max-val") {
				req.MaxVal = &maxVal
			}
			if maxParam != "" {
				column, err := stats.ParseColumn(maxParam)
				if err != nil {
					return err
				}
				req.MaxParam = column
			}

			res, err := svc.BuildNetwork(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s  method=%s  adjustment=%s  by=%s\n",
				res.RunID, res.Table.Method, res.Table.Adjustment, kind)
			if err := writeMethod(out, res.Table.Method); err != nil {
				return err
			}
			return writeNetwork(out, res.Graph, hubs)
		},
	}

	input.register(cmd)
	cmd.Flags().StringVar(&by, "by", "r", "Edge criterion: r (strength) or p (significance)")
	cmd.Flags().Float64Var(&minVal, "min-val", 0, "Strength threshold (default MIN_VAL)")
	cmd.Flags().BoolVar(&cooccur, "cooccur", false, "Use the signed strength threshold as given (default COOCCUR)")
	cmd.Flags().Float64Var(&maxVal, "max-val", 0, "Significance threshold (default MAX_VAL)")
	cmd.Flags().StringVar(&maxParam, "max-param", "", "Significance column: p|p_adjusted (default MAX_PARAM)")
	cmd.Flags().IntVar(&hubs, "hubs", 5, "Features to list by betweenness centrality (0 disables)")
	return cmd
}
