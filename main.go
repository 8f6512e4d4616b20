package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/priornet/internal/util"
	"github.com/yumyai/priornet/logger"
	"github.com/yumyai/priornet/pkg/dataset"
	"github.com/yumyai/priornet/pkg/params"
	"github.com/yumyai/priornet/pkg/prior"
)

var (
	exprPath     string
	ppiPath      string
	motifPath    string
	chipPath     string
	outDir       string
	manifestPath string

	runParams params.Params
)

var rootCmd = &cobra.Command{
	Use:   "priornet",
	Short: "Build a TF-gene regulatory prior matrix",
	Long: `priornet fuses motif-binding evidence, PPI-derived TF identity and
gene coexpression into a single weighted TF x gene prior matrix, written as
a tab-separated edge list for network inference.

 Sample usage:
 priornet --expr expression.txt --ppi ppi.txt --motif motif.txt --add-corr 1 --motif-weight 0.5`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {

		if outDir == "" {
			outDir = os.Getenv("PRIORNET_DATA")
			if outDir == "" {
				logger.Warn("No local environment (PRIORNET_DATA), using default value (./out)")
				outDir = "./out"
			}
		}
		if !util.DirExists(outDir) {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if manifestPath == "" {
			manifestPath = os.Getenv("PRIORNET_MANIFEST") // empty keeps provenance off
		}

		cfg := prior.Config{
			ExpressionPath: exprPath,
			PPIPath:        ppiPath,
			Motif:          dataset.RawFile{Path: motifPath},
			ChIPPath:       chipPath,
			OutDir:         outDir,
			ManifestPath:   manifestPath,
			Params:         runParams,
		}

		res, err := prior.Run(context.Background(), cfg)
		if err != nil {
			return err
		}

		fmt.Println(res.OutputPath)
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVar(&exprPath, "expr", "", "expression matrix (gene id + numeric conditions per row)")
	flags.StringVar(&ppiPath, "ppi", "", "PPI edge list (column 1 defines the TF set)")
	flags.StringVar(&motifPath, "motif", "", "motif prior edge list (TF gene weight)")
	flags.StringVar(&chipPath, "chip", "", "ChIP ground-truth table (TF followed by targets)")
	flags.StringVar(&outDir, "out", "", "output directory (default $PRIORNET_DATA, then ./out)")
	flags.StringVar(&manifestPath, "manifest", "", "sqlite manifest db for run provenance (default $PRIORNET_MANIFEST)")

	flags.Float64Var(&runParams.MotifWeight, "motif-weight", 0, "coexpression blend ratio in [0,1]")
	flags.Float64Var(&runParams.MotifCutOff, "motif-cutoff", 0, "sparsification floor for coexpression evidence")
	flags.IntVar(&runParams.AddCorr, "add-corr", 0, "coexpression fusion variant {0..4}")
	flags.IntVar(&runParams.AbsCoex, "abs-coex", 1, "absolute-coexpression label {0,1}")
	flags.Float64Var(&runParams.Thresh, "thresh", 0.05, "binary binding threshold in [0,1]")
	flags.IntVar(&runParams.OldMotif, "old-motif", 0, "use legacy motif weights {0,1}")
	flags.IntVar(&runParams.IncCoverage, "inc-coverage", 1, "include coverage branch {0,1}")
	flags.IntVar(&runParams.QPval, "qpval", 0, "motif weights are q-values {0,1}")
	flags.IntVar(&runParams.BridgingProteins, "bridging-proteins", 0, "PPI bridging depth {0..7}, passed through to the network expansion step")
	flags.IntVar(&runParams.AddChip, "add-chip", 0, "ChIP overlay mode {0,1,2}")
	flags.IntVar(&runParams.Ctrl, "ctrl", 0, "control condition label {0..3}")

	for _, name := range []string{"expr", "ppi", "motif"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func main() {

	// Establish logger
	VERSION := "0.1.0"
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	logger.Info("Start:", zap.String("Version", VERSION))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Run failed:", zap.String("error message", err.Error()))
		logger.Sync()
		os.Exit(1)
	}
}
