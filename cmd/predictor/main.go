package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/config"
	"github.com/abelzeko/water-quality/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "predictor",
	Short: "Water Pollutants Predictor",
	Long: `Predicts the levels of six water pollutants (O2, NO3, NO2, SO4, PO4, CL)
for a monitoring station and year, and explains what each level means for water health.

The trained model and its column layout are read from MODEL_PATH and COLUMNS_PATH,
or from the SQLite bundle in ARTIFACT_BUNDLE.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Environment, cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, botCmd, predictCmd, chartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
