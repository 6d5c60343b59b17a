package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abelzeko/water-quality/internal/api/terminal"
	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/usecases"
)

var (
	year    int
	station string
	width   int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict pollutant levels for one station and year",
	Example: `  predictor predict --year 2022 --station 1
  predictor predict -y 2030 -s 14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("year") {
			year = cfg.Input.DefaultYear
		}
		if !cmd.Flags().Changed("station") {
			station = cfg.Input.DefaultStation
		}
		if year < cfg.Input.YearMin || year > cfg.Input.YearMax {
			return fmt.Errorf("%w: %d is outside %d-%d", entities.ErrInvalidYear, year, cfg.Input.YearMin, cfg.Input.YearMax)
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}

		r := terminal.NewRenderer(width)
		prediction, err := a.useCase.Predict(entities.RawQuery{Year: year, StationID: station})
		if errors.Is(err, entities.ErrEmptyStationID) {
			fmt.Fprintln(cmd.OutOrStdout(), r.Warning(usecases.UserMessage(err)))
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), r.Prediction(prediction))
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), r.Proportions(a.useCase.IdealProportions()))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the ideal pollutant proportions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), terminal.NewRenderer(width).Proportions(entities.IdealProportions()))
		return nil
	},
}

func init() {
	predictCmd.Flags().IntVarP(&year, "year", "y", 2022, "year to predict for")
	predictCmd.Flags().StringVarP(&station, "station", "s", "1", "monitoring station id")
	rootCmd.PersistentFlags().IntVar(&width, "width", 100, "wrap messages at this many columns (0 disables wrapping)")
}
