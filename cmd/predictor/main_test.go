package main

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/config"
	"github.com/abelzeko/water-quality/internal/entities"
)

const (
	shippedModel   = "../../artifacts/pollution_model.json"
	shippedColumns = "../../artifacts/model_columns.json"
)

func TestBootstrapWithShippedArtifacts(t *testing.T) {
	cfg = &config.Config{Artifacts: config.ArtifactConfig{ModelPath: shippedModel, ColumnsPath: shippedColumns}}
	logger = zap.NewNop().Sugar()

	a, err := bootstrap()
	require.NoError(t, err)
	assert.Equal(t, []string{shippedModel, shippedColumns}, a.sources)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, a.useCase.KnownStations())

	p, err := a.useCase.Predict(entities.RawQuery{Year: 2022, StationID: "4"})
	require.NoError(t, err)

	healthy := map[entities.Pollutant]bool{}
	for _, v := range p.Verdicts {
		healthy[v.Pollutant] = v.Healthy
	}
	assert.Equal(t, map[entities.Pollutant]bool{
		entities.O2:  false,
		entities.NO3: true,
		entities.NO2: true,
		entities.SO4: false,
		entities.PO4: false,
		entities.CL:  false,
	}, healthy)
}

func TestBootstrap_MissingArtifacts(t *testing.T) {
	cfg = &config.Config{Artifacts: config.ArtifactConfig{ModelPath: "missing.json", ColumnsPath: "missing.json"}}
	logger = zap.NewNop().Sugar()

	_, err := bootstrap()
	assert.Error(t, err)
}

func TestPredictCommand(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Setenv("MODEL_PATH", shippedModel)
	t.Setenv("COLUMNS_PATH", shippedColumns)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"predict", "--year", "2022", "--station", "1", "--width", "0"})
	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Predicted pollutant levels for the station '1' in 2022:")
	assert.Contains(t, text, "O2 = 7.91")
	assert.Contains(t, text, "Ideal Pollutant Proportions for Healthy Water")

	out.Reset()
	rootCmd.SetArgs([]string{"predict", "--year", "1990"})
	assert.ErrorIs(t, rootCmd.Execute(), entities.ErrInvalidYear)

	out.Reset()
	rootCmd.SetArgs([]string{"predict", "--year", "2022", "--station", " "})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Please enter the station ID")
}
