package terminal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/verdict"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestPrediction(t *testing.T) {
	p := &entities.Prediction{
		Query:    entities.RawQuery{Year: 2022, StationID: "1"},
		Verdicts: verdict.ClassifyAll(entities.PredictionVector{4.5, 3, 0.2, 120, 0.3, 80}),
	}

	out := NewRenderer(0).Prediction(p)
	assert.True(t, strings.HasPrefix(out, "Predicted pollutant levels for the station '1' in 2022:"))
	assert.Contains(t, out, "O2 = 4.50\nLow levels (<5 mg/L)")
	assert.Contains(t, out, "PO4 = 0.30\nHigher levels lead to eutrophication.")
	assert.Contains(t, out, "CL = 80.00\nIt has proper levels.")
}

func TestProportions(t *testing.T) {
	out := NewRenderer(0).Proportions(entities.IdealProportions())

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Ideal Pollutant Proportions for Healthy Water", lines[0])
	assert.Equal(t, "O2   "+strings.Repeat("█", 16)+" 40.0%", lines[2])
	assert.Equal(t, "NO2  "+strings.Repeat("█", 2)+" 5.0%", lines[4])
	assert.Len(t, lines, 8)
}

func TestWarning(t *testing.T) {
	assert.Equal(t, "Please enter the station ID", NewRenderer(80).Warning("Please enter the station ID"))
}
