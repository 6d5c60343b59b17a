// Package terminal renders predictions for the command line
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/usecases"
	"github.com/abelzeko/water-quality/internal/verdict"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#009999"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	healthyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32"))
	unhealthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c62828"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#b26a00"))
)

const barWidth = 40

// Renderer writes styled text. Styles are dropped when the output is not a terminal.
type Renderer struct {
	width int
}

// NewRenderer wraps messages at width columns; zero disables wrapping
func NewRenderer(width int) *Renderer {
	return &Renderer{width: width}
}

// Prediction renders the subheader and one block per pollutant
func (r *Renderer) Prediction(p *entities.Prediction) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(usecases.Subheader(p.Query)))
	b.WriteString("\n\n")

	for _, v := range p.Verdicts {
		msgStyle := healthyStyle
		if !v.Healthy {
			msgStyle = unhealthyStyle
		}
		if r.width > 0 {
			msgStyle = msgStyle.Width(r.width)
		}
		b.WriteString(headerStyle.Render(verdict.Header(v)))
		b.WriteString("\n")
		b.WriteString(msgStyle.Render(v.Message))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Warning renders a user-facing warning line
func (r *Renderer) Warning(msg string) string {
	return warningStyle.Render(msg)
}

// Proportions renders the reference chart as colored horizontal bars
func (r *Renderer) Proportions(proportions []entities.Proportion) string {
	var total float64
	for _, p := range proportions {
		total += p.Share
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ideal Pollutant Proportions for Healthy Water"))
	b.WriteString("\n\n")
	if total <= 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	for _, p := range proportions {
		frac := p.Share / total
		n := int(frac*barWidth + 0.5)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(strings.Repeat("█", n))
		b.WriteString(fmt.Sprintf("%-4s %s %1.1f%%\n", p.Pollutant, bar, frac*100))
	}
	return strings.TrimRight(b.String(), "\n")
}
