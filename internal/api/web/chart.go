package web

import (
	"fmt"
	"math"

	"github.com/abelzeko/water-quality/internal/entities"
)

const (
	chartSize   = 360.0
	chartRadius = 130.0
)

// chartSlice is one wedge of the reference pie chart, ready for the SVG template
type chartSlice struct {
	Label   string
	Color   string
	Path    string
	Percent string
	LabelX  string
	LabelY  string
	PctX    string
	PctY    string
}

// pieSlices lays the proportions out counter-clockwise starting at twelve o'clock
func pieSlices(proportions []entities.Proportion) []chartSlice {
	var total float64
	for _, p := range proportions {
		total += p.Share
	}
	if total <= 0 {
		return nil
	}

	c := chartSize / 2
	point := func(angle, r float64) (float64, float64) {
		return c + r*math.Cos(angle), c - r*math.Sin(angle)
	}

	slices := make([]chartSlice, 0, len(proportions))
	start := math.Pi / 2
	for _, p := range proportions {
		frac := p.Share / total
		end := start + frac*2*math.Pi
		mid := (start + end) / 2

		x1, y1 := point(start, chartRadius)
		x2, y2 := point(end, chartRadius)
		large := 0
		if frac > 0.5 {
			large = 1
		}
		lx, ly := point(mid, chartRadius*1.15)
		px, py := point(mid, chartRadius*0.6)

		slices = append(slices, chartSlice{
			Label:   string(p.Pollutant),
			Color:   p.Color,
			Path:    fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z", c, c, x1, y1, chartRadius, chartRadius, large, x2, y2),
			Percent: fmt.Sprintf("%1.1f%%", frac*100),
			LabelX:  fmt.Sprintf("%.2f", lx),
			LabelY:  fmt.Sprintf("%.2f", ly),
			PctX:    fmt.Sprintf("%.2f", px),
			PctY:    fmt.Sprintf("%.2f", py),
		})
		start = end
	}
	return slices
}
