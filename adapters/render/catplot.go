package render

import (
	"fmt"
	"image/color"

	"medviz/domain/exam"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Each facet is a 5in square
const (
	catPanelSize  = 5 * vg.Inch
	catGroupWidth = 14 * vg.Millimeter
)

// hueColors are muted blue, orange, green and red
var hueColors = []color.Color{
	color.RGBA{R: 76, G: 114, B: 176, A: 255},
	color.RGBA{R: 221, G: 132, B: 82, A: 255},
	color.RGBA{R: 85, G: 168, B: 104, A: 255},
	color.RGBA{R: 196, G: 78, B: 82, A: 255},
}

// CatPlot draws one bar panel per cardio outcome. Variables run along the x
// axis in name order, each with one bar per indicator value. All panels share
// the y scale. The PNG is written to path.
func CatPlot(counts []exam.CategoryCount, path string, opts Options) (*Figure, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no category counts to plot", exam.ErrInsufficientData)
	}

	outcomes := exam.Outcomes(counts)
	variables := exam.Variables(counts)
	values := exam.Values(counts)

	totals := make(map[int]map[string]map[int]float64, len(outcomes))
	maxTotal := 0.0
	for _, c := range counts {
		if totals[c.Cardio] == nil {
			totals[c.Cardio] = make(map[string]map[int]float64)
		}
		if totals[c.Cardio][c.Variable] == nil {
			totals[c.Cardio][c.Variable] = make(map[int]float64)
		}
		totals[c.Cardio][c.Variable][c.Value] = float64(c.Total)
		if float64(c.Total) > maxTotal {
			maxTotal = float64(c.Total)
		}
	}

	barWidth := catGroupWidth / vg.Length(len(values))
	plots := make([]*plot.Plot, len(outcomes))
	for k, outcome := range outcomes {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s = %d", exam.ColCardio, outcome)
		p.X.Label.Text = exam.ColVariable
		if k == 0 {
			p.Y.Label.Text = "total"
		}

		for vi, value := range values {
			heights := make(plotter.Values, len(variables))
			for xi, variable := range variables {
				heights[xi] = totals[outcome][variable][value]
			}
			bars, err := plotter.NewBarChart(heights, barWidth)
			if err != nil {
				return nil, fmt.Errorf("bars for %s=%d: %w", exam.ColCardio, outcome, err)
			}
			bars.Color = hueColors[vi%len(hueColors)]
			bars.LineStyle.Width = 0
			bars.Offset = barWidth * vg.Length(float64(vi)-float64(len(values)-1)/2)
			p.Add(bars)

			if k == len(outcomes)-1 {
				p.Legend.Add(fmt.Sprintf("%s = %d", exam.ColValue, value), bars)
			}
		}
		p.Legend.Top = true
		p.NominalX(variables...)
		p.Y.Min = 0
		p.Y.Max = maxTotal * 1.05
		plots[k] = p
	}

	width := catPanelSize * vg.Length(len(plots))
	height := catPanelSize
	c := newCanvas(width, height, opts)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, draw.New(c))
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	return save(c, path, width, height, opts)
}
