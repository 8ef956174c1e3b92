package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	heatSize      = 10 * vg.Inch
	heatBarSpace  = 1.2 * vg.Inch
	heatCellLine  = 0.5 // points
	heatBarShrink = 0.5
)

// Grid is a square matrix of values
type Grid interface {
	Size() int
	At(i, j int) float64
}

// Masker hides grid cells from rendering
type Masker interface {
	Hidden(i, j int) bool
}

// HeatMap draws grid as annotated square cells, row 0 at the top, with masked
// and non-finite cells left blank. Colours come from a blue-red diverging map
// centred on zero; the colour bar is half the height of the figure.
func HeatMap(names []string, grid Grid, mask Masker, path string, opts Options) (*Figure, error) {
	n := grid.Size()
	if n == 0 || len(names) != n {
		return nil, fmt.Errorf("heatmap needs one name per row: %d names for %d rows", len(names), n)
	}

	cells := &cellGrid{
		grid: grid,
		mask: mask,
		cmap: divergingMap(grid, mask),
		line: draw.LineStyle{Color: color.White, Width: vg.Points(heatCellLine)},
	}

	p := plot.New()
	p.Add(cells)
	labels, err := cells.labels()
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	if labels != nil {
		p.Add(labels)
	}

	reversed := make([]string, n)
	for i, name := range names {
		reversed[n-1-i] = name
	}
	p.NominalX(names...)
	p.NominalY(reversed...)
	p.X.Padding = 0
	p.Y.Padding = 0
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	bar := plot.New()
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: cells.cmap, Vertical: true, Colors: 256})
	bar.Y.Padding = 0

	c := newCanvas(heatSize, heatSize, opts)
	dc := draw.New(c)

	// square area for the cells, colour bar to the right
	main := draw.Crop(dc, 0, -heatBarSpace, heatBarSpace/2, -heatBarSpace/2)
	inset := heatSize * (1 - heatBarShrink) / 2
	side := draw.Crop(dc, heatSize-heatBarSpace+vg.Millimeter*4, 0, inset, -inset)

	p.Draw(main)
	bar.Draw(side)

	return save(c, path, heatSize, heatSize, opts)
}

// divergingMap spans [-r, r] where r is the largest visible |value|
func divergingMap(grid Grid, mask Masker) palette.ColorMap {
	r := 0.0
	n := grid.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v, ok := visible(grid, mask, i, j); ok && math.Abs(v) > r {
				r = math.Abs(v)
			}
		}
	}
	if r == 0 {
		r = 1
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMax(r)
	cmap.SetMin(-r)
	return cmap
}

func visible(grid Grid, mask Masker, i, j int) (float64, bool) {
	if mask != nil && mask.Hidden(i, j) {
		return 0, false
	}
	v := grid.At(i, j)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
