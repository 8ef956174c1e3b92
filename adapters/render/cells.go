package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// cellGrid is a plot.Plotter drawing one filled, outlined square per visible
// grid cell. Cell (i, j) is centred on x=j, y=n-1-i.
type cellGrid struct {
	grid Grid
	mask Masker
	cmap palette.ColorMap
	line draw.LineStyle
}

var _ plot.Plotter = (*cellGrid)(nil)
var _ plot.DataRanger = (*cellGrid)(nil)

// Plot implements plot.Plotter
func (g *cellGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	n := g.grid.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fill, ok := g.color(i, j)
			if !ok {
				continue
			}
			x, y := float64(j), float64(n-1-i)
			pts := []vg.Point{
				{X: trX(x - 0.5), Y: trY(y - 0.5)},
				{X: trX(x + 0.5), Y: trY(y - 0.5)},
				{X: trX(x + 0.5), Y: trY(y + 0.5)},
				{X: trX(x - 0.5), Y: trY(y + 0.5)},
			}
			c.FillPolygon(fill, c.ClipPolygonXY(pts))
			c.StrokeLines(g.line, c.ClipLinesXY(append(pts, pts[0]))...)
		}
	}
}

// DataRange implements plot.DataRanger
func (g *cellGrid) DataRange() (xmin, xmax, ymin, ymax float64) {
	n := float64(g.grid.Size())
	return -0.5, n - 0.5, -0.5, n - 0.5
}

func (g *cellGrid) color(i, j int) (color.Color, bool) {
	v, ok := visible(g.grid, g.mask, i, j)
	if !ok {
		return nil, false
	}
	v = math.Max(g.cmap.Min(), math.Min(g.cmap.Max(), v))
	col, err := g.cmap.At(v)
	if err != nil {
		return nil, false
	}
	return col, true
}

// labels annotates every visible cell with its value to one decimal place,
// dark text on light cells and white text on dark ones. Nil when nothing is visible.
func (g *cellGrid) labels() (*plotter.Labels, error) {
	n := g.grid.Size()
	var (
		xys    plotter.XYs
		texts  []string
		colors []color.Color
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fill, ok := g.color(i, j)
			if !ok {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			texts = append(texts, fmt.Sprintf("%.1f", g.grid.At(i, j)))
			colors = append(colors, textColorOn(fill))
		}
	}
	if len(xys) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for k := range labels.TextStyle {
		labels.TextStyle[k].XAlign = text.XCenter
		labels.TextStyle[k].YAlign = text.YCenter
		labels.TextStyle[k].Color = colors[k]
	}
	return labels, nil
}

// textColorOn picks black or white by the relative luminance of the background
func textColorOn(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	lum := (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
	if lum > 0.408 {
		return color.Black
	}
	return color.White
}
