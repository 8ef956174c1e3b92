package render

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"medviz/domain/core"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultDPI is the raster resolution used when Options leaves it unset
const DefaultDPI = 96

// Options controls rasterization
type Options struct {
	DPI int
}

func (o Options) dpi() int {
	if o.DPI <= 0 {
		return DefaultDPI
	}
	return o.DPI
}

// Figure is a handle to a rendered figure that has been written to disk
type Figure struct {
	Path        string
	Width       vg.Length
	Height      vg.Length
	DPI         int
	Fingerprint core.Hash

	canvas *vgimg.Canvas
}

// Image returns the rasterized figure
func (f *Figure) Image() image.Image {
	return f.canvas.Image()
}

// newCanvas creates a fresh drawing surface; surfaces are never shared between calls
func newCanvas(width, height vg.Length, opts Options) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(opts.dpi()))
}

// save encodes the canvas as PNG, overwrites path and returns the handle
func save(c *vgimg.Canvas, path string, width, height vg.Length, opts Options) (*Figure, error) {
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &Figure{
		Path:        path,
		Width:       width,
		Height:      height,
		DPI:         opts.dpi(),
		Fingerprint: core.NewHash(buf.Bytes()),
		canvas:      c,
	}, nil
}
