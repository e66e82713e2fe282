// waveform_plot.go - Rasterise a rendered buffer into a PNG preview

package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	PLOT_WIDTH_DEFAULT  = 1024
	PLOT_HEIGHT_DEFAULT = 256
	PLOT_MARGIN         = 16
	PLOT_STROKE         = 1.5
)

var (
	plotBackground = color.RGBA{0x10, 0x10, 0x18, 0xff}
	plotAxis       = color.RGBA{0x50, 0x50, 0x60, 0xff}
	plotTrace      = color.RGBA{0xff, 0x14, 0x93, 0xff}
	plotLabel      = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
)

// PlotWaveform draws the first window seconds of pcm as a polyline.
func PlotWaveform(pcm []byte, window float64, width, height int) (*image.RGBA, error) {
	if width < 2*PLOT_MARGIN+2 || height < 2*PLOT_MARGIN+2 {
		return nil, fmt.Errorf("plot: %dx%d image too small", width, height)
	}
	total := len(pcm) / BYTES_PER_SAMPLE
	n := min(total, int(math.Ceil(window*SAMPLE_RATE)))
	if n < 2 {
		return nil, fmt.Errorf("plot: need at least 2 samples, have %d", n)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(plotBackground), image.Point{}, draw.Src)

	left, right := float32(PLOT_MARGIN), float32(width-PLOT_MARGIN)
	top, bottom := float32(PLOT_MARGIN), float32(height-PLOT_MARGIN)
	mid := (top + bottom) / 2
	half := (bottom - top) / 2

	axis := vector.NewRasterizer(width, height)
	strokeSegment(axis, left, mid, right, mid, 1)
	axis.Draw(img, img.Bounds(), image.NewUniform(plotAxis), image.Point{})

	trace := vector.NewRasterizer(width, height)
	px := func(i int) float32 { return left + (right-left)*float32(i)/float32(n-1) }
	py := func(i int) float32 {
		v := int16(binary.LittleEndian.Uint16(pcm[i*BYTES_PER_SAMPLE:]))
		return mid - half*float32(v)/PCM_FULL_SCALE
	}

	// Decimate to about one point per pixel column.
	step := max(1, n/int(right-left))
	x0, y0 := px(0), py(0)
	for i := step; i < n; i += step {
		x1, y1 := px(i), py(i)
		strokeSegment(trace, x0, y0, x1, y1, PLOT_STROKE)
		x0, y0 = x1, y1
	}
	trace.Draw(img, img.Bounds(), image.NewUniform(plotTrace), image.Point{})

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(plotLabel),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(PLOT_MARGIN, PLOT_MARGIN-3),
	}
	d.DrawString(fmt.Sprintf("0 .. %gs  (%d samples)", float64(n)/SAMPLE_RATE, n))
	return img, nil
}

// strokeSegment adds a w-wide quad around the segment to z.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, w float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func SavePlotPNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
