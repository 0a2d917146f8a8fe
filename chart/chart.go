// Package chart renders simple line charts of table columns into raster
// images which can then be placed into document like any other picture.
package chart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Series is a named sequence of values, one per label. NaN values leave a
// gap in the line.
type Series struct {
	Name   string
	Values []float64
}

type Options struct {
	Width, Height int
	YLabel        string
}

const minSide = 120

// Palette is used for series in order.
var Palette = []color.RGBA{
	{31, 119, 180, 255},
	{255, 127, 14, 255},
	{44, 160, 44, 255},
	{214, 39, 40, 255},
	{148, 103, 189, 255},
	{140, 86, 75, 255},
}

var (
	gridColor = color.RGBA{220, 220, 220, 255}
	axisColor = color.RGBA{0, 0, 0, 255}
	face      = basicfont.Face7x13
)

// plot is the drawing area in pixels.
type plot struct {
	left, top, right, bottom float64
	ymin, ymax               float64
	n                        int
}

func (p *plot) x(i int) float64 {
	if p.n == 1 {
		return (p.left + p.right) / 2
	}
	return p.left + float64(i)*(p.right-p.left)/float64(p.n-1)
}

func (p *plot) y(v float64) float64 {
	return p.bottom - (v-p.ymin)*(p.bottom-p.top)/(p.ymax-p.ymin)
}

// Line draws one polyline per series over labels spread evenly along x axis.
func Line(labels []string, series []Series, opts Options) (*image.RGBA, error) {
	if opts.Width < minSide || opts.Height < minSide {
		return nil, fmt.Errorf("chart size %dx%d is too small, minimum is %d", opts.Width, opts.Height, minSide)
	}
	if len(labels) == 0 {
		return nil, errors.New("chart has no points")
	}
	if len(series) == 0 {
		return nil, errors.New("chart has no series")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return nil, fmt.Errorf("series %q has %d values for %d labels", s.Name, len(s.Values), len(labels))
		}
	}

	ymin, ymax := valueRange(series)
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	lh := float64(face.Metrics().Height.Ceil())
	p := &plot{
		left:   float64(labelWidth(ymin, ymax) + 14),
		top:    2*lh + 12,
		right:  float64(opts.Width) - 16,
		bottom: float64(opts.Height) - lh - 12,
		ymin:   ymin,
		ymax:   ymax,
		n:      len(labels),
	}

	scanner := rasterx.NewScannerGV(opts.Width, opts.Height, img, img.Bounds())
	dasher := rasterx.NewDasher(opts.Width, opts.Height, scanner)

	drawGrid(img, dasher, p)
	drawXLabels(img, p, labels)
	for i, s := range series {
		drawSeries(dasher, p, s, Palette[i%len(Palette)])
	}
	drawLegend(img, p, series, opts.YLabel)
	return img, nil
}

// Save encodes image choosing format from file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("unable to save chart: %w", err)
	}
	return nil
}

func valueRange(series []Series) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	switch {
	case math.IsInf(lo, 1):
		return 0, 1
	case lo == hi:
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

const yTicks = 5

func tick(ymin, ymax float64, i int) float64 {
	return ymin + float64(i)*(ymax-ymin)/yTicks
}

func tickText(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func labelWidth(ymin, ymax float64) int {
	w := 0
	for i := range yTicks + 1 {
		w = max(w, font.MeasureString(face, tickText(tick(ymin, ymax, i))).Ceil())
	}
	return w
}

func stroke(d *rasterx.Dasher, width float64, c color.Color, dash []float64) {
	d.Clear()
	d.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64), rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Round, dash, 0)
	d.SetColor(c)
}

func segment(d *rasterx.Dasher, x1, y1, x2, y2 float64) {
	d.Start(rasterx.ToFixedP(x1, y1))
	d.Line(rasterx.ToFixedP(x2, y2))
	d.Stop(false)
}

func drawGrid(img *image.RGBA, d *rasterx.Dasher, p *plot) {
	stroke(d, 1, gridColor, []float64{4, 4})
	for i := range yTicks + 1 {
		y := p.y(tick(p.ymin, p.ymax, i))
		segment(d, p.left, y, p.right, y)
	}
	d.Draw()

	stroke(d, 1.5, axisColor, nil)
	segment(d, p.left, p.top, p.left, p.bottom)
	segment(d, p.left, p.bottom, p.right, p.bottom)
	d.Draw()

	ascent := face.Metrics().Ascent.Ceil()
	for i := range yTicks + 1 {
		v := tick(p.ymin, p.ymax, i)
		s := tickText(v)
		x := int(p.left) - 6 - font.MeasureString(face, s).Ceil()
		text(img, x, int(p.y(v))+ascent/2, s, axisColor)
	}
}

func drawXLabels(img *image.RGBA, p *plot, labels []string) {
	widest := 0
	for _, l := range labels {
		widest = max(widest, font.MeasureString(face, l).Ceil())
	}
	slot := (p.right - p.left) / float64(max(len(labels), 1))
	step := max(int(math.Ceil(float64(widest+8)/slot)), 1)

	y := int(p.bottom) + face.Metrics().Height.Ceil() + 4
	for i := 0; i < len(labels); i += step {
		w := font.MeasureString(face, labels[i]).Ceil()
		text(img, int(p.x(i))-w/2, y, labels[i], axisColor)
	}
}

func drawSeries(d *rasterx.Dasher, p *plot, s Series, c color.RGBA) {
	stroke(d, 2, c, nil)
	open := false
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if open {
				d.Stop(false)
				open = false
			}
			continue
		}
		pt := rasterx.ToFixedP(p.x(i), p.y(v))
		if open {
			d.Line(pt)
		} else {
			d.Start(pt)
			open = true
		}
	}
	if open {
		d.Stop(false)
	}
	d.Draw()
}

func drawLegend(img *image.RGBA, p *plot, series []Series, ylabel string) {
	lh := face.Metrics().Height.Ceil()
	if len(ylabel) > 0 {
		text(img, 4, lh, ylabel, axisColor)
	}

	// legend goes on the second line
	baseline := 2*lh + 2
	x := int(p.left) + 8
	for i, s := range series {
		swatch := image.Rect(x, baseline-lh/2-3, x+12, baseline-lh/2+3)
		draw.Draw(img, swatch, image.NewUniform(Palette[i%len(Palette)]), image.Point{}, draw.Src)
		x += 16
		text(img, x, baseline, s.Name, axisColor)
		x += font.MeasureString(face, s.Name).Ceil() + 12
	}
}

func text(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
