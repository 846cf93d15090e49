// Package chart draws a recorded signal as a line chart onto a
// render.Surface. Drawing is a pure function of the samples, the progress
// fraction and the live flag.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/san-kum/shakerlab/internal/render"
)

const (
	DefaultPadding = 18

	// Gridlines counts the horizontal lines; the middle one is the zero
	// baseline.
	Gridlines = 5

	// Headroom is the fraction of the half height the largest sample uses.
	Headroom = 0.85

	// FloorScale replaces the scale denominator of an all-zero signal.
	FloorScale = 0.1

	zeroEpsilon = 1e-12
)

var YLabels = [Gridlines]string{"1", "0.5", "0", "-0.5", "-1"}

type Palette struct {
	Grid     color.RGBA
	Baseline color.RGBA
	Live     color.RGBA
	Final    color.RGBA
	Cursor   color.RGBA
	Label    color.RGBA
}

var DefaultPalette = Palette{
	Grid:     color.RGBA{27, 28, 31, 31},
	Baseline: color.RGBA{27, 28, 31, 89},
	Live:     color.RGBA{0x2b, 0x6f, 0x77, 0xff},
	Final:    color.RGBA{0x1d, 0x4e, 0x54, 0xff},
	Cursor:   color.RGBA{0xe8, 0x9c, 0x5b, 0xff},
	Label:    color.RGBA{27, 28, 31, 160},
}

// Options tune the chart for a surface. Zero values take the defaults.
type Options struct {
	Padding float64
	// Duration labels the time axis in seconds; zero omits the labels.
	Duration float64
	// Dash is the baseline pattern in surface units.
	Dash    []float64
	Palette *Palette
	// LineWidth of the signal; the cursor uses a slightly thinner stroke.
	LineWidth float64
}

func (o Options) withDefaults() Options {
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.Dash == nil {
		o.Dash = []float64{5, 5}
	}
	if o.Palette == nil {
		o.Palette = &DefaultPalette
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 2.4
	}
	return o
}

// Layout is the plot rectangle inside the padding.
type Layout struct {
	Padding       float64
	Width, Height float64
	GraphW        float64
	GraphH        float64
}

func NewLayout(w, h, padding float64) Layout {
	return Layout{
		Padding: padding,
		Width:   w,
		Height:  h,
		GraphW:  w - 2*padding,
		GraphH:  h - 2*padding,
	}
}

// Mid is the y coordinate of the zero baseline.
func (l Layout) Mid() float64 { return l.Padding + l.GraphH/2 }

// Gridline returns the y coordinate of gridline i, top to bottom.
func (l Layout) Gridline(i int) float64 {
	return l.Padding + l.GraphH/float64(Gridlines-1)*float64(i)
}

// Point places sample i of n with value v, given the scale denominator.
func (l Layout) Point(i, n int, v, denom float64) (x, y float64) {
	x = l.Padding
	if n > 1 {
		x += l.GraphW * float64(i) / float64(n-1)
	}
	y = l.Mid() - v/denom*(l.GraphH/2)*Headroom
	return x, y
}

// CursorX is the x coordinate of the progress cursor.
func (l Layout) CursorX(progress float64) float64 {
	return l.Padding + l.GraphW*math.Max(0, math.Min(progress, 1))
}

// Scale returns the largest absolute sample, or FloorScale when the signal
// is flat at zero.
func Scale(samples []float64) float64 {
	m := 0.0
	for _, v := range samples {
		m = math.Max(m, math.Abs(v))
	}
	if m < zeroEpsilon || math.IsNaN(m) {
		return FloorScale
	}
	return m
}

// Draw renders the chart. A nil or empty surface is skipped; fewer than two
// samples draws the frame without a signal line.
func Draw(s render.Surface, samples []float64, progress float64, live bool, opts Options) {
	if s == nil {
		return
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	opts = opts.withDefaults()
	pal := opts.Palette
	l := NewLayout(w, h, opts.Padding)

	render.Clear(s)

	grid := render.Stroke{Color: pal.Grid, Width: 1}
	for i := 0; i < Gridlines; i++ {
		y := l.Gridline(i)
		s.StrokeLine(l.Padding, y, w-l.Padding, y, grid)
	}
	s.StrokeLine(l.Padding, l.Mid(), w-l.Padding, l.Mid(),
		render.Stroke{Color: pal.Baseline, Width: 1, Dash: opts.Dash})

	drawLabels(s, l, opts)

	if len(samples) > 1 {
		denom := Scale(samples)
		line := render.Stroke{Color: pal.Final, Width: opts.LineWidth}
		if live {
			line.Color = pal.Live
		}
		px, py := l.Point(0, len(samples), samples[0], denom)
		for i := 1; i < len(samples); i++ {
			x, y := l.Point(i, len(samples), samples[i], denom)
			s.StrokeLine(px, py, x, y, line)
			px, py = x, y
		}
	}

	if live {
		x := l.CursorX(progress)
		s.StrokeLine(x, l.Padding, x, l.Padding+l.GraphH,
			render.Stroke{Color: pal.Cursor, Width: opts.LineWidth * 5 / 6})
	}
}

func drawLabels(s render.Surface, l Layout, opts Options) {
	c := opts.Palette.Label
	for i, label := range YLabels {
		s.FillText(0, l.Gridline(i), label, c)
	}
	if opts.Duration <= 0 {
		return
	}
	y := math.Min(l.Height-1, l.Padding+l.GraphH+l.Padding/2)
	for i := 0; i < Gridlines; i++ {
		frac := float64(i) / float64(Gridlines-1)
		s.FillText(l.Padding+l.GraphW*frac, y, TimeLabel(opts.Duration*frac), c)
	}
}

// TimeLabel formats seconds for the time axis.
func TimeLabel(sec float64) string {
	return fmt.Sprintf("%ss", strconv.FormatFloat(math.Round(sec*10)/10, 'f', -1, 64))
}
