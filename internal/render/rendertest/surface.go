// Package rendertest provides an in-memory render.Surface that records every
// call, for tests that need to inspect what was drawn.
package rendertest

import (
	"image/color"

	"github.com/san-kum/shakerlab/internal/render"
)

type Line struct {
	X0, Y0, X1, Y1 float64
	Stroke         render.Stroke
}

type Text struct {
	X, Y  float64
	Value string
}

type Surface struct {
	W, H     float64
	Lines    []Line
	Texts    []Text
	Clears   int
	Released int
	Resizes  int

	// ReleaseErr is returned from Release when set.
	ReleaseErr error
}

func New(w, h float64) *Surface {
	return &Surface{W: w, H: h}
}

func (s *Surface) Size() (float64, float64) { return s.W, s.H }

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st render.Stroke) {
	s.Lines = append(s.Lines, Line{x0, y0, x1, y1, st})
}

func (s *Surface) FillText(x, y float64, text string, _ color.RGBA) {
	s.Texts = append(s.Texts, Text{x, y, text})
}

func (s *Surface) Clear() {
	s.Clears++
	s.Lines = s.Lines[:0]
	s.Texts = s.Texts[:0]
}

func (s *Surface) Resize(w, h int) {
	s.Resizes++
	s.W, s.H = float64(w), float64(h)
}

func (s *Surface) Release() error {
	s.Released++
	return s.ReleaseErr
}

// LinesWith returns the recorded lines drawn with the given colour.
func (s *Surface) LinesWith(c color.RGBA) []Line {
	var out []Line
	for _, l := range s.Lines {
		if l.Stroke.Color == c {
			out = append(out, l)
		}
	}
	return out
}

// HasText reports whether text was written anywhere.
func (s *Surface) HasText(text string) bool {
	for _, t := range s.Texts {
		if t.Value == text {
			return true
		}
	}
	return false
}
