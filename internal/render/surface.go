package render

import (
	"errors"
	"image/color"
)

// ErrNoSurface is returned by a host that has nothing attached yet.
var ErrNoSurface = errors.New("render: no surface attached")

// Stroke describes how a line is drawn. Backends without colour or width
// support ignore those fields.
type Stroke struct {
	Color color.RGBA
	Width float64
	// Dash alternates on/off lengths in surface units; nil draws solid.
	Dash []float64
}

// Surface is a 2D drawable region in its own unit space, origin top-left.
type Surface interface {
	Size() (w, h float64)
	StrokeLine(x0, y0, x1, y1 float64, s Stroke)
	FillText(x, y float64, text string, c color.RGBA)
}

// Clearer is implemented by surfaces that keep content between frames.
type Clearer interface {
	Clear()
}

// Resizer is implemented by surfaces that can follow their container.
type Resizer interface {
	Resize(w, h int)
}

// Releaser is implemented by surfaces holding resources outside the Go heap.
type Releaser interface {
	Release() error
}

// Host is the container a renderer mounts into.
type Host interface {
	Acquire() (Surface, error)
}

// HostFunc adapts a function to Host.
type HostFunc func() (Surface, error)

func (f HostFunc) Acquire() (Surface, error) { return f() }

// Fixed returns a host that always hands out s.
func Fixed(s Surface) Host {
	return HostFunc(func() (Surface, error) {
		if s == nil {
			return nil, ErrNoSurface
		}
		return s, nil
	})
}

// Clear clears s when it supports it.
func Clear(s Surface) {
	if c, ok := s.(Clearer); ok {
		c.Clear()
	}
}
