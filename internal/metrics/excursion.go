package metrics

import "math"

// Excursion tracks the largest absolute arm angle seen since the last reset.
type Excursion struct {
	name string
	peak float64
}

func NewExcursion() *Excursion {
	return &Excursion{name: "excursion"}
}

func (e *Excursion) Name() string { return e.name }

func (e *Excursion) Observe(f Frame) {
	e.peak = math.Max(e.peak, math.Abs(f.Angle))
}

func (e *Excursion) Value() float64 { return e.peak }
func (e *Excursion) Reset()         { e.peak = 0 }
