package metrics

import "sort"

// Frame is what a metric sees each frame.
type Frame struct {
	Time  float64
	Dt    float64
	Angle float64
	Tip   float64
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Set observes a fixed list of metrics together.
type Set []Metric

func (s Set) Observe(f Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, m := range s {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

// Default is the readout set shown by the front-ends.
func Default() Set {
	return Set{NewAngularSpeed(), NewExcursion()}
}
