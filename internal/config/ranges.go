package config

import "math"

// Range bounds a control-deck value.
type Range struct {
	Name           string
	Min, Max, Step float64
	Unit           string
}

var (
	ShakeFrequencyRange = Range{Name: "shake frequency", Min: 0, Max: 12, Step: 0.1, Unit: "Hz"}
	ShakeAmplitudeRange = Range{Name: "shake amplitude", Min: 0.02, Max: 0.5, Step: 0.01}
	NoiseFrequencyRange = Range{Name: "noise frequency", Min: 0, Max: 8, Step: 0.1, Unit: "Hz"}
	NoiseAmplitudeRange = Range{Name: "noise amplitude", Min: 0, Max: 0.2, Step: 0.01}
	DurationRange       = Range{Name: "recording duration", Min: 3, Max: 12, Step: 1, Unit: "s"}
)

func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Snap rounds v to the nearest step above Min and clamps it.
func (r Range) Snap(v float64) float64 {
	if r.Step <= 0 {
		return r.Clamp(v)
	}
	steps := math.Round((v - r.Min) / r.Step)
	// drop float noise left by the step arithmetic
	return r.Clamp(math.Round((r.Min+steps*r.Step)*1e6) / 1e6)
}

// Nudge moves v by dir steps.
func (r Range) Nudge(v float64, dir int) float64 {
	return r.Snap(v + float64(dir)*r.Step)
}
