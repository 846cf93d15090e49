package oscillator

import "time"

// MaxStep caps a single clock advance so a long stall (suspended terminal,
// hidden window) does not jump the simulation.
const MaxStep = 50 * time.Millisecond

// Params is the shared control-deck state. Front-ends mutate it between
// frames; the frame pipeline only reads it.
type Params struct {
	ShakeFrequency float64 // Hz
	ShakeAmplitude float64
	NoiseEnabled   bool
	NoiseFrequency float64 // Hz
	NoiseAmplitude float64
	Running        bool
}

func DefaultParams() *Params {
	return &Params{
		ShakeFrequency: 3,
		ShakeAmplitude: 0.22,
		NoiseEnabled:   true,
		NoiseFrequency: 3,
		NoiseAmplitude: 0.08,
		Running:        true,
	}
}

func (p *Params) Clone() *Params {
	c := *p
	return &c
}

// Clock accumulates simulation time.
type Clock struct {
	t float64
}

// Advance moves the clock forward by delta, capped at MaxStep, and returns
// the step actually applied in seconds. A paused clock does not move and
// the returned step is still the capped delta, which the speed proxy uses.
func (c *Clock) Advance(delta time.Duration, running bool) float64 {
	if delta < 0 {
		delta = 0
	}
	if delta > MaxStep {
		delta = MaxStep
	}
	dt := delta.Seconds()
	if running {
		c.t += dt
	}
	return dt
}

func (c *Clock) Now() float64 { return c.t }
func (c *Clock) Reset()       { c.t = 0 }
