package metrics

import "github.com/san-kum/shakerlab/internal/oscillator"

// AngularSpeed is the SOPAS proxy: how fast the arm angle is changing,
// recomputed every frame.
type AngularSpeed struct {
	name    string
	tracker oscillator.SpeedTracker
}

func NewAngularSpeed() *AngularSpeed {
	return &AngularSpeed{name: "angular_speed"}
}

func (a *AngularSpeed) Name() string { return a.name }

func (a *AngularSpeed) Observe(f Frame) {
	a.tracker.Update(f.Angle, f.Dt)
}

func (a *AngularSpeed) Value() float64 { return a.tracker.Value() }
func (a *AngularSpeed) Reset()         { a.tracker.Reset() }
