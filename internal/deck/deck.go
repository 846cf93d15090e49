// Package deck holds the control-deck state shared by the terminal and
// window front-ends: the selected control, the active preset and the
// recording commands. Both front-ends translate their input events into
// calls on a Deck between frames.
package deck

import (
	"fmt"

	"github.com/san-kum/shakerlab/internal/config"
	"github.com/san-kum/shakerlab/internal/lab"
	"github.com/san-kum/shakerlab/internal/oscillator"
	"github.com/san-kum/shakerlab/internal/recorder"
)

type Control int

const (
	PresetControl Control = iota
	ShakeFrequency
	ShakeAmplitude
	NoiseFrequency
	NoiseAmplitude
	RecordDuration

	numControls
)

// Controls lists every selectable control in tab order.
var Controls = []Control{
	PresetControl,
	ShakeFrequency,
	ShakeAmplitude,
	NoiseFrequency,
	NoiseAmplitude,
	RecordDuration,
}

func (c Control) String() string {
	switch c {
	case PresetControl:
		return "Preset"
	case ShakeFrequency:
		return "Shake frequency"
	case ShakeAmplitude:
		return "Shake amplitude"
	case NoiseFrequency:
		return "Noise frequency"
	case NoiseAmplitude:
		return "Noise amplitude"
	case RecordDuration:
		return "Recording length"
	}
	return "unknown"
}

// Range returns the slider range behind c. The preset selector has none.
func (c Control) Range() (config.Range, bool) {
	switch c {
	case ShakeFrequency:
		return config.ShakeFrequencyRange, true
	case ShakeAmplitude:
		return config.ShakeAmplitudeRange, true
	case NoiseFrequency:
		return config.NoiseFrequencyRange, true
	case NoiseAmplitude:
		return config.NoiseAmplitudeRange, true
	case RecordDuration:
		return config.DurationRange, true
	}
	return config.Range{}, false
}

type Deck struct {
	Lab      *lab.Lab
	Preset   string
	Selected Control
}

func New(l *lab.Lab, preset string) *Deck {
	if preset == "" {
		preset = config.DefaultPreset
	}
	return &Deck{Lab: l, Preset: preset}
}

func (d *Deck) Params() *oscillator.Params { return d.Lab.Params }

// Select moves the selection by dir, wrapping around.
func (d *Deck) Select(dir int) {
	n := int(numControls)
	d.Selected = Control(((int(d.Selected)+dir)%n + n) % n)
}

// Enabled reports whether c currently accepts input.
func (d *Deck) Enabled(c Control) bool {
	switch c {
	case NoiseFrequency, NoiseAmplitude:
		return d.Params().NoiseEnabled
	case RecordDuration:
		return !d.Lab.Recorder.IsRecording()
	}
	return true
}

// Value reads the current value of a slider control.
func (d *Deck) Value(c Control) float64 {
	p := d.Params()
	switch c {
	case ShakeFrequency:
		return p.ShakeFrequency
	case ShakeAmplitude:
		return p.ShakeAmplitude
	case NoiseFrequency:
		return p.NoiseFrequency
	case NoiseAmplitude:
		return p.NoiseAmplitude
	case RecordDuration:
		return d.Lab.Duration
	}
	return 0
}

// Adjust steps the selected control by dir and reports whether anything
// changed. Touching the shake sliders switches the preset to custom.
func (d *Deck) Adjust(dir int) bool {
	c := d.Selected
	if !d.Enabled(c) || dir == 0 {
		return false
	}
	if c == PresetControl {
		d.CyclePreset(dir)
		return true
	}

	r, _ := c.Range()
	old := d.Value(c)
	v := r.Nudge(old, dir)
	if v == old {
		return false
	}

	p := d.Params()
	switch c {
	case ShakeFrequency:
		p.ShakeFrequency = v
		d.Preset = config.Custom
	case ShakeAmplitude:
		p.ShakeAmplitude = v
		d.Preset = config.Custom
	case NoiseFrequency:
		p.NoiseFrequency = v
	case NoiseAmplitude:
		p.NoiseAmplitude = v
	case RecordDuration:
		d.Lab.Duration = v
	}
	return true
}

// CyclePreset steps through the preset table and applies the result.
func (d *Deck) CyclePreset(dir int) {
	pr := config.CyclePreset(d.Preset, dir)
	d.apply(pr)
}

// ApplyPreset selects a preset by name.
func (d *Deck) ApplyPreset(name string) error {
	if name == config.Custom {
		d.Preset = config.Custom
		return nil
	}
	pr := config.GetPreset(name)
	if pr == nil {
		return fmt.Errorf("%w: %s", config.ErrUnknownPreset, name)
	}
	d.apply(*pr)
	return nil
}

func (d *Deck) apply(pr config.Preset) {
	p := d.Params()
	p.ShakeFrequency = pr.Frequency
	p.ShakeAmplitude = pr.Amplitude
	d.Preset = pr.Name
}

// PresetLabel is the selector text for the active preset.
func (d *Deck) PresetLabel() string {
	if pr := config.GetPreset(d.Preset); pr != nil {
		return pr.String()
	}
	return "Custom"
}

func (d *Deck) PresetDetail() string { return config.Detail(d.Preset) }

func (d *Deck) ToggleRunning() { p := d.Params(); p.Running = !p.Running }
func (d *Deck) ToggleNoise()   { p := d.Params(); p.NoiseEnabled = !p.NoiseEnabled }

// ToggleIndefinite flips the indefinite flag used by the next recording.
func (d *Deck) ToggleIndefinite() { d.Lab.Indefinite = !d.Lab.Indefinite }

// Record starts a recording unless one is already running.
func (d *Deck) Record() bool {
	if d.Lab.Recorder.IsRecording() {
		return false
	}
	d.Lab.StartRecording()
	return true
}

func (d *Deck) Stop()  { d.Lab.StopRecording() }
func (d *Deck) Clear() { d.Lab.ClearRecording() }

// Status is the recording panel's state label.
func (d *Deck) Status() string {
	switch d.Lab.Recorder.State() {
	case recorder.Recording:
		return "Recording"
	case recorder.Ready:
		return "Ready"
	}
	return "Idle"
}

// DurationText shows elapsed against target while recording and the
// captured length otherwise.
func (d *Deck) DurationText() string {
	rec := d.Lab.Recorder
	if rec.IsRecording() {
		if rec.Indefinite() {
			return fmt.Sprintf("%.1fs / ∞", rec.Elapsed())
		}
		return fmt.Sprintf("%.1fs / %.0fs", rec.Elapsed(), rec.Duration())
	}
	return fmt.Sprintf("%.1fs", rec.Elapsed())
}

// SampleRateText labels the fixed sampling rate.
func SampleRateText() string { return fmt.Sprintf("%d Hz", recorder.SampleRate) }

// FormatReadout renders the readout card values.
func FormatReadout(r lab.Readout) (angle, tip, speed string) {
	return fmt.Sprintf("%.2f rad", r.Angle),
		fmt.Sprintf("%.1f mm", r.Tip*1000),
		fmt.Sprintf("%.2f rad/s", r.Speed)
}
