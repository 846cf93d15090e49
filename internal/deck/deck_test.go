package deck

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/shakerlab/internal/config"
	"github.com/san-kum/shakerlab/internal/lab"
)

func newDeck() *Deck {
	return New(lab.New(nil, lab.Options{Seed: 1}), "")
}

func TestSelect_Wraps(t *testing.T) {
	d := newDeck()
	d.Select(-1)
	if d.Selected != RecordDuration {
		t.Errorf("Select(-1) from first = %v", d.Selected)
	}
	d.Select(1)
	if d.Selected != PresetControl {
		t.Errorf("Select(1) from last = %v", d.Selected)
	}
	d.Select(len(Controls) + 2)
	if d.Selected != ShakeAmplitude {
		t.Errorf("Select(n+2) = %v", d.Selected)
	}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name       string
		control    Control
		dir        int
		want       float64
		wantPreset string
	}{
		{"shake frequency up", ShakeFrequency, 1, 3.1, config.Custom},
		{"shake amplitude down", ShakeAmplitude, -1, 0.21, config.Custom},
		{"noise frequency", NoiseFrequency, 1, 3.1, config.DefaultPreset},
		{"noise amplitude", NoiseAmplitude, -1, 0.07, config.DefaultPreset},
		{"duration", RecordDuration, 1, 7, config.DefaultPreset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeck()
			d.Selected = tt.control
			if !d.Adjust(tt.dir) {
				t.Fatal("Adjust() reported no change")
			}
			if got := d.Value(tt.control); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if d.Preset != tt.wantPreset {
				t.Errorf("preset = %q, want %q", d.Preset, tt.wantPreset)
			}
		})
	}
}

func TestAdjust_AtLimit(t *testing.T) {
	d := newDeck()
	d.Selected = ShakeFrequency
	d.Params().ShakeFrequency = config.ShakeFrequencyRange.Max
	if d.Adjust(1) {
		t.Error("Adjust past max reported a change")
	}
	if d.Preset != config.DefaultPreset {
		t.Errorf("preset changed to %q without a value change", d.Preset)
	}
}

func TestAdjust_NoiseInertWhenDisabled(t *testing.T) {
	d := newDeck()
	d.Params().NoiseEnabled = false
	d.Selected = NoiseAmplitude
	before := d.Params().NoiseAmplitude
	if d.Adjust(1) || d.Params().NoiseAmplitude != before {
		t.Error("noise slider moved while noise was off")
	}
	d.ToggleNoise()
	if !d.Adjust(1) {
		t.Error("noise slider inert after enabling noise")
	}
}

func TestAdjust_DurationLockedWhileRecording(t *testing.T) {
	d := newDeck()
	d.Selected = RecordDuration
	d.Record()
	if d.Adjust(1) || d.Lab.Duration != 6 {
		t.Errorf("duration changed while recording: %v", d.Lab.Duration)
	}
	d.Stop()
	if !d.Adjust(1) || d.Lab.Duration != 7 {
		t.Errorf("duration after stop = %v, want 7", d.Lab.Duration)
	}
}

func TestPresets(t *testing.T) {
	d := newDeck()
	d.Selected = PresetControl
	d.Adjust(1)
	if d.Preset != "shake-5" || d.Params().ShakeFrequency != 5 || d.Params().ShakeAmplitude != 0.30 {
		t.Errorf("after next preset: %q %+v", d.Preset, d.Params())
	}
	if d.PresetLabel() != "Shaking 5 Hz - High" {
		t.Errorf("PresetLabel() = %q", d.PresetLabel())
	}

	if err := d.ApplyPreset("bogus"); !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("ApplyPreset(bogus) err = %v", err)
	}
	if err := d.ApplyPreset(config.Custom); err != nil || d.PresetLabel() != "Custom" {
		t.Errorf("custom: %v %q", err, d.PresetLabel())
	}
	if d.PresetDetail() != config.CustomDetail {
		t.Errorf("PresetDetail() = %q", d.PresetDetail())
	}

	d.CyclePreset(-1)
	if d.Preset != "shake-10" {
		t.Errorf("previous from custom = %q, want shake-10", d.Preset)
	}
}

func TestRecordingPanel(t *testing.T) {
	d := newDeck()
	if d.Status() != "Idle" || d.DurationText() != "0.0s" {
		t.Errorf("idle panel: %q %q", d.Status(), d.DurationText())
	}

	d.Lab.Duration = 3
	if !d.Record() {
		t.Fatal("Record() refused from idle")
	}
	if d.Record() {
		t.Error("Record() restarted a running recording")
	}
	for i := 0; i < 30; i++ {
		d.Lab.Frame(time.Second / 60)
	}
	if d.Status() != "Recording" || d.DurationText() != "0.5s / 3s" {
		t.Errorf("recording panel: %q %q", d.Status(), d.DurationText())
	}

	d.Stop()
	if d.Status() != "Ready" || d.DurationText() != "0.5s" {
		t.Errorf("ready panel: %q %q", d.Status(), d.DurationText())
	}

	d.ToggleIndefinite()
	d.Record()
	if d.DurationText() != "0.0s / ∞" {
		t.Errorf("indefinite panel: %q", d.DurationText())
	}
	d.Clear()
	if d.Status() != "Idle" {
		t.Errorf("after clear: %q", d.Status())
	}
	if SampleRateText() != "60 Hz" {
		t.Errorf("SampleRateText() = %q", SampleRateText())
	}
}

func TestToggles(t *testing.T) {
	d := newDeck()
	d.ToggleRunning()
	if d.Params().Running {
		t.Error("ToggleRunning did not pause")
	}
	d.ToggleIndefinite()
	if !d.Lab.Indefinite {
		t.Error("ToggleIndefinite did not set the flag")
	}
}

func TestFormatReadout(t *testing.T) {
	a, tip, s := FormatReadout(lab.Readout{Angle: 0.123, Tip: -0.0123, Speed: 4.567})
	if a != "0.12 rad" || tip != "-12.3 mm" || s != "4.57 rad/s" {
		t.Errorf("FormatReadout = %q %q %q", a, tip, s)
	}
}
