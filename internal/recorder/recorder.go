// Package recorder samples the tip displacement signal at a fixed rate
// during an explicit recording window.
//
// The recorder is a three-state machine:
//
//	idle --Start--> recording --Stop|target reached--> ready --Clear--> idle
//
// Start from ready discards the previous recording; Clear from recording
// aborts it. Calls that do not apply to the current state are no-ops.
package recorder

import "math"

// SampleRate is the fixed sampling rate in Hz, independent of the display
// frame rate.
const SampleRate = 60

// Interval is the nominal spacing between samples in seconds.
const Interval = 1.0 / SampleRate

// tolerance absorbs clock error so a frame landing on a sample boundary still
// samples. Frame deltas arrive as whole nanoseconds, so 240 fps frames sum
// to a few nanoseconds short of one interval.
const tolerance = 1e-6

type State int

const (
	Idle State = iota
	Recording
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Recorder holds at most one recording session.
type Recorder struct {
	state      State
	samples    []float64
	target     int
	indefinite bool
	lastSample float64
}

func New() *Recorder { return &Recorder{} }

// TargetFor returns the sample count of a fixed-duration recording.
func TargetFor(seconds float64) int {
	n := int(math.Round(seconds * SampleRate))
	if n < 1 {
		return 1
	}
	return n
}

// Spacing is the simulated time between samples when every frame advances
// the clock by frameStep seconds. At most one sample lands per frame, so
// frame rates off the 1/60 s grid sample less often than SampleRate.
func Spacing(frameStep float64) float64 {
	if frameStep <= 0 {
		return Interval
	}
	frames := math.Max(1, math.Ceil((Interval-tolerance)/frameStep))
	return frames * frameStep
}

// Start begins a new recording anchored at simTime, discarding any previous
// samples. In indefinite mode duration is ignored.
func (r *Recorder) Start(simTime, duration float64, indefinite bool) {
	r.indefinite = indefinite
	r.target = TargetFor(duration)
	if indefinite {
		r.samples = make([]float64, 0, 4*SampleRate)
	} else {
		r.samples = make([]float64, 0, r.target)
	}
	r.lastSample = simTime
	r.state = Recording
}

// OnFrame samples tip if at least one interval of simulation time has
// passed since the last sample. The anchor moves to simTime, not to the
// ideal sample instant, so a late frame delays every later sample too.
// It reports whether this frame completed a fixed-duration recording.
func (r *Recorder) OnFrame(simTime, tip float64) bool {
	if r.state != Recording {
		return false
	}
	if simTime-r.lastSample+tolerance >= Interval {
		r.lastSample = simTime
		r.samples = append(r.samples, tip)
	}
	if !r.indefinite && len(r.samples) >= r.target {
		r.state = Ready
		return true
	}
	return false
}

// Stop freezes the current recording. Only valid while recording.
func (r *Recorder) Stop() {
	if r.state != Recording {
		return
	}
	r.state = Ready
}

// Clear discards all samples and returns to idle.
func (r *Recorder) Clear() {
	r.samples = nil
	r.state = Idle
}

func (r *Recorder) State() State      { return r.state }
func (r *Recorder) Target() int       { return r.target }
func (r *Recorder) Indefinite() bool  { return r.indefinite }
func (r *Recorder) Len() int          { return len(r.samples) }
func (r *Recorder) IsRecording() bool { return r.state == Recording }

// Progress is the completed fraction of a fixed-duration recording. An
// indefinite recording has no denominator and reports 1, as does a finished
// one; idle reports 0.
func (r *Recorder) Progress() float64 {
	switch r.state {
	case Idle:
		return 0
	case Ready:
		return 1
	}
	if r.indefinite {
		return 1
	}
	return math.Min(1, math.Max(0, float64(len(r.samples))/float64(r.target)))
}

// Elapsed is the recorded span in seconds.
func (r *Recorder) Elapsed() float64 {
	return float64(len(r.samples)) / SampleRate
}

// Duration is the span the chart's time axis should cover: the planned
// length for a fixed-duration recording, the recorded length otherwise.
func (r *Recorder) Duration() float64 {
	if r.indefinite || r.state == Idle {
		return r.Elapsed()
	}
	return float64(r.target) / SampleRate
}

// Samples returns a copy of the recorded samples.
func (r *Recorder) Samples() []float64 {
	out := make([]float64, len(r.samples))
	copy(out, r.samples)
	return out
}

// Live returns the sample buffer without copying. The slice is only valid
// until the next call that mutates the recorder.
func (r *Recorder) Live() []float64 { return r.samples }
