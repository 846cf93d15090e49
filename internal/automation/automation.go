// Package automation runs scripted YAML scenarios against a headless lab.
package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shakerlab/internal/config"
	"github.com/san-kum/shakerlab/internal/lab"
	"github.com/san-kum/shakerlab/internal/oscillator"
	"github.com/san-kum/shakerlab/internal/recorder"
)

const (
	ActionPreset    = "preset"
	ActionSet       = "set"
	ActionRun       = "run"
	ActionRecord    = "record"
	ActionStop      = "stop"
	ActionClear     = "clear"
	ActionWaitReady = "wait_ready"
	ActionExpect    = "expect"
)

var (
	ErrUnknownAction = errors.New("automation: unknown action")
	ErrTimeout       = errors.New("automation: timed out")
	ErrExpectation   = errors.New("automation: expectation failed")
)

// DefaultWaitTimeout bounds wait_ready in simulated seconds.
const DefaultWaitTimeout = 60.0

// Scenario defines a scripted session
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Seed        int64  `yaml:"seed"`
	FPS         int    `yaml:"fps"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single action. Only the fields the action uses are read; nil
// pointers leave the current value alone.
type Step struct {
	Action string `yaml:"action"`

	Preset         string   `yaml:"preset,omitempty"`
	Frequency      *float64 `yaml:"frequency,omitempty"`
	Amplitude      *float64 `yaml:"amplitude,omitempty"`
	Noise          *bool    `yaml:"noise,omitempty"`
	NoiseFrequency *float64 `yaml:"noise_frequency,omitempty"`
	NoiseAmplitude *float64 `yaml:"noise_amplitude,omitempty"`
	Running        *bool    `yaml:"running,omitempty"`
	Duration       *float64 `yaml:"duration,omitempty"`
	Indefinite     *bool    `yaml:"indefinite,omitempty"`

	// Seconds of simulated time for run, or the timeout for wait_ready.
	Seconds float64 `yaml:"seconds,omitempty"`

	State   string `yaml:"state,omitempty"`
	Samples *int   `yaml:"samples,omitempty"`
}

// StepError reports which step of a scenario failed.
type StepError struct {
	Step   int
	Action string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Action, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// StepResult records the lab after a step.
type StepResult struct {
	Action  string
	Time    float64
	State   recorder.State
	Samples int
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	return &scenario, nil
}

// FrameDelta is the wall-clock step the scenario runs at.
func (s *Scenario) FrameDelta() time.Duration {
	fps := s.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// RunScenario executes every step against l, writing a line per step to out
// when it is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, l *lab.Lab, out io.Writer) ([]StepResult, error) {
	if out == nil {
		out = io.Discard
	}
	delta := scenario.FrameDelta()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if err := runStep(ctx, step, l, delta); err != nil {
			return results, &StepError{Step: i + 1, Action: step.Action, Err: err}
		}
		r := StepResult{
			Action:  step.Action,
			Time:    l.Time(),
			State:   l.Recorder.State(),
			Samples: l.Recorder.Len(),
		}
		results = append(results, r)
		fmt.Fprintf(out, "step %d/%d %-10s t=%6.2fs recorder=%s samples=%d\n",
			i+1, len(scenario.Steps), step.Action, r.Time, r.State, r.Samples)
	}
	return results, nil
}

func runStep(ctx context.Context, step Step, l *lab.Lab, delta time.Duration) error {
	p := l.Params
	switch step.Action {
	case ActionPreset:
		preset := config.GetPreset(step.Preset)
		if preset == nil {
			return fmt.Errorf("%w: %q", config.ErrUnknownPreset, step.Preset)
		}
		p.ShakeFrequency = preset.Frequency
		p.ShakeAmplitude = preset.Amplitude
		return nil

	case ActionSet:
		return applySet(step, l)

	case ActionRun:
		frames := int(step.Seconds*float64(time.Second)/float64(delta) + 0.5)
		for i := 0; i < frames; i++ {
			if i%256 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			l.Frame(delta)
		}
		return nil

	case ActionRecord:
		l.StartRecording()
		return nil

	case ActionStop:
		l.StopRecording()
		return nil

	case ActionClear:
		l.ClearRecording()
		return nil

	case ActionWaitReady:
		timeout := step.Seconds
		if timeout <= 0 {
			timeout = DefaultWaitTimeout
		}
		if !l.Recorder.IsRecording() && l.Recorder.State() != recorder.Ready {
			return fmt.Errorf("recorder is %s", l.Recorder.State())
		}
		deadline := l.Time() + timeout
		for i := 0; l.Recorder.IsRecording(); i++ {
			if l.Time() >= deadline || !p.Running {
				return fmt.Errorf("%w waiting for ready after %.1fs", ErrTimeout, timeout)
			}
			if i%256 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			l.Frame(delta)
		}
		return nil

	case ActionExpect:
		if step.State != "" && step.State != l.Recorder.State().String() {
			return fmt.Errorf("%w: recorder is %s, want %s", ErrExpectation, l.Recorder.State(), step.State)
		}
		if step.Samples != nil && *step.Samples != l.Recorder.Len() {
			return fmt.Errorf("%w: %d samples, want %d", ErrExpectation, l.Recorder.Len(), *step.Samples)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, step.Action)
}

func applySet(step Step, l *lab.Lab) error {
	p := l.Params
	set := func(dst *float64, v *float64, r config.Range) error {
		if v == nil {
			return nil
		}
		if !r.Contains(*v) {
			return fmt.Errorf("%w: %s %v", config.ErrOutOfRange, r.Name, *v)
		}
		*dst = *v
		return nil
	}
	if err := set(&p.ShakeFrequency, step.Frequency, config.ShakeFrequencyRange); err != nil {
		return err
	}
	if err := set(&p.ShakeAmplitude, step.Amplitude, config.ShakeAmplitudeRange); err != nil {
		return err
	}
	if err := set(&p.NoiseFrequency, step.NoiseFrequency, config.NoiseFrequencyRange); err != nil {
		return err
	}
	if err := set(&p.NoiseAmplitude, step.NoiseAmplitude, config.NoiseAmplitudeRange); err != nil {
		return err
	}
	if step.Duration != nil {
		if l.Recorder.IsRecording() {
			return errors.New("duration is locked while recording")
		}
		if err := set(&l.Duration, step.Duration, config.DurationRange); err != nil {
			return err
		}
	}
	if step.Noise != nil {
		p.NoiseEnabled = *step.Noise
	}
	if step.Running != nil {
		p.Running = *step.Running
	}
	if step.Indefinite != nil {
		l.Indefinite = *step.Indefinite
	}
	return nil
}

// Capture describes a headless recording run.
type Capture struct {
	Warmup     float64 // seconds simulated before recording starts
	Duration   float64
	Indefinite bool
	// StopAfter ends an indefinite recording after this many seconds.
	StopAfter float64
}

// CaptureScenario builds the scenario behind a headless recording.
func CaptureScenario(c Capture, fps int, seed int64) (*Scenario, error) {
	if c.Indefinite && c.StopAfter <= 0 {
		return nil, errors.New("automation: an indefinite capture needs a stop time")
	}
	running := true
	steps := []Step{{Action: ActionSet, Running: &running, Indefinite: &c.Indefinite}}
	if !c.Indefinite {
		d := c.Duration
		steps[0].Duration = &d
	}
	if c.Warmup > 0 {
		steps = append(steps, Step{Action: ActionRun, Seconds: c.Warmup})
	}
	steps = append(steps, Step{Action: ActionRecord})
	if c.Indefinite {
		steps = append(steps,
			Step{Action: ActionRun, Seconds: c.StopAfter},
			Step{Action: ActionStop},
		)
	}
	sc := &Scenario{Name: "capture", Seed: seed, FPS: fps, Steps: steps}
	if !c.Indefinite {
		sc.Steps = append(sc.Steps, Step{Action: ActionWaitReady, Seconds: sc.captureTime(c.Duration) + 1})
	}
	return sc, nil
}

// captureTime is the simulated time a fixed recording of duration seconds
// takes at the scenario's frame rate.
func (s *Scenario) captureTime(duration float64) float64 {
	step := s.FrameDelta()
	if step > oscillator.MaxStep {
		step = oscillator.MaxStep
	}
	return float64(recorder.TargetFor(duration)) * recorder.Spacing(step.Seconds())
}
