// Package lab runs the per-frame pipeline shared by every front-end.
//
// Each call to Frame performs, in order: clock advance, oscillator
// evaluation, scene mutation, recorder sampling, chart redraw and the final
// scene draw, so the chart and the recording always describe the same
// instant as the 3D view. The lab is single-threaded; front-ends mutate
// Params and call the recording commands between frames.
package lab

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/san-kum/shakerlab/internal/chart"
	"github.com/san-kum/shakerlab/internal/geom"
	"github.com/san-kum/shakerlab/internal/metrics"
	"github.com/san-kum/shakerlab/internal/oscillator"
	"github.com/san-kum/shakerlab/internal/recorder"
	"github.com/san-kum/shakerlab/internal/render"
	"github.com/san-kum/shakerlab/internal/scene"
)

// ReadoutInterval throttles readout publishing. It never affects sampling.
const ReadoutInterval = 120 * time.Millisecond

// Readout is the summary shown on the readout cards.
type Readout struct {
	Angle float64 // rad
	Tip   float64 // scene units, shown as mm
	Speed float64 // rad/s
}

// Frame describes one pass through the pipeline.
type Frame struct {
	Time     float64
	Dt       float64
	Angle    float64
	Tip      float64
	Effector geom.Vec3

	// Stopped is set when this frame completed a fixed-duration recording.
	Stopped bool
	// Published is set when the readout was refreshed.
	Published bool
}

type Options struct {
	Seed int64
	// Scene is where the 3D view is mounted; nil runs without one.
	Scene render.Host
	Chart render.Surface
	// ChartOptions are passed to chart.Draw; Duration is filled per frame.
	ChartOptions chart.Options
	// Duration and Indefinite are the initial recording settings.
	Duration   float64
	Indefinite bool
	Logger     *log.Logger
}

type Lab struct {
	Params   *oscillator.Params
	Recorder *recorder.Recorder
	Metrics  metrics.Set
	Scene    *scene.Renderer

	// Recording settings read by StartRecording.
	Duration   float64
	Indefinite bool

	clock     oscillator.Clock
	model     *oscillator.Model
	speed     *metrics.AngularSpeed
	cable     []geom.Vec3
	chart     render.Surface
	chartOpts chart.Options
	logger    *log.Logger
	// pending is a host whose surface was not attached yet; Frame retries it.
	pending render.Host

	baseline    float64
	hasBaseline bool

	readout      Readout
	sinceReadout time.Duration
	everReadout  bool

	last   Frame
	frames int
	closed bool
}

// New creates a lab around externally owned params. A scene host that fails
// to produce a surface is logged and the lab runs without the 3D view; one
// that has no surface attached yet is retried every frame.
func New(params *oscillator.Params, opts Options) *Lab {
	if params == nil {
		params = oscillator.DefaultParams()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	speed := metrics.NewAngularSpeed()
	l := &Lab{
		Params:     params,
		Recorder:   recorder.New(),
		Metrics:    metrics.Set{speed, metrics.NewExcursion()},
		Duration:   opts.Duration,
		Indefinite: opts.Indefinite,
		model:      oscillator.NewModel(opts.Seed),
		speed:      speed,
		cable:      make([]geom.Vec3, oscillator.CablePoints),
		chart:      opts.Chart,
		chartOpts:  opts.ChartOptions,
		logger:     logger,
	}
	if l.Duration <= 0 {
		l.Duration = 6
	}
	if opts.Scene != nil {
		// failures are logged there
		l.AttachScene(opts.Scene)
	}
	return l
}

// AttachScene mounts the 3D view. On failure the error is returned and the
// lab keeps running without a scene. A render.ErrNoSurface failure is kept
// for Frame to retry; any other failure is logged and disables the view.
func (l *Lab) AttachScene(host render.Host) error {
	if l.closed {
		return scene.ErrDisposed
	}
	if l.Scene != nil {
		return nil
	}
	r := scene.New()
	if err := r.Initialize(host); err != nil {
		if derr := r.Dispose(); derr != nil {
			l.logger.Printf("scene teardown: %v", derr)
		}
		if errors.Is(err, render.ErrNoSurface) {
			l.pending = host
			return err
		}
		l.pending = nil
		l.logger.Printf("3D view disabled: %v", err)
		return err
	}
	l.pending = nil
	l.Scene = r
	return nil
}

// SetChart swaps the chart surface; nil disables chart drawing.
func (l *Lab) SetChart(s render.Surface) { l.chart = s }

func (l *Lab) SetChartOptions(o chart.Options) { l.chartOpts = o }

// Frame advances the pipeline by a wall-clock delta.
func (l *Lab) Frame(delta time.Duration) Frame {
	if l.closed {
		return l.last
	}
	if l.Scene == nil && l.pending != nil {
		l.AttachScene(l.pending)
	}
	p := l.Params

	dt := l.clock.Advance(delta, p.Running)
	t := l.clock.Now()

	angle := l.model.ArmAngle(t, p)
	effector := oscillator.PoseFor(angle).Effector()
	l.cable = l.model.Cable(t, p, oscillator.Anchor, effector, l.cable)

	if l.Scene != nil {
		l.Scene.Pose(angle, l.cable)
	}

	if !l.hasBaseline {
		l.baseline = effector.Y
		l.hasBaseline = true
	}
	tip := effector.Y - l.baseline

	l.Metrics.Observe(metrics.Frame{Time: t, Dt: dt, Angle: angle, Tip: tip})

	f := Frame{Time: t, Dt: dt, Angle: angle, Tip: tip, Effector: effector}

	l.sinceReadout += delta
	if !l.everReadout || l.sinceReadout > ReadoutInterval {
		l.readout = Readout{Angle: angle, Tip: tip, Speed: l.speed.Value()}
		l.sinceReadout = 0
		l.everReadout = true
		f.Published = true
	}

	f.Stopped = l.Recorder.OnFrame(t, tip)

	l.drawChart()

	if l.Scene != nil {
		l.Scene.Draw()
	}

	l.frames++
	l.last = f
	return f
}

func (l *Lab) drawChart() {
	if l.chart == nil {
		return
	}
	live := l.Recorder.IsRecording()
	progress := 1.0
	if live {
		progress = l.Recorder.Progress()
	}
	opts := l.chartOpts
	opts.Duration = l.ChartDuration()
	chart.Draw(l.chart, l.Recorder.Live(), progress, live, opts)
}

// ChartDuration is the span the chart's time axis covers.
func (l *Lab) ChartDuration() float64 {
	if l.Recorder.State() == recorder.Idle {
		if l.Indefinite {
			return 0
		}
		return l.Duration
	}
	return l.Recorder.Duration()
}

// StartRecording begins a recording with the current settings.
func (l *Lab) StartRecording() {
	l.Recorder.Start(l.clock.Now(), l.Duration, l.Indefinite)
}

func (l *Lab) StopRecording()  { l.Recorder.Stop() }
func (l *Lab) ClearRecording() { l.Recorder.Clear() }

// Readout returns the last published readout.
func (l *Lab) Readout() Readout { return l.readout }

// Time is the simulation clock in seconds.
func (l *Lab) Time() float64 { return l.clock.Now() }

// Last returns the most recent frame.
func (l *Lab) Last() Frame { return l.last }

// Frames counts completed frames.
func (l *Lab) Frames() int { return l.frames }

// Cable returns the current cable control points.
func (l *Lab) Cable() []geom.Vec3 { return l.cable }

func (l *Lab) Closed() bool { return l.closed }

// Close tears down the scene. Frames after Close are no-ops.
func (l *Lab) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.Scene == nil {
		return nil
	}
	return l.Scene.Dispose()
}
