package lab_test

import (
	"bytes"
	"errors"
	"log"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shakerlab/internal/geom"
	"github.com/san-kum/shakerlab/internal/lab"
	"github.com/san-kum/shakerlab/internal/oscillator"
	"github.com/san-kum/shakerlab/internal/recorder"
	"github.com/san-kum/shakerlab/internal/render"
	"github.com/san-kum/shakerlab/internal/render/rendertest"
	"github.com/san-kum/shakerlab/internal/scene"
)

const frame = time.Second / 60

func advance(l *lab.Lab, n int) {
	for i := 0; i < n; i++ {
		l.Frame(frame)
	}
}

// zeroCrossings counts sign changes of the signal with its mean removed.
func zeroCrossings(xs []float64) int {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	n := 0
	for i := 1; i < len(xs); i++ {
		a, b := xs[i-1]-mean, xs[i]-mean
		if (a < 0 && b >= 0) || (a >= 0 && b < 0) {
			n++
		}
	}
	return n
}

var _ = Describe("Lab", func() {
	var (
		params *oscillator.Params
		l      *lab.Lab
	)

	BeforeEach(func() {
		params = oscillator.DefaultParams()
		params.NoiseEnabled = false
		l = lab.New(params, lab.Options{Seed: 7, Duration: 6})
	})

	AfterEach(func() {
		Expect(l.Close()).To(Succeed())
	})

	Describe("the three hertz scenario", func() {
		BeforeEach(func() {
			params.ShakeFrequency = 3
			params.ShakeAmplitude = 0.22
			advance(l, 360)
			Expect(l.Time()).To(BeNumerically("~", 6, 1e-6))
			l.StartRecording()
		})

		It("records 360 samples and becomes ready", func() {
			stoppedAt := -1
			for i := 0; i < 400 && stoppedAt < 0; i++ {
				if l.Frame(frame).Stopped {
					stoppedAt = i
				}
			}
			Expect(stoppedAt).To(Equal(359))
			Expect(l.Recorder.State()).To(Equal(recorder.Ready))
			Expect(l.Recorder.Len()).To(Equal(360))
		})

		It("captures the shake fingerprint", func() {
			advance(l, 360)
			Expect(zeroCrossings(l.Recorder.Samples())).To(BeNumerically("~", 2*3*6, 2))
		})

		It("is half done after three seconds", func() {
			advance(l, 180)
			Expect(l.Recorder.Len()).To(Equal(180))
			Expect(l.Recorder.Progress()).To(Equal(0.5))
		})
	})

	It("measures tip displacement from the first frame", func() {
		f := l.Frame(frame)
		Expect(f.Tip).To(BeZero())

		advance(l, 5)
		want := oscillator.PoseFor(l.Last().Angle).Effector().Y - oscillator.PoseFor(f.Angle).Effector().Y
		Expect(l.Last().Tip).To(BeNumerically("~", want, 1e-12))
	})

	It("caps long frames", func() {
		f := l.Frame(2 * time.Second)
		Expect(f.Dt).To(BeNumerically("~", 0.05, 1e-12))
		Expect(l.Time()).To(BeNumerically("~", 0.05, 1e-12))
	})

	It("freezes time and sampling while paused", func() {
		params.Running = false
		l.StartRecording()
		advance(l, 60)
		Expect(l.Time()).To(BeZero())
		Expect(l.Recorder.Len()).To(BeZero())

		params.Running = true
		advance(l, 60)
		Expect(l.Recorder.Len()).To(Equal(60))
	})

	It("throttles readouts without touching the sampling cadence", func() {
		l.StartRecording()
		published := 0
		for i := 0; i < 60; i++ {
			if l.Frame(frame).Published {
				published++
			}
		}
		Expect(published).To(BeNumerically(">=", 7))
		Expect(published).To(BeNumerically("<=", 9))
		Expect(l.Recorder.Len()).To(Equal(60))
	})

	DescribeTable("samples at 60 Hz whatever the frame rate",
		func(fps int) {
			l.StartRecording()
			for i := 0; i < fps; i++ {
				l.Frame(time.Second / time.Duration(fps))
			}
			Expect(l.Recorder.Len()).To(Equal(60))
		},
		Entry("60 fps", 60),
		Entry("120 fps", 120),
		Entry("240 fps", 240),
	)

	It("reads parameter changes on the next frame", func() {
		advance(l, 10)
		params.ShakeAmplitude = 0.5
		f := l.Frame(frame)
		Expect(f.Angle).To(Equal(oscillator.BaseAngle(f.Time, params)))
	})

	It("uses the recording settings at start", func() {
		l.Duration = 3
		l.StartRecording()
		Expect(l.Recorder.Target()).To(Equal(180))
		Expect(l.ChartDuration()).To(BeNumerically("~", 3, 1e-12))

		l.ClearRecording()
		l.Indefinite = true
		l.StartRecording()
		advance(l, 600)
		Expect(l.Recorder.State()).To(Equal(recorder.Recording))
		l.StopRecording()
		Expect(l.Recorder.State()).To(Equal(recorder.Ready))
	})

	Describe("surfaces", func() {
		It("draws the chart and scene every frame and stops after close", func() {
			chartSurface := rendertest.New(300, 120)
			sceneSurface := rendertest.New(320, 240)
			l.SetChart(chartSurface)
			Expect(l.AttachScene(render.Fixed(sceneSurface))).To(Succeed())

			advance(l, 3)
			Expect(chartSurface.Clears).To(Equal(3))
			Expect(sceneSurface.Clears).To(Equal(3))
			Expect(geom.Distance(l.Scene.EffectorWorld(), l.Last().Effector)).To(BeNumerically("<", 1e-12))

			Expect(l.Close()).To(Succeed())
			Expect(sceneSurface.Released).To(Equal(1))
			advance(l, 3)
			Expect(chartSurface.Clears).To(Equal(3))
			Expect(sceneSurface.Clears).To(Equal(3))
			Expect(l.Close()).To(Succeed())
		})

		It("mounts the scene once its surface is attached", func() {
			var buf bytes.Buffer
			var attached render.Surface
			host := render.HostFunc(func() (render.Surface, error) {
				if attached == nil {
					return nil, render.ErrNoSurface
				}
				return attached, nil
			})
			l = lab.New(params, lab.Options{Scene: host, Logger: log.New(&buf, "", 0)})
			advance(l, 5)
			Expect(l.Scene).To(BeNil())
			Expect(buf.String()).NotTo(ContainSubstring("3D view disabled"))

			sceneSurface := rendertest.New(320, 240)
			attached = sceneSurface
			advance(l, 2)
			Expect(l.Scene).NotTo(BeNil())
			Expect(sceneSurface.Clears).To(Equal(2))
			Expect(l.Frames()).To(Equal(7))
		})

		It("keeps running when the scene cannot be created", func() {
			var buf bytes.Buffer
			failing := render.HostFunc(func() (render.Surface, error) {
				return nil, errors.New("webgl lost")
			})
			l = lab.New(params, lab.Options{Scene: failing, Logger: log.New(&buf, "", 0)})

			Expect(l.Scene).To(BeNil())
			Expect(buf.String()).To(ContainSubstring("3D view disabled"))
			err := l.AttachScene(failing)
			Expect(errors.Is(err, scene.ErrContextUnavailable)).To(BeTrue())

			advance(l, 30)
			Expect(l.Frames()).To(Equal(30))
		})
	})
})
