package recorder_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shakerlab/internal/recorder"
)

// run feeds frames of dt seconds starting after t0 and returns the clock.
func run(r *recorder.Recorder, t0, dt float64, frames int) float64 {
	t := t0
	for i := 0; i < frames; i++ {
		t += dt
		r.OnFrame(t, t)
	}
	return t
}

var _ = Describe("Recorder", func() {
	var r *recorder.Recorder

	BeforeEach(func() {
		r = recorder.New()
	})

	It("starts idle and empty", func() {
		Expect(r.State()).To(Equal(recorder.Idle))
		Expect(r.Len()).To(BeZero())
		Expect(r.Progress()).To(BeZero())
	})

	Describe("transitions", func() {
		It("ignores stop while idle", func() {
			r.Stop()
			Expect(r.State()).To(Equal(recorder.Idle))
		})

		It("ignores frames while idle", func() {
			Expect(r.OnFrame(1, 0.5)).To(BeFalse())
			Expect(r.Len()).To(BeZero())
		})

		DescribeTable("clear from any state yields an empty idle recorder",
			func(setup func(*recorder.Recorder)) {
				setup(r)
				r.Clear()
				Expect(r.State()).To(Equal(recorder.Idle))
				Expect(r.Len()).To(BeZero())
			},
			Entry("idle", func(*recorder.Recorder) {}),
			Entry("recording", func(r *recorder.Recorder) {
				r.Start(0, 6, false)
				run(r, 0, 1.0/60, 30)
			}),
			Entry("ready", func(r *recorder.Recorder) {
				r.Start(0, 1, false)
				run(r, 0, 1.0/60, 120)
			}),
		)

		It("discards the previous recording on restart", func() {
			r.Start(0, 6, false)
			t := run(r, 0, 1.0/60, 50)
			r.Stop()
			Expect(r.State()).To(Equal(recorder.Ready))
			Expect(r.Len()).To(Equal(50))

			r.Start(t, 6, false)
			Expect(r.State()).To(Equal(recorder.Recording))
			Expect(r.Len()).To(BeZero())
		})

		It("keeps samples handed out before a restart", func() {
			r.Start(0, 6, false)
			run(r, 0, 1.0/60, 10)
			r.Stop()
			old := r.Samples()
			r.Start(1, 6, false)
			run(r, 1, 1.0/60, 5)
			Expect(old).To(HaveLen(10))
		})
	})

	Describe("sampling", func() {
		It("samples at 60 Hz regardless of the frame rate", func() {
			r.Start(0, 100, false)
			run(r, 0, 1.0/240, 240)
			Expect(r.Len()).To(BeNumerically("~", 60, 1))
		})

		It("samples at 60 Hz with whole-nanosecond frame steps", func() {
			r.Start(0, 100, false)
			run(r, 0, (time.Second / 240).Seconds(), 240)
			Expect(r.Len()).To(Equal(60))
		})

		It("takes one sample per frame at exactly 60 fps", func() {
			r.Start(0, 100, false)
			run(r, 0, 1.0/60, 90)
			Expect(r.Len()).To(Equal(90))
		})

		It("anchors the next sample at the late frame", func() {
			r.Start(0, 100, false)
			r.OnFrame(0.025, 1)
			Expect(r.Len()).To(Equal(1))
			// 0.035 is past 2/60 but only 10ms after the last sample
			r.OnFrame(0.035, 2)
			Expect(r.Len()).To(Equal(1))
			r.OnFrame(0.025+1.0/60, 3)
			Expect(r.Live()).To(Equal([]float64{1, 3}))
		})

		It("auto-stops exactly at the target", func() {
			r.Start(0, 6, false)
			Expect(r.Target()).To(Equal(360))

			t := 0.0
			stopped := false
			for i := 0; i < 1000 && !stopped; i++ {
				t += 1.0 / 60
				stopped = r.OnFrame(t, 0.1)
			}
			Expect(stopped).To(BeTrue())
			Expect(r.State()).To(Equal(recorder.Ready))
			Expect(r.Len()).To(Equal(360))

			run(r, t, 1.0/60, 30)
			Expect(r.Len()).To(Equal(360))
		})

		It("never auto-stops when indefinite", func() {
			r.Start(0, 1, true)
			run(r, 0, 1.0/60, 600)
			Expect(r.State()).To(Equal(recorder.Recording))
			Expect(r.Len()).To(Equal(600))
			Expect(r.Elapsed()).To(BeNumerically("~", 10, 1e-9))
			Expect(r.Duration()).To(Equal(r.Elapsed()))

			r.Stop()
			Expect(r.State()).To(Equal(recorder.Ready))
		})
	})

	Describe("progress", func() {
		It("is the filled fraction of the target", func() {
			r.Start(0, 6, false)
			run(r, 0, 1.0/60, 180)
			Expect(r.Len()).To(Equal(180))
			Expect(r.Progress()).To(Equal(0.5))
			Expect(r.Elapsed()).To(BeNumerically("~", 3, 1e-9))
			Expect(r.Duration()).To(BeNumerically("~", 6, 1e-9))
		})

		It("reports 1 for indefinite and finished recordings", func() {
			r.Start(0, 6, true)
			run(r, 0, 1.0/60, 3)
			Expect(r.Progress()).To(Equal(1.0))

			r.Start(0, 6, false)
			r.Stop()
			Expect(r.Progress()).To(Equal(1.0))
		})
	})

	DescribeTable("target sample count",
		func(seconds float64, want int) {
			Expect(recorder.TargetFor(seconds)).To(Equal(want))
		},
		Entry("3 s", 3.0, 180),
		Entry("6 s", 6.0, 360),
		Entry("12 s", 12.0, 720),
		Entry("rounded", 2.51, 151),
		Entry("floored at one", 0.0, 1),
		Entry("negative", -4.0, 1),
	)
})

var _ = DescribeTable("sample spacing",
	func(fps int, want float64) {
		step := (time.Second / time.Duration(fps)).Seconds()
		Expect(recorder.Spacing(step)).To(BeNumerically("~", want, 1e-6))
	},
	Entry("30 fps samples every frame", 30, 1.0/30),
	Entry("60 fps", 60, 1.0/60),
	Entry("144 fps waits three frames", 144, 3.0/144),
	Entry("240 fps", 240, 1.0/60),
)

var _ = Describe("State", func() {
	It("has readable names", func() {
		Expect(recorder.Idle.String()).To(Equal("idle"))
		Expect(recorder.Recording.String()).To(Equal("recording"))
		Expect(recorder.Ready.String()).To(Equal("ready"))
		Expect(recorder.State(9).String()).To(Equal("unknown"))
	})
})
