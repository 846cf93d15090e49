package oscillator

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/shakerlab/internal/geom"
)

func TestArmAngle_NoNoise(t *testing.T) {
	m := NewModel(1)
	tests := []struct {
		freq, amp float64
	}{
		{1, 0.14},
		{3, 0.22},
		{5, 0.3},
		{10, 0.36},
		{0, 0.05},
	}

	for _, tt := range tests {
		p := &Params{ShakeFrequency: tt.freq, ShakeAmplitude: tt.amp, NoiseFrequency: 7, NoiseAmplitude: 0.2}
		for _, ts := range []float64{0, 0.013, 0.25, 1.7, 9.99} {
			want := math.Sin(2*math.Pi*ts*tt.freq) * tt.amp * 1.1
			if got := m.ArmAngle(ts, p); got != want {
				t.Errorf("ArmAngle(%v, f=%v) = %v, want %v", ts, tt.freq, got, want)
			}
		}
	}
}

func TestArmAngle_Periodic(t *testing.T) {
	m := NewModel(1)
	p := &Params{ShakeFrequency: 3, ShakeAmplitude: 0.22}
	period := 1 / p.ShakeFrequency

	for _, ts := range []float64{0.01, 0.1, 0.2, 0.77} {
		a, b := m.ArmAngle(ts, p), m.ArmAngle(ts+period, p)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("angle(%v) = %v, angle(t+T) = %v", ts, a, b)
		}
	}
}

func TestArmAngle_Noise(t *testing.T) {
	m := NewModel(1)
	p := &Params{ShakeFrequency: 3, ShakeAmplitude: 0.22, NoiseEnabled: true, NoiseFrequency: 1, NoiseAmplitude: 0.1}
	ts := 0.3
	want := math.Sin(2*math.Pi*ts*3)*0.22*1.1 + math.Sin(2*math.Pi*ts*1)*0.1*0.7
	if got := m.ArmAngle(ts, p); math.Abs(got-want) > 1e-15 {
		t.Errorf("ArmAngle = %v, want %v", got, want)
	}
}

func TestCable_Formula(t *testing.T) {
	m := NewModel(42)
	p := &Params{ShakeFrequency: 3, ShakeAmplitude: 0.22, NoiseEnabled: true, NoiseFrequency: 2, NoiseAmplitude: 0.1}
	ts := 0.41
	effector := PoseFor(m.ArmAngle(ts, p)).Effector()

	pts := m.Cable(ts, p, Anchor, effector, nil)
	if len(pts) != CablePoints {
		t.Fatalf("expected %d points, got %d", CablePoints, len(pts))
	}

	for i, pt := range pts {
		alpha := float64(i) / float64(CablePoints-1)
		base := geom.Lerp(Anchor, effector, alpha)
		basePhase := 2 * math.Pi * ts * 3
		noise := math.Sin(2*math.Pi*ts*2+m.Phase(i)) * 0.1 * 0.3
		wantY := base.Y - 0.45*math.Sin(math.Pi*alpha) + math.Sin(basePhase+6*alpha)*0.22*0.28 + noise
		wantZ := base.Z + math.Cos(0.9*basePhase+4*alpha)*0.22*0.12 + 0.5*noise

		if math.Abs(pt.X-base.X) > 1e-12 || math.Abs(pt.Y-wantY) > 1e-12 || math.Abs(pt.Z-wantZ) > 1e-12 {
			t.Errorf("point %d = %v, want (%v, %v, %v)", i, pt, base.X, wantY, wantZ)
		}
	}
}

func TestCable_ReusesBuffer(t *testing.T) {
	m := NewModel(3)
	p := DefaultParams()
	buf := make([]geom.Vec3, CablePoints)
	out := m.Cable(1.0, p, Anchor, geom.Vec3{Y: 3}, buf)
	if &out[0] != &buf[0] {
		t.Error("Cable allocated despite sufficient capacity")
	}
}

func TestModel_Deterministic(t *testing.T) {
	p := DefaultParams()
	a, b := NewModel(99), NewModel(99)
	for i := 0; i < CablePoints; i++ {
		if a.Phase(i) != b.Phase(i) {
			t.Fatalf("phase %d differs for equal seeds", i)
		}
		if a.Phase(i) < 0 || a.Phase(i) >= 2*math.Pi {
			t.Errorf("phase %d out of range: %v", i, a.Phase(i))
		}
	}

	e := PoseFor(a.ArmAngle(2.5, p)).Effector()
	ca := a.Cable(2.5, p, Anchor, e, nil)
	cb := b.Cable(2.5, p, Anchor, e, nil)
	for i := range ca {
		if ca[i] != cb[i] {
			t.Errorf("point %d differs: %v vs %v", i, ca[i], cb[i])
		}
	}
}

func TestPose_Effector(t *testing.T) {
	p := PoseFor(0)
	if p.Elbow != 0.3 || p.Wrist != -0.2 {
		t.Fatalf("rest pose = %+v", p)
	}

	e := p.Effector()
	wantX := -0.9 * math.Sin(0.3)
	wantY := 1.08 + 1.2 + 0.9*math.Cos(0.3)
	if math.Abs(e.X-wantX) > 1e-12 || math.Abs(e.Y-wantY) > 1e-12 || e.Z != 0 {
		t.Errorf("Effector() = %v, want (%v, %v, 0)", e, wantX, wantY)
	}

	bent := PoseFor(0.2)
	if math.Abs(bent.Elbow-(0.3+0.16)) > 1e-12 || math.Abs(bent.Wrist-(-0.2+0.08)) > 1e-12 {
		t.Errorf("PoseFor(0.2) = %+v", bent)
	}
}

func TestClock_Advance(t *testing.T) {
	tests := []struct {
		name    string
		delta   time.Duration
		running bool
		wantDt  float64
		wantNow float64
	}{
		{"normal frame", 16 * time.Millisecond, true, 0.016, 0.016},
		{"capped", 2 * time.Second, true, 0.05, 0.05},
		{"paused", 16 * time.Millisecond, false, 0.016, 0},
		{"negative", -time.Second, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Clock
			dt := c.Advance(tt.delta, tt.running)
			if math.Abs(dt-tt.wantDt) > 1e-12 {
				t.Errorf("Advance() = %v, want %v", dt, tt.wantDt)
			}
			if math.Abs(c.Now()-tt.wantNow) > 1e-12 {
				t.Errorf("Now() = %v, want %v", c.Now(), tt.wantNow)
			}
		})
	}
}

func TestSpeedTracker(t *testing.T) {
	var s SpeedTracker
	if got := s.Update(0.1, 0.01); math.Abs(got-10) > 1e-9 {
		t.Errorf("speed = %v, want 10", got)
	}
	// zero dt is floored at 1ms
	if got := s.Update(0.2, 0); math.Abs(got-100) > 1e-9 {
		t.Errorf("speed = %v, want 100", got)
	}
	if got := s.Update(0.2, 0.5); got != 0 {
		t.Errorf("speed after no motion = %v, want 0", got)
	}
}
