package oscillator

import (
	"math"
	"math/rand"

	"github.com/san-kum/shakerlab/internal/geom"
)

const (
	TwoPi = 2 * math.Pi

	// CablePoints is the fixed number of cable control points.
	CablePoints = 18

	shakeGain = 1.1
	noiseGain = 0.7

	sagDepth     = 0.45
	waveGain     = 0.28
	waveSpread   = 6.0
	lateralGain  = 0.12
	lateralRate  = 0.9
	lateralShift = 4.0
	cableNoise   = 0.3
)

// Anchor is where the free end of the cable is clamped.
var Anchor = geom.Vec3{X: -1.6, Y: 0.2, Z: 0}

// Model evaluates the shaker. The only state it holds is the per-point
// noise phase, fixed at construction.
type Model struct {
	phases [CablePoints]float64
}

func NewModel(seed int64) *Model {
	rng := rand.New(rand.NewSource(seed))
	m := &Model{}
	for i := range m.phases {
		m.phases[i] = rng.Float64() * TwoPi
	}
	return m
}

// Phase returns the fixed noise phase of cable point i.
func (m *Model) Phase(i int) float64 { return m.phases[i] }

// BaseAngle is the shake component of the arm angle.
func BaseAngle(t float64, p *Params) float64 {
	return math.Sin(TwoPi*t*p.ShakeFrequency) * p.ShakeAmplitude * shakeGain
}

// NoiseAngle is the injected interference component; zero when noise is off.
func NoiseAngle(t float64, p *Params) float64 {
	if !p.NoiseEnabled {
		return 0
	}
	return math.Sin(TwoPi*t*p.NoiseFrequency) * p.NoiseAmplitude * noiseGain
}

func (m *Model) ArmAngle(t float64, p *Params) float64 {
	return BaseAngle(t, p) + NoiseAngle(t, p)
}

// Cable computes the control points between anchor and effector. dst is
// reused when it has room for CablePoints entries.
func (m *Model) Cable(t float64, p *Params, anchor, effector geom.Vec3, dst []geom.Vec3) []geom.Vec3 {
	if cap(dst) < CablePoints {
		dst = make([]geom.Vec3, CablePoints)
	}
	dst = dst[:CablePoints]

	basePhase := TwoPi * t * p.ShakeFrequency
	noisePhase := TwoPi * t * p.NoiseFrequency

	for i := range dst {
		alpha := float64(i) / float64(CablePoints-1)
		pt := geom.Lerp(anchor, effector, alpha)

		sag := -sagDepth * math.Sin(math.Pi*alpha)
		wave := math.Sin(basePhase+alpha*waveSpread) * p.ShakeAmplitude * waveGain
		lateral := math.Cos(basePhase*lateralRate+alpha*lateralShift) * p.ShakeAmplitude * lateralGain
		noise := 0.0
		if p.NoiseEnabled {
			noise = math.Sin(noisePhase+m.phases[i]) * p.NoiseAmplitude * cableNoise
		}

		pt.Y += sag + wave + noise
		pt.Z += lateral + noise*0.5
		dst[i] = pt
	}
	return dst
}

// SpeedTracker produces |Δangle| / max(Δt, 1ms) each frame.
type SpeedTracker struct {
	prev  float64
	speed float64
}

const minSpeedDt = 0.001

func (s *SpeedTracker) Update(angle, dt float64) float64 {
	s.speed = math.Abs(angle-s.prev) / math.Max(dt, minSpeedDt)
	s.prev = angle
	return s.speed
}

func (s *SpeedTracker) Value() float64 { return s.speed }
func (s *SpeedTracker) Reset()         { *s = SpeedTracker{} }
