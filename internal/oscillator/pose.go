package oscillator

import "github.com/san-kum/shakerlab/internal/geom"

// Arm dimensions in scene units.
const (
	ShoulderHeight = 1.08
	UpperArmLength = 1.2
	ForearmLength  = 0.9
)

// Joint coupling: each child joint rotates by offset + gain*armAngle.
const (
	ElbowOffset = 0.3
	ElbowGain   = 0.8
	WristOffset = -0.2
	WristGain   = 0.4
)

var ShoulderPivot = geom.Vec3{X: 0, Y: ShoulderHeight, Z: 0}

// Pose holds the local Z rotation of each joint.
type Pose struct {
	Shoulder float64
	Elbow    float64
	Wrist    float64
}

func PoseFor(angle float64) Pose {
	return Pose{
		Shoulder: angle,
		Elbow:    ElbowOffset + angle*ElbowGain,
		Wrist:    WristOffset + angle*WristGain,
	}
}

// ElbowPosition returns the world position of the elbow pivot.
func (p Pose) ElbowPosition() geom.Vec3 {
	return ShoulderPivot.Add(geom.Vec3{Y: UpperArmLength}.RotateZ(p.Shoulder))
}

// Effector returns the world position of the end effector, which sits at the
// wrist pivot; the wrist rotation orients the marker but does not move it.
func (p Pose) Effector() geom.Vec3 {
	return p.ElbowPosition().Add(geom.Vec3{Y: ForearmLength}.RotateZ(p.Shoulder + p.Elbow))
}
