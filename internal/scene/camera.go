package scene

import (
	"math"

	"github.com/san-kum/shakerlab/internal/geom"
)

const (
	minDistance = 2.0
	maxDistance = 20.0
)

// Camera is a perspective camera looking at a fixed target. Orbiting swings
// the eye around the target's vertical axis.
type Camera struct {
	Position, Target, Up geom.Vec3
	FOV                  float64 // vertical, degrees
	Near, Far            float64
	Aspect               float64
}

func NewCamera() *Camera {
	return &Camera{
		Position: geom.Vec3{X: 0.3, Y: 2.4, Z: 6.2},
		Target:   geom.Vec3{X: 0, Y: 1.6, Z: 0},
		Up:       geom.Vec3{Y: 1},
		FOV:      42,
		Near:     0.1,
		Far:      100,
		Aspect:   1,
	}
}

// Orbit rotates the eye about the vertical axis through the target.
func (c *Camera) Orbit(yaw float64) {
	off := c.Position.Sub(c.Target).RotateY(yaw)
	c.Position = c.Target.Add(off)
}

// Zoom scales the eye-to-target distance by f, clamped to a usable range.
func (c *Camera) Zoom(f float64) {
	if f <= 0 || math.IsNaN(f) {
		return
	}
	off := c.Position.Sub(c.Target)
	d := math.Max(minDistance, math.Min(maxDistance, off.Length()*f))
	c.Position = c.Target.Add(off.Normalize().Scale(d))
}

// Distance is the current eye-to-target distance.
func (c *Camera) Distance() float64 { return c.Position.Sub(c.Target).Length() }

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward geom.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// Project maps a world point onto a w x h viewport with the origin at the
// top-left. depth is the distance along the view axis; ok is false when the
// point lies outside the near/far range.
func (c *Camera) Project(p geom.Vec3, w, h float64) (x, y, depth float64, ok bool) {
	right, up, forward := c.basis()
	v := p.Sub(c.Position)
	depth = v.Dot(forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	ndcX := v.Dot(right) * f / (aspect * depth)
	ndcY := v.Dot(up) * f / depth
	x = (ndcX + 1) / 2 * w
	y = (1 - ndcY) / 2 * h
	return x, y, depth, true
}
