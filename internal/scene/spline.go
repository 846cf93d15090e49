package scene

import (
	"math"

	"github.com/san-kum/shakerlab/internal/geom"
)

// CableDivisions is how many segments the smoothed cable is sampled into.
const CableDivisions = 80

// CatmullRom samples an open centripetal Catmull-Rom curve through pts at
// divisions+1 evenly spaced parameter values. The end tangents come from
// reflecting the neighbouring point. dst is reused when large enough.
func CatmullRom(pts []geom.Vec3, divisions int, dst []geom.Vec3) []geom.Vec3 {
	n := divisions + 1
	if cap(dst) < n {
		dst = make([]geom.Vec3, n)
	}
	dst = dst[:n]
	if len(pts) == 0 {
		for i := range dst {
			dst[i] = geom.Vec3{}
		}
		return dst
	}
	for i := range dst {
		dst[i] = curvePoint(pts, float64(i)/float64(divisions))
	}
	return dst
}

func curvePoint(pts []geom.Vec3, t float64) geom.Vec3 {
	l := len(pts)
	if l == 1 {
		return pts[0]
	}
	p := float64(l-1) * t
	idx := int(math.Floor(p))
	w := p - float64(idx)
	if idx >= l-1 {
		idx, w = l-2, 1
	}

	var p0, p3 geom.Vec3
	if idx > 0 {
		p0 = pts[idx-1]
	} else {
		p0 = pts[0].Sub(pts[1]).Add(pts[0])
	}
	p1, p2 := pts[idx], pts[idx+1]
	if idx+2 < l {
		p3 = pts[idx+2]
	} else {
		p3 = pts[l-1].Sub(pts[l-2]).Add(pts[l-1])
	}

	dt0 := math.Pow(distSq(p0, p1), 0.25)
	dt1 := math.Pow(distSq(p1, p2), 0.25)
	dt2 := math.Pow(distSq(p2, p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return geom.Vec3{
		X: segment(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: segment(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		Z: segment(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	}
}

// segment evaluates the non-uniform cubic between x1 and x2.
func segment(x0, x1, x2, x3, dt0, dt1, dt2, w float64) float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + w*(c1+w*(c2+w*c3))
}

func distSq(a, b geom.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
