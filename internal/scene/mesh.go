package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/shakerlab/internal/geom"
)

// ErrReleased is returned when a resource is released twice.
var ErrReleased = errors.New("scene: resource already released")

// Geometry is a wireframe: vertices in local space and index pairs joining
// them.
type Geometry struct {
	Kind     string
	Vertices []geom.Vec3
	Edges    [][2]int

	released bool
}

func (g *Geometry) Release() error {
	if g.released {
		return fmt.Errorf("%s geometry: %w", g.Kind, ErrReleased)
	}
	g.released = true
	g.Vertices, g.Edges = nil, nil
	return nil
}

func (g *Geometry) Released() bool { return g.released }

// Material is how a mesh's edges are stroked.
type Material struct {
	Name  string
	Color color.RGBA
	Width float64

	released bool
}

func (m *Material) Release() error {
	if m.released {
		return fmt.Errorf("%s material: %w", m.Name, ErrReleased)
	}
	m.released = true
	return nil
}

func (m *Material) Released() bool { return m.released }

type Mesh struct {
	Geometry *Geometry
	Material *Material
}

// Box is an axis-aligned cuboid centred on the origin.
func Box(w, h, d float64) *Geometry {
	x, y, z := w/2, h/2, d/2
	return &Geometry{
		Kind: "box",
		Vertices: []geom.Vec3{
			{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
			{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// Cylinder is a frustum along Y centred on the origin, drawn as its two
// rims plus every other side edge.
func Cylinder(top, bottom, h float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Kind: "cylinder"}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		s, c := math.Sin(a), math.Cos(a)
		g.Vertices = append(g.Vertices,
			geom.Vec3{X: top * s, Y: h / 2, Z: top * c},
			geom.Vec3{X: bottom * s, Y: -h / 2, Z: bottom * c},
		)
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		g.Edges = append(g.Edges, [2]int{2 * i, 2 * j}, [2]int{2*i + 1, 2*j + 1})
		if i%2 == 0 {
			g.Edges = append(g.Edges, [2]int{2 * i, 2*i + 1})
		}
	}
	return g
}

// Sphere is drawn as its three great circles.
func Sphere(r float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Kind: "sphere"}
	for plane := 0; plane < 3; plane++ {
		base := len(g.Vertices)
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			s, c := r*math.Sin(a), r*math.Cos(a)
			var v geom.Vec3
			switch plane {
			case 0:
				v = geom.Vec3{X: c, Y: s}
			case 1:
				v = geom.Vec3{X: c, Z: s}
			default:
				v = geom.Vec3{Y: c, Z: s}
			}
			g.Vertices = append(g.Vertices, v)
			g.Edges = append(g.Edges, [2]int{base + i, base + (i+1)%segments})
		}
	}
	return g
}

// Grid is a square of lines on the XZ plane.
func Grid(size float64, divisions int) *Geometry {
	if divisions < 1 {
		divisions = 1
	}
	g := &Geometry{Kind: "grid"}
	half := size / 2
	step := size / float64(divisions)
	for i := 0; i <= divisions; i++ {
		p := -half + float64(i)*step
		n := len(g.Vertices)
		g.Vertices = append(g.Vertices,
			geom.Vec3{X: p, Z: -half}, geom.Vec3{X: p, Z: half},
			geom.Vec3{X: -half, Z: p}, geom.Vec3{X: half, Z: p},
		)
		g.Edges = append(g.Edges, [2]int{n, n + 1}, [2]int{n + 2, n + 3})
	}
	return g
}

// Polyline is an open line strip with n vertices, all at the origin until
// SetPoints is called.
func Polyline(n int) *Geometry {
	g := &Geometry{Kind: "polyline"}
	g.SetPoints(make([]geom.Vec3, n))
	return g
}

// SetPoints replaces a polyline's vertices, reusing its buffers.
func (g *Geometry) SetPoints(pts []geom.Vec3) {
	g.Vertices = append(g.Vertices[:0], pts...)
	g.Edges = g.Edges[:0]
	for i := 1; i < len(pts); i++ {
		g.Edges = append(g.Edges, [2]int{i - 1, i})
	}
}

type resource interface {
	Release() error
}

type entry struct {
	name string
	res  resource
}

// ledger records every GPU-style allocation so teardown can release each one
// exactly once, newest first.
type ledger struct {
	entries []entry
}

func (l *ledger) geometry(name string, g *Geometry) *Geometry {
	l.entries = append(l.entries, entry{name, g})
	return g
}

func (l *ledger) material(m *Material) *Material {
	l.entries = append(l.entries, entry{m.Name, m})
	return m
}

func (l *ledger) Len() int { return len(l.entries) }

// drain returns the entries newest first and empties the ledger.
func (l *ledger) drain() []entry {
	out := make([]entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	l.entries = nil
	return out
}
