package scene

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/san-kum/shakerlab/internal/geom"
	"github.com/san-kum/shakerlab/internal/oscillator"
	"github.com/san-kum/shakerlab/internal/render"
)

var (
	// ErrContextUnavailable means no drawing surface could be obtained. The
	// rest of the application keeps running with the 3D view disabled.
	ErrContextUnavailable = errors.New("scene: drawing context unavailable")
	ErrDisposed           = errors.New("scene: renderer disposed")
)

// Node names of the arm chain.
const (
	NodeShoulder = "shoulder"
	NodeElbow    = "elbow"
	NodeWrist    = "wrist"
	NodeEffector = "effector"
)

// Fog blends edge colours toward Color between Near and Far view depth.
type Fog struct {
	Color     color.RGBA
	Near, Far float64
}

func (f Fog) Shade(c color.RGBA, depth float64) color.RGBA {
	if f.Far <= f.Near {
		return c
	}
	t := (depth - f.Near) / (f.Far - f.Near)
	if t <= 0 {
		return c
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5) }
	return color.RGBA{mix(c.R, f.Color.R), mix(c.G, f.Color.G), mix(c.B, f.Color.B), c.A}
}

// Light is kept as scene metadata; the wireframe backends shade by depth.
type Light struct {
	Kind      string
	Color     color.RGBA
	Intensity float64
	Position  geom.Vec3
}

type projected struct {
	x0, y0, x1, y1 float64
	depth          float64
	stroke         render.Stroke
}

// Renderer owns the 3D scene of the arm and cable and draws it onto a
// render.Surface.
type Renderer struct {
	Camera *Camera
	Fog    Fog
	Lights []Light

	root                   *Node
	shoulder, elbow, wrist *Node
	effector               *Node
	cable                  *Geometry
	ledger                 ledger
	surface                render.Surface
	width, height          float64
	smooth                 []geom.Vec3
	edges                  []projected
	disposed               bool
}

func New() *Renderer {
	return &Renderer{
		Camera: NewCamera(),
		Fog:    Fog{Color: hex(0xf5efe6), Near: 6, Far: 18},
		Lights: []Light{
			{Kind: "ambient", Color: hex(0xffffff), Intensity: 0.9},
			{Kind: "directional", Color: hex(0xfff2df), Intensity: 1.2, Position: geom.Vec3{X: 4, Y: 6, Z: 3}},
			{Kind: "directional", Color: hex(0xd8f0f0), Intensity: 0.6, Position: geom.Vec3{X: -3, Y: 2, Z: -2}},
		},
	}
}

// Initialize acquires a surface from host and builds the scene graph. It
// fails with an error wrapping ErrContextUnavailable when the host cannot
// produce a surface, or render.ErrNoSurface when the surface is not attached
// or laid out yet and a later call may succeed. Calling it again after
// success does nothing.
func (r *Renderer) Initialize(host render.Host) error {
	if r.disposed {
		return ErrDisposed
	}
	if r.surface != nil {
		return nil
	}
	if host == nil {
		return fmt.Errorf("scene: no host: %w", ErrContextUnavailable)
	}
	s, err := host.Acquire()
	if errors.Is(err, render.ErrNoSurface) {
		return fmt.Errorf("scene: %w", err)
	}
	if err != nil {
		return fmt.Errorf("scene: acquire surface: %w: %w", ErrContextUnavailable, err)
	}
	if s == nil {
		return fmt.Errorf("scene: host returned no surface: %w", ErrContextUnavailable)
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		// not laid out yet
		return fmt.Errorf("scene: surface is %vx%v: %w", w, h, render.ErrNoSurface)
	}

	r.surface = s
	r.setViewport(w, h)
	r.build()
	return nil
}

// Active reports whether the renderer has a surface to draw on.
func (r *Renderer) Active() bool { return r.surface != nil }

func (r *Renderer) Surface() render.Surface { return r.surface }

// Resize follows a container resize. A zero dimension is ignored.
func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	fw, fh := float64(w), float64(h)
	if r.surface != nil {
		if rs, ok := r.surface.(render.Resizer); ok {
			rs.Resize(w, h)
			fw, fh = r.surface.Size()
		}
	}
	r.setViewport(fw, fh)
}

func (r *Renderer) setViewport(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	r.width, r.height = w, h
	r.Camera.Aspect = w / h
}

func (r *Renderer) build() {
	l := &r.ledger
	floorMat := l.material(&Material{Name: "floor", Color: hex(0xf3e7d8), Width: 1})
	baseMat := l.material(&Material{Name: "base", Color: hex(0x3a3d42), Width: 1.5})
	armMat := l.material(&Material{Name: "arm", Color: hex(0xe6b178), Width: 2})
	jointMat := l.material(&Material{Name: "joint", Color: hex(0x1f5055), Width: 1.5})
	effMat := l.material(&Material{Name: "effector", Color: hex(0xe89c5b), Width: 2})
	cableMat := l.material(&Material{Name: "cable", Color: hex(0x2b6f77), Width: 2})

	mesh := func(name string, pos geom.Vec3, g *Geometry, m *Material) *Node {
		n := NewNode(name, pos)
		n.Mesh = &Mesh{Geometry: l.geometry(name, g), Material: m}
		return n
	}

	r.effector = mesh(NodeEffector, geom.Vec3{}, Sphere(0.09, 18), effMat)
	r.wrist = NewNode(NodeWrist, geom.Vec3{Y: oscillator.ForearmLength}).Add(r.effector)
	r.elbow = NewNode(NodeElbow, geom.Vec3{Y: oscillator.UpperArmLength}).Add(
		mesh("elbow joint", geom.Vec3{}, Sphere(0.12, 20), jointMat),
		mesh("forearm", geom.Vec3{Y: oscillator.ForearmLength / 2}, Box(0.2, oscillator.ForearmLength, 0.2), armMat),
		r.wrist,
	)
	r.shoulder = NewNode(NodeShoulder, oscillator.ShoulderPivot).Add(
		mesh("shoulder joint", geom.Vec3{}, Sphere(0.14, 20), jointMat),
		mesh("upper arm", geom.Vec3{Y: oscillator.UpperArmLength / 2}, Box(0.22, oscillator.UpperArmLength, 0.22), armMat),
		r.elbow,
	)
	arm := NewNode("arm", geom.Vec3{}).Add(
		mesh("base", geom.Vec3{Y: 0.11}, Cylinder(0.6, 0.8, 0.22, 32), baseMat),
		mesh("pedestal", geom.Vec3{Y: 0.65}, Cylinder(0.18, 0.24, 0.9, 32), baseMat),
		r.shoulder,
	)

	r.cable = Polyline(CableDivisions + 1)
	cable := mesh("cable", geom.Vec3{}, r.cable, cableMat)

	r.root = NewNode("scene", geom.Vec3{}).Add(
		mesh("floor", geom.Vec3{}, Grid(20, 20), floorMat),
		arm,
		mesh("anchor", geom.Vec3{X: -1.6, Y: 0.15}, Box(0.2, 0.08, 0.25), jointMat),
		cable,
	)
}

// Pose applies the joint rotations for armAngle and rebuilds the cable from
// its control points.
func (r *Renderer) Pose(armAngle float64, cable []geom.Vec3) {
	if r.root == nil {
		return
	}
	p := oscillator.PoseFor(armAngle)
	r.shoulder.RotZ = p.Shoulder
	r.elbow.RotZ = p.Elbow
	r.wrist.RotZ = p.Wrist

	if len(cable) > 0 {
		r.smooth = CatmullRom(cable, CableDivisions, r.smooth)
		r.cable.SetPoints(r.smooth)
	}
}

// Draw projects every mesh edge and strokes them far to near.
func (r *Renderer) Draw() {
	if r.surface == nil || r.root == nil {
		return
	}
	render.Clear(r.surface)

	r.edges = r.edges[:0]
	r.root.Walk(func(n *Node, t Transform) {
		if n.Mesh == nil {
			return
		}
		g, m := n.Mesh.Geometry, n.Mesh.Material
		for _, e := range g.Edges {
			x0, y0, d0, ok0 := r.Camera.Project(t.Apply(g.Vertices[e[0]]), r.width, r.height)
			x1, y1, d1, ok1 := r.Camera.Project(t.Apply(g.Vertices[e[1]]), r.width, r.height)
			if !ok0 || !ok1 {
				continue
			}
			depth := (d0 + d1) / 2
			r.edges = append(r.edges, projected{
				x0, y0, x1, y1, depth,
				render.Stroke{Color: r.Fog.Shade(m.Color, depth), Width: m.Width},
			})
		}
	})

	sort.SliceStable(r.edges, func(i, j int) bool { return r.edges[i].depth > r.edges[j].depth })
	for _, e := range r.edges {
		r.surface.StrokeLine(e.x0, e.y0, e.x1, e.y1, e.stroke)
	}
}

// RenderFrame poses the scene and draws it.
func (r *Renderer) RenderFrame(armAngle float64, cable []geom.Vec3) {
	r.Pose(armAngle, cable)
	r.Draw()
}

// EffectorWorld returns the world position of the end effector from the
// scene graph, or the zero vector before Initialize.
func (r *Renderer) EffectorWorld() geom.Vec3 {
	if r.effector == nil {
		return geom.Vec3{}
	}
	return r.effector.WorldPosition()
}

func (r *Renderer) Orbit(yaw float64) { r.Camera.Orbit(yaw) }
func (r *Renderer) Zoom(f float64)    { r.Camera.Zoom(f) }

// Root exposes the scene graph for inspection.
func (r *Renderer) Root() *Node { return r.root }

// Dispose releases every recorded geometry and material, newest first, and
// then the surface. It is safe to call more than once and before Initialize.
func (r *Renderer) Dispose() error {
	if r.disposed {
		return nil
	}
	r.disposed = true

	var err error
	for _, e := range r.ledger.drain() {
		if rerr := e.res.Release(); rerr != nil {
			err = multierror.Append(err, fmt.Errorf("release %s: %w", e.name, rerr))
		}
	}
	if rel, ok := r.surface.(render.Releaser); ok {
		if rerr := rel.Release(); rerr != nil {
			err = multierror.Append(err, fmt.Errorf("release surface: %w", rerr))
		}
	}

	r.surface = nil
	r.root = nil
	r.shoulder, r.elbow, r.wrist, r.effector = nil, nil, nil, nil
	r.cable = nil
	return err
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
