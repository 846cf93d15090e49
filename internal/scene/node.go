package scene

import "github.com/san-kum/shakerlab/internal/geom"

// Node is a scene-graph element. Its transform is a translation followed by
// a rotation about Z, relative to its parent. The arm only bends in the XY
// plane, so no other rotation is needed.
type Node struct {
	Name     string
	Position geom.Vec3
	RotZ     float64
	Mesh     *Mesh
	Children []*Node

	parent *Node
}

func NewNode(name string, pos geom.Vec3) *Node {
	return &Node{Name: name, Position: pos}
}

// Add attaches children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

func (n *Node) Parent() *Node { return n.parent }

// Transform places local points in world space.
type Transform struct {
	Origin geom.Vec3
	Angle  float64
}

func (t Transform) Apply(p geom.Vec3) geom.Vec3 {
	return t.Origin.Add(p.RotateZ(t.Angle))
}

func (t Transform) child(n *Node) Transform {
	return Transform{Origin: t.Apply(n.Position), Angle: t.Angle + n.RotZ}
}

// World returns the node's world transform.
func (n *Node) World() Transform {
	if n.parent == nil {
		return Transform{Origin: n.Position, Angle: n.RotZ}
	}
	return n.parent.World().child(n)
}

// WorldPosition is the world location of the node's origin.
func (n *Node) WorldPosition() geom.Vec3 { return n.World().Origin }

// Walk visits n and its descendants depth-first with their world transforms.
func (n *Node) Walk(fn func(*Node, Transform)) {
	n.walk(n.World(), fn)
}

func (n *Node) walk(t Transform, fn func(*Node, Transform)) {
	fn(n, t)
	for _, c := range n.Children {
		c.walk(t.child(c), fn)
	}
}

// Find returns the first descendant named name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}
