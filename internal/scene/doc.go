// Package scene draws the robotic arm and the shaken cable as a perspective
// wireframe.
//
// A Renderer owns a small scene graph (floor grid, base, pedestal, the
// shoulder/elbow/wrist chain, the cable anchor and the cable itself). Every
// geometry and material it creates is recorded in an allocation ledger so
// that Dispose can release each exactly once. Edges are projected through a
// Camera, depth sorted and stroked onto any render.Surface, so the same
// renderer serves the terminal canvas, the ebiten window and SVG export.
package scene
