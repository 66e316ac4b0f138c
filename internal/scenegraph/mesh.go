package scenegraph

import (
	"math"

	"armoury-showroom/internal/geom"
)

// QuadMesh is a flat rectangle on the XZ plane centered on the node origin,
// two triangles. Used for floors and walk-meshes.
func QuadMesh(width, depth float64) *Mesh {
	hw, hd := width/2, depth/2
	a := geom.Vec3{X: -hw, Z: -hd}
	b := geom.Vec3{X: hw, Z: -hd}
	c := geom.Vec3{X: hw, Z: hd}
	d := geom.Vec3{X: -hw, Z: hd}
	return &Mesh{Triangles: []geom.Triangle{{a, b, c}, {a, c, d}}}
}

// BoxMesh is an axis-aligned box centered on the node origin, 12 triangles.
func BoxMesh(sx, sy, sz float64) *Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	v := func(x, y, z float64) geom.Vec3 {
		return geom.Vec3{X: x * hx, Y: y * hy, Z: z * hz}
	}
	// corners: 0..7, bit 0 = +x, bit 1 = +y, bit 2 = +z
	corners := [8]geom.Vec3{
		v(-1, -1, -1), v(1, -1, -1), v(-1, 1, -1), v(1, 1, -1),
		v(-1, -1, 1), v(1, -1, 1), v(-1, 1, 1), v(1, 1, 1),
	}
	quads := [6][4]int{
		{0, 2, 3, 1}, // -z
		{4, 5, 7, 6}, // +z
		{0, 4, 6, 2}, // -x
		{1, 3, 7, 5}, // +x
		{0, 1, 5, 4}, // -y
		{2, 6, 7, 3}, // +y
	}
	m := &Mesh{Triangles: make([]geom.Triangle, 0, 12)}
	for _, q := range quads {
		m.Triangles = append(m.Triangles,
			geom.Triangle{corners[q[0]], corners[q[1]], corners[q[2]]},
			geom.Triangle{corners[q[0]], corners[q[2]], corners[q[3]]},
		)
	}
	return m
}

// CloneMesh returns a copy of the mesh scaled about the node origin. Used for
// glow shells drawn slightly larger than their source.
func CloneMesh(m *Mesh, scale float64) *Mesh {
	out := &Mesh{Triangles: make([]geom.Triangle, len(m.Triangles))}
	for i, t := range m.Triangles {
		for j := 0; j < 3; j++ {
			out.Triangles[i][j] = t[j].Scale(scale)
		}
	}
	return out
}

// WalkSurface caches a walk-mesh's world triangles for downward floor probes.
type WalkSurface struct {
	tris []geom.Triangle
}

// NewWalkSurface snapshots the node's subtree geometry. The walk-mesh never
// moves, so the snapshot is taken once per scene load.
func NewWalkSurface(n *Node) *WalkSurface {
	var tris []geom.Triangle
	n.Walk(func(node *Node) bool {
		tris = append(tris, node.WorldTriangles()...)
		return true
	})
	return &WalkSurface{tris: tris}
}

// probeHeight is how far above the camera position the floor ray starts.
const probeHeight = 2.0

// FloorUnder reports whether anything of the walk surface lies below the given
// camera position. Presence test only; the hit height is ignored.
func (w *WalkSurface) FloorUnder(pos geom.Vec3) bool {
	from := geom.Vec3{X: pos.X, Y: pos.Y + probeHeight, Z: pos.Z}
	return geom.Down(from).IntersectAny(w.tris, math.Inf(1))
}
