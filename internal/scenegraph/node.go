// Package scenegraph is a minimal named node tree: the showroom's stand-in for
// the scene produced by a 3D authoring tool. Node names are the only schema the
// rest of the system relies on (artifact_NN, walkmesh, player_spawn).
package scenegraph

import "armoury-showroom/internal/geom"

// Node is one scene object. Position is local to the parent; Yaw is a rotation
// about Y in radians, composed down the tree. Mesh is optional.
type Node struct {
	Name     string
	Position geom.Vec3
	Yaw      float64
	Visible  bool
	Mesh     *Mesh

	parent   *Node
	children []*Node
}

// Mesh is a triangle list in node-local coordinates.
type Mesh struct {
	Triangles []geom.Triangle
}

// NewNode returns a visible node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name, Visible: true}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n. A child can have only one parent; reattaching moves it.
func (n *Node) Add(child *Node) *Node {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Remove detaches child from n. No-op if child is not a direct child.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Walk visits n and every descendant depth-first. Return false from fn to skip
// a node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node in the subtree with the given name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// HasChild reports whether n has a direct child with the given name.
func (n *Node) HasChild(name string) bool {
	for _, c := range n.children {
		if c.Name == name {
			return true
		}
	}
	return false
}

// WorldPosition composes parent translations and yaws down to this node.
func (n *Node) WorldPosition() geom.Vec3 {
	if n.parent == nil {
		return n.Position
	}
	return n.parent.WorldPosition().Add(n.Position.RotateY(n.parent.WorldYaw()))
}

// WorldYaw is the accumulated yaw of this node and its ancestors.
func (n *Node) WorldYaw() float64 {
	if n.parent == nil {
		return n.Yaw
	}
	return n.parent.WorldYaw() + n.Yaw
}

// Forward is the node's facing direction in world space (local -Z, matching the
// camera/spawn convention).
func (n *Node) Forward() geom.Vec3 {
	return geom.Vec3{Z: -1}.RotateY(n.WorldYaw())
}

// WorldTriangles returns the node's own mesh transformed to world space.
func (n *Node) WorldTriangles() []geom.Triangle {
	if n.Mesh == nil {
		return nil
	}
	pos := n.WorldPosition()
	yaw := n.WorldYaw()
	out := make([]geom.Triangle, len(n.Mesh.Triangles))
	for i, t := range n.Mesh.Triangles {
		for j := 0; j < 3; j++ {
			out[i][j] = t[j].RotateY(yaw).Add(pos)
		}
	}
	return out
}

// SubtreeBounds is the AABB of all mesh geometry under n (inclusive), in world
// space. Nodes without meshes contribute their world position so empties like
// markers still land inside the box.
func SubtreeBounds(n *Node) geom.Box3 {
	box := geom.EmptyBox()
	n.Walk(func(node *Node) bool {
		if node.Mesh == nil {
			box = box.ExpandByPoint(node.WorldPosition())
			return true
		}
		for _, t := range node.WorldTriangles() {
			for _, v := range t {
				box = box.ExpandByPoint(v)
			}
		}
		return true
	})
	return box
}
