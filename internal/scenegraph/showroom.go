package scenegraph

import (
	"fmt"

	"armoury-showroom/internal/geom"
)

// ShowroomOptions controls the built-in hall layout. Width/Depth are the floor
// size in world units; WallHeight only affects the outer shell geometry.
type ShowroomOptions struct {
	Width      float64
	Depth      float64
	WallHeight float64
	Artifacts  int
}

// DefaultShowroomOptions returns the hall the walkthrough uses: a 12x18 floor
// with the ten demo artifacts on pedestals along the walls.
func DefaultShowroomOptions() ShowroomOptions {
	return ShowroomOptions{
		Width:      12,
		Depth:      18,
		WallHeight: 3.5,
		Artifacts:  10,
	}
}

// Showroom builds the demo hall in code: a walk-mesh floor quad, a spawn
// marker near the entrance, and artifact_NN nodes nested under per-showcase
// group nodes the way an authoring tool would export them. It is the Go-side
// stand-in for the GLB the web client loads through the asset proxy.
func Showroom(opts ShowroomOptions) *Node {
	if opts.Width <= 0 || opts.Depth <= 0 {
		opts = DefaultShowroomOptions()
	}
	if opts.Artifacts <= 0 || opts.Artifacts > 10 {
		opts.Artifacts = 10
	}

	root := NewNode("armoury")

	// Walk-mesh: slightly inset from the walls so the floor probe fails right
	// at the edge instead of letting the camera touch the shell.
	walk := NewNode("walkmesh")
	walk.Mesh = QuadMesh(opts.Width-1.0, opts.Depth-1.0)
	walk.Visible = false
	root.Add(walk)

	floor := NewNode("floor")
	floor.Mesh = QuadMesh(opts.Width, opts.Depth)
	root.Add(floor)

	shell := NewNode("shell")
	shell.Mesh = BoxMesh(opts.Width, opts.WallHeight, opts.Depth)
	shell.Position = geom.Vec3{Y: opts.WallHeight / 2}
	root.Add(shell)

	spawn := NewNode("player_spawn")
	spawn.Position = geom.Vec3{Z: opts.Depth/2 - 2}
	spawn.Yaw = 0 // facing -Z, into the hall
	root.Add(spawn)

	// Showcases alternate along the long walls. Each artifact mesh sits two
	// group levels under its artifact_NN node, mirroring exporter nesting.
	for i := 0; i < opts.Artifacts; i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1.0
		}
		row := float64(i/2) - float64((opts.Artifacts-1)/2)/2

		showcase := NewNode(fmt.Sprintf("showcase_%02d", i+1))
		showcase.Position = geom.Vec3{
			X: side * (opts.Width/2 - 1.2),
			Z: row * 3.0,
		}
		root.Add(showcase)

		pedestal := NewNode(fmt.Sprintf("pedestal_%02d", i+1))
		pedestal.Mesh = BoxMesh(0.6, 1.0, 0.6)
		pedestal.Position = geom.Vec3{Y: 0.5}
		showcase.Add(pedestal)

		artifact := NewNode(fmt.Sprintf("artifact_%02d", i+1))
		artifact.Position = geom.Vec3{Y: 1.2}
		showcase.Add(artifact)

		// Child names deliberately do not carry the artifact_ prefix; only the
		// registered ancestor may resolve.
		group := NewNode(fmt.Sprintf("group_%02d", i+1))
		artifact.Add(group)

		mesh := NewNode(fmt.Sprintf("mesh_%02d", i+1))
		mesh.Mesh = BoxMesh(0.35, 0.35, 0.35)
		group.Add(mesh)
	}

	return root
}
