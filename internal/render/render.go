// Package render is the thin raylib adapter. The engine packages compute pure
// state (pose, opacities, scales); this package applies it to raylib's camera
// and draws the scene. Nothing outside render and the binaries imports raylib.
package render

import (
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"armoury-showroom/internal/geom"
	"armoury-showroom/internal/locomotion"
	"armoury-showroom/internal/sceneindex"
	"armoury-showroom/internal/scenegraph"
)

const cameraFovy = 60

var glowColor = rl.NewColor(255, 211, 106, 255) // warm gold, matches the web glow

func toRL(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// NewCamera returns a perspective camera ready for ApplyPose.
func NewCamera() rl.Camera3D {
	cam := rl.Camera3D{}
	cam.Up = rl.NewVector3(0, 1, 0)
	cam.Fovy = cameraFovy
	cam.Projection = rl.CameraPerspective
	return cam
}

// ApplyPose writes a locomotion pose onto the raylib camera: position, a
// target one unit along the view direction, and an up vector carrying the
// head-bob roll.
func ApplyPose(cam *rl.Camera3D, pose locomotion.Pose) {
	forward := geom.Vec3{Z: -1}.RotateYXZ(pose.Yaw, pose.Pitch, pose.Roll)
	up := geom.Vec3{Y: 1}.RotateYXZ(pose.Yaw, pose.Pitch, pose.Roll)
	cam.Position = toRL(pose.Position)
	cam.Target = toRL(pose.Position.Add(forward))
	cam.Up = toRL(up)
}

// ReadInput maps held keys to the controller's input flags. WASD walks,
// arrows look.
func ReadInput() locomotion.InputState {
	return locomotion.InputState{
		Forward:   rl.IsKeyDown(rl.KeyW),
		Back:      rl.IsKeyDown(rl.KeyS),
		Left:      rl.IsKeyDown(rl.KeyA),
		Right:     rl.IsKeyDown(rl.KeyD),
		YawLeft:   rl.IsKeyDown(rl.KeyLeft),
		YawRight:  rl.IsKeyDown(rl.KeyRight),
		PitchUp:   rl.IsKeyDown(rl.KeyUp),
		PitchDown: rl.IsKeyDown(rl.KeyDown),
	}
}

// Pick casts the mouse ray into the scene and returns the nearest mesh node
// hit, or nil. Intersections behind the nearest are ignored. Cosmetic overlay
// nodes are excluded so a glow shell never shadows its artifact.
func Pick(cam rl.Camera3D, mouse rl.Vector2, root *scenegraph.Node) *scenegraph.Node {
	rlRay := rl.GetMouseRay(mouse, cam)
	ray := geom.Ray{
		Origin: geom.Vec3{X: float64(rlRay.Position.X), Y: float64(rlRay.Position.Y), Z: float64(rlRay.Position.Z)},
		Dir:    geom.Vec3{X: float64(rlRay.Direction.X), Y: float64(rlRay.Direction.Y), Z: float64(rlRay.Direction.Z)},
	}

	var nearest *scenegraph.Node
	nearestDist := math.Inf(1)
	root.Walk(func(n *scenegraph.Node) bool {
		if n.Name == scenegraph.AidsNodeName || strings.HasPrefix(n.Name, scenegraph.GlowPrefix) {
			return false
		}
		if n.Mesh == nil || !n.Visible {
			return true
		}
		for _, t := range n.WorldTriangles() {
			if d, ok := ray.IntersectTriangle(t); ok && d < nearestDist {
				nearestDist = d
				nearest = n
			}
		}
		return true
	})
	return nearest
}

// DrawScene renders the showroom: solid geometry, glow shells, and hover
// markers, between BeginMode3D and EndMode3D.
func DrawScene(cam rl.Camera3D, root *scenegraph.Node, ix *sceneindex.Index) {
	rl.BeginMode3D(cam)

	root.Walk(func(n *scenegraph.Node) bool {
		if n.Name == scenegraph.AidsNodeName {
			return false
		}
		if n.Mesh == nil || !n.Visible {
			return true
		}
		if strings.HasPrefix(n.Name, scenegraph.GlowPrefix) {
			return true // glows are drawn per aid below, with their opacity
		}
		drawMesh(n, rl.NewColor(120, 110, 95, 255))
		return true
	})

	for _, aid := range ix.Artifacts {
		for _, glow := range aid.Glows {
			c := glowColor
			c.A = uint8(geom.Clamp(aid.GlowOpacity, 0, 1) * 255)
			drawMesh(glow, c)
		}
		if aid.Marker != nil {
			c := rl.White
			c.A = uint8(geom.Clamp(aid.MarkerOpacity, 0, 1) * 255)
			rl.DrawSphereEx(toRL(aid.Marker.WorldPosition()), float32(aid.MarkerScale), 8, 8, c)
		}
	}

	rl.EndMode3D()
}

func drawMesh(n *scenegraph.Node, color rl.Color) {
	for _, t := range n.WorldTriangles() {
		rl.DrawTriangle3D(toRL(t[0]), toRL(t[1]), toRL(t[2]), color)
	}
}
