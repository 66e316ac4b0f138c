// Package sceneindex walks the loaded scene once and builds the typed registry
// the rest of the system works from: artifact names, their cosmetic hover aids,
// the walk-mesh, the inset scene bounds, and the spawn pose. Node-name string
// matching happens here and in the interaction resolver only; everything else
// goes through the index.
package sceneindex

import (
	"math"
	"strings"

	"armoury-showroom/internal/geom"
	"armoury-showroom/internal/scenegraph"
)

// boundsMargin insets the scene bounds on X and Z so the camera stays off the
// outer walls. The bounds are a clamp, not a collision system.
const boundsMargin = 0.3

// Glow/marker presentation constants, matching the web showroom.
const (
	glowBaseOpacity  = 0.18
	glowHoverOpacity = 0.6
	glowPulseAmp     = 0.18
	glowPulseRate    = 6.0
	glowShellScale   = 1.02

	markerBaseOpacity  = 0.55
	markerHoverOpacity = 0.95
	markerFlickerAmp   = 0.08
	markerBreatheAmp   = 0.06
	markerBreatheRate  = 3.0
	markerBreathePhase = 1.7
	markerHoverBump    = 1.25

	markerMinLift   = 0.25
	markerLiftFrac  = 0.55
	markerMinScale  = 0.18
	markerMaxScale  = 0.45
	markerScaleFrac = 0.1
)

// Spawn is the initial camera pose anchor from the player_spawn node.
type Spawn struct {
	Position geom.Vec3
	Yaw      float64
}

// Aid bundles one artifact's cosmetic nodes plus their animated presentation
// values. The render adapter reads the values; it never re-derives them.
type Aid struct {
	Key    string
	Marker *scenegraph.Node
	Glows  []*scenegraph.Node

	MarkerBaseScale float64
	MarkerScale     float64
	MarkerOpacity   float64
	GlowOpacity     float64
}

// Index is the product of one scene walk. Immutable topology; only the aid
// presentation values change per frame.
type Index struct {
	Root      *scenegraph.Node
	Artifacts map[string]*Aid
	WalkMesh  *scenegraph.Node
	Walk      *scenegraph.WalkSurface
	Bounds    geom.Box3
	Spawn     *Spawn

	hovered string
}

// Build indexes the scene. Rerunning on the same root is idempotent: the aids
// container node guards overlay attachment, so no glow or marker is ever
// duplicated. Missing walkmesh or spawn markers degrade silently (permissive
// floor mode, default pose).
func Build(root *scenegraph.Node) *Index {
	ix := &Index{
		Root:      root,
		Artifacts: make(map[string]*Aid),
	}

	if wm := root.Find(scenegraph.WalkMeshName); wm != nil {
		wm.Visible = false
		ix.WalkMesh = wm
		ix.Walk = scenegraph.NewWalkSurface(wm)
	}

	ix.Bounds = scenegraph.SubtreeBounds(root).InsetXZ(boundsMargin)

	if sp := root.Find(scenegraph.SpawnName); sp != nil {
		ix.Spawn = &Spawn{Position: sp.WorldPosition(), Yaw: sp.WorldYaw()}
	}

	ix.buildAids()
	return ix
}

// buildAids attaches one marker sprite and one glow shell per artifact mesh,
// all under a single container so a rebuild can detect prior work.
func (ix *Index) buildAids() {
	var aids *scenegraph.Node
	built := false
	for _, c := range ix.Root.Children() {
		if c.Name == scenegraph.AidsNodeName {
			aids = c
			built = true
			break
		}
	}
	if aids == nil {
		aids = scenegraph.NewNode(scenegraph.AidsNodeName)
		ix.Root.Add(aids)
	}

	ix.Root.Walk(func(n *scenegraph.Node) bool {
		if strings.HasPrefix(n.Name, "__") {
			return false // never descend into cosmetic overlays
		}
		if !strings.HasPrefix(n.Name, scenegraph.ArtifactPrefix) {
			return true
		}
		ix.Artifacts[n.Name] = ix.indexArtifact(n, aids, built)
		return true
	})
}

func (ix *Index) indexArtifact(root *scenegraph.Node, aids *scenegraph.Node, built bool) *Aid {
	aid := &Aid{
		Key:         root.Name,
		GlowOpacity: glowBaseOpacity,
	}

	// Glow shells: one per source mesh, kept as a child of that mesh so it
	// follows any future transform.
	root.Walk(func(n *scenegraph.Node) bool {
		if strings.HasPrefix(n.Name, scenegraph.GlowPrefix) {
			return false
		}
		if n.Mesh == nil {
			return true
		}
		glowName := scenegraph.GlowPrefix + n.Name
		var glow *scenegraph.Node
		for _, c := range n.Children() {
			if c.Name == glowName {
				glow = c
				break
			}
		}
		if glow == nil {
			glow = scenegraph.NewNode(glowName)
			glow.Mesh = scenegraph.CloneMesh(n.Mesh, glowShellScale)
			n.Add(glow)
		}
		aid.Glows = append(aid.Glows, glow)
		return true
	})

	// Marker sprite above the artifact's bounding box. The box excludes the
	// overlays attached above, so a rebuild lands on the same values.
	box := artifactBounds(root)
	markerName := scenegraph.MarkerPrefix + root.Name
	var marker *scenegraph.Node
	if built {
		marker = aids.Find(markerName)
	}
	if marker == nil {
		center := box.Center()
		size := box.Size()
		marker = scenegraph.NewNode(markerName)
		marker.Position = geom.Vec3{
			X: center.X,
			Y: center.Y + math.Max(markerMinLift, size.Y*markerLiftFrac),
			Z: center.Z,
		}
		aids.Add(marker)
	}
	aid.Marker = marker
	aid.MarkerBaseScale = geom.Clamp(box.Size().Length()*markerScaleFrac, markerMinScale, markerMaxScale)
	aid.MarkerScale = aid.MarkerBaseScale
	aid.MarkerOpacity = markerBaseOpacity
	return aid
}

// artifactBounds is the AABB of the artifact's own geometry, skipping the
// __-prefixed cosmetic subtrees a prior build may have attached.
func artifactBounds(n *scenegraph.Node) geom.Box3 {
	box := geom.EmptyBox()
	n.Walk(func(node *scenegraph.Node) bool {
		if strings.HasPrefix(node.Name, "__") {
			return false
		}
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

// Names returns the indexed artifact names, order unspecified.
func (ix *Index) Names() []string {
	out := make([]string, 0, len(ix.Artifacts))
	for k := range ix.Artifacts {
		out = append(out, k)
	}
	return out
}

// SetHover switches the highlighted artifact; "" clears it.
func (ix *Index) SetHover(key string) {
	ix.hovered = key
	for k, aid := range ix.Artifacts {
		if k == key {
			aid.GlowOpacity = glowHoverOpacity
			aid.MarkerOpacity = markerHoverOpacity
		} else {
			aid.GlowOpacity = glowBaseOpacity
			aid.MarkerOpacity = markerBaseOpacity
		}
	}
}

// Animate advances the cosmetic pulse/breathe values to wall-clock time t.
func (ix *Index) Animate(t float64) {
	for k, aid := range ix.Artifacts {
		hovered := k == ix.hovered

		base := markerBaseOpacity
		bump := 1.0
		if hovered {
			base = markerHoverOpacity
			bump = markerHoverBump
		}
		aid.MarkerOpacity = geom.Clamp(base+markerFlickerAmp*math.Sin(t*markerBreatheRate), 0, 1)
		breathe := 1.0 + markerBreatheAmp*math.Sin(t*markerBreatheRate+markerBreathePhase)
		aid.MarkerScale = aid.MarkerBaseScale * bump * breathe

		if hovered {
			aid.GlowOpacity = glowHoverOpacity + glowPulseAmp*math.Sin(t*glowPulseRate)
		} else {
			aid.GlowOpacity = glowBaseOpacity
		}
	}
}
