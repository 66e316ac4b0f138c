// Package interact resolves pointer hits back to artifact identifiers and
// tracks the hover/selection state that gates the rest of the UI.
package interact

import (
	"strings"

	"armoury-showroom/internal/scenegraph"
)

// maxAncestorWalk bounds the upward walk from a hit mesh to its artifact root.
// Exporters nest meshes arbitrarily deep inside grouping nodes; the bound is a
// safety valve against malformed scenes, not a performance knob.
const maxAncestorWalk = 10

// Resolve walks the ancestor chain from the topmost ray hit upward, at most
// maxAncestorWalk steps, and returns the first node name with the artifact
// prefix, or "" when the bound is exhausted without a match.
func Resolve(hit *scenegraph.Node) string {
	cur := hit
	for i := 0; i < maxAncestorWalk && cur != nil; i++ {
		if strings.HasPrefix(cur.Name, scenegraph.ArtifactPrefix) {
			return cur.Name
		}
		cur = cur.Parent()
	}
	return ""
}
