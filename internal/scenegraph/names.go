package scenegraph

// Node-name conventions. The scene author marks special objects by name; these
// exact, case-sensitive prefixes are the only schema shared with the asset.
const (
	// ArtifactPrefix marks a clickable collectible.
	ArtifactPrefix = "artifact_"
	// WalkMeshName marks the invisible floor collision proxy.
	WalkMeshName = "walkmesh"
	// SpawnName marks the node seeding the initial camera pose.
	SpawnName = "player_spawn"

	// Cosmetic nodes attached by the scene index. The double underscore keeps
	// them outside the artifact-name match.
	GlowPrefix   = "__glow__"
	MarkerPrefix = "__marker__"
	AidsNodeName = "__aids__"
)
