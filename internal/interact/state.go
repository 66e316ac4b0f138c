package interact

import "armoury-showroom/internal/catalog"

// Mode is the presentation state: Idle, Hovering an artifact, or a product
// modal open. At most one modal at a time; clicks are not hit-tested while a
// modal covers the canvas.
type Mode int

const (
	Idle Mode = iota
	Hovering
	ModalOpen
)

// State tracks which artifact is hovered/selected and whether navigation input
// should be suppressed. Single-threaded; mutated only from the event loop.
type State struct {
	mode Mode
	key  string
}

func (s *State) Mode() Mode {
	return s.mode
}

// Key is the artifact under the pointer (Hovering) or shown in the modal
// (ModalOpen); "" when Idle.
func (s *State) Key() string {
	return s.key
}

// NavEnabled reports whether the locomotion controller should process input.
// Navigation is suspended for the whole lifetime of a modal.
func (s *State) NavEnabled() bool {
	return s.mode != ModalOpen
}

// Hover handles a pointer-move resolution. An empty key is a pointer-out.
// Ignored while a modal is open.
func (s *State) Hover(key string) {
	if s.mode == ModalOpen {
		return
	}
	if key == "" {
		s.mode = Idle
		s.key = ""
		return
	}
	s.mode = Hovering
	s.key = key
}

// Click handles a discrete selection. Only artifacts with a catalog entry open
// a modal; an artifact mesh without one is inert. Returns true when a modal
// opened.
func (s *State) Click(key string) bool {
	if s.mode == ModalOpen {
		return false
	}
	if key == "" || !catalog.Has(key) {
		return false
	}
	s.mode = ModalOpen
	s.key = key
	return true
}

// Close dismisses the modal (explicit close or add-to-cart) and returns to
// Idle. No-op outside ModalOpen.
func (s *State) Close() {
	if s.mode != ModalOpen {
		return
	}
	s.mode = Idle
	s.key = ""
}
