package locomotion

// InputState is the held-key intent read each frame. Two independent flag
// sets: movement (WASD) and look (arrows). Flags are flipped on key edges by
// the host and never cleared by the controller; a held key keeps its intent
// across frames.
type InputState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool

	YawLeft   bool
	YawRight  bool
	PitchUp   bool
	PitchDown bool
}

// yawDir is +1 turning right, -1 turning left, 0 when both or neither.
func (in InputState) yawDir() float64 {
	d := 0.0
	if in.YawRight {
		d++
	}
	if in.YawLeft {
		d--
	}
	return d
}

// pitchDir is +1 looking down, -1 looking up.
func (in InputState) pitchDir() float64 {
	d := 0.0
	if in.PitchDown {
		d++
	}
	if in.PitchUp {
		d--
	}
	return d
}

// wantsMove reports whether any movement key is held.
func (in InputState) wantsMove() bool {
	return in.Forward || in.Back || in.Left || in.Right
}
