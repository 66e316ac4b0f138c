// Package audio plays the footstep sounds. Playback is an explicit two-state
// resource: Locked until the host's audio device is unlocked by a qualifying
// user interaction, then fire-and-forget.
package audio

// StepVolume matches the quiet mix the showroom uses for footfalls.
const StepVolume = 0.22

// stepSounds is the fixed round-robin rotation.
var stepSounds = []string{
	"sfx/footstep1.mp3",
	"sfx/footstep2.mp3",
	"sfx/footstep3.mp3",
	"sfx/footstep4.mp3",
}

// Sink is the playback backend. Play restarts the named sound from the top if
// it is already playing; overlap is tolerated, never queued. Unlock may fail
// (autoplay policy); the failure is silent and retried later.
type Sink interface {
	Unlock() error
	Play(name string, volume float64)
}

// Player is the footstep resource. Zero value is unusable; use NewPlayer.
type Player struct {
	sink     Sink
	unlocked bool
	idx      int
}

func NewPlayer(sink Sink) *Player {
	return &Player{sink: sink}
}

// Unlocked reports whether playback is allowed yet.
func (p *Player) Unlocked() bool {
	return p.unlocked
}

// TryUnlock attempts the unlock probe. Call it from every qualifying input
// event until it succeeds; a failure is silent and the next interaction
// retries.
func (p *Player) TryUnlock() {
	if p.unlocked {
		return
	}
	if err := p.sink.Unlock(); err == nil {
		p.unlocked = true
	}
}

// Step plays the next footstep in rotation and reports whether it played.
// While locked the trigger is dropped and false is returned, leaving the
// caller's cadence unconsumed.
func (p *Player) Step() bool {
	if !p.unlocked {
		return false
	}
	p.sink.Play(stepSounds[p.idx%len(stepSounds)], StepVolume)
	p.idx++
	return true
}
