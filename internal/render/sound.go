package render

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// SoundSink plays footstep files through raylib's audio device. It satisfies
// audio.Sink: Unlock initializes the device (may fail until the platform
// allows it), Play restarts the sound from the top so overlapping triggers
// never queue.
type SoundSink struct {
	sounds map[string]rl.Sound
}

func NewSoundSink() *SoundSink {
	return &SoundSink{sounds: make(map[string]rl.Sound)}
}

// Unlock brings up the audio device. Safe to call repeatedly.
func (s *SoundSink) Unlock() error {
	if rl.IsAudioDeviceReady() {
		return nil
	}
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		return errors.New("audio device not ready")
	}
	return nil
}

// Play loads the sound on first use, then restarts it at the given volume.
// A missing asset file drops the trigger silently; footsteps are cosmetic.
func (s *SoundSink) Play(name string, volume float64) {
	snd, ok := s.sounds[name]
	if !ok {
		if _, err := os.Stat(name); err != nil {
			return
		}
		snd = rl.LoadSound(name)
		s.sounds[name] = snd
	}
	rl.StopSound(snd)
	rl.SetSoundVolume(snd, float32(volume))
	rl.PlaySound(snd)
}

// Close unloads every cached sound and the device.
func (s *SoundSink) Close() {
	for _, snd := range s.sounds {
		rl.UnloadSound(snd)
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}
