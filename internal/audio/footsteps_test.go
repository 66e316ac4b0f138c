package audio_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"armoury-showroom/internal/audio"
)

type fakeSink struct {
	unlockErr error
	unlocks   int
	played    []string
	volumes   []float64
}

func (f *fakeSink) Unlock() error {
	f.unlocks++
	return f.unlockErr
}

func (f *fakeSink) Play(name string, volume float64) {
	f.played = append(f.played, name)
	f.volumes = append(f.volumes, volume)
}

func TestStepsDroppedWhileLocked(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	p := audio.NewPlayer(sink)
	assert.False(t, p.Step())
	assert.False(t, p.Step())
	assert.False(t, p.Unlocked())
	assert.Empty(t, sink.played)
}

func TestUnlockRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{unlockErr: errors.New("gesture required")}
	p := audio.NewPlayer(sink)

	p.TryUnlock()
	p.TryUnlock()
	assert.False(t, p.Unlocked())
	assert.Equal(t, 2, sink.unlocks)

	sink.unlockErr = nil
	p.TryUnlock()
	assert.True(t, p.Unlocked())

	// Once unlocked, further attempts never hit the sink again.
	p.TryUnlock()
	assert.Equal(t, 3, sink.unlocks)
}

func TestRoundRobinAndVolume(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	p := audio.NewPlayer(sink)
	p.TryUnlock()

	for i := 0; i < 5; i++ {
		assert.True(t, p.Step())
	}
	assert.Equal(t, []string{
		"sfx/footstep1.mp3",
		"sfx/footstep2.mp3",
		"sfx/footstep3.mp3",
		"sfx/footstep4.mp3",
		"sfx/footstep1.mp3",
	}, sink.played)
	for _, v := range sink.volumes {
		assert.InDelta(t, audio.StepVolume, v, 1e-12)
	}
}
