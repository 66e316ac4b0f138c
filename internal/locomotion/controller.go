// Package locomotion is the first-person navigation controller: a pure
// per-frame update of camera pose from held-key input, clamped to the scene
// bounds and validated against the walk-mesh. It owns no rendering objects; a
// thin adapter applies the resulting Pose to the render library's camera.
package locomotion

import (
	"math"

	"armoury-showroom/internal/geom"
)

// EyeHeight is the fixed camera height above the floor. There is no vertical
// terrain following; the walk-mesh check is presence-only.
const EyeHeight = 1.8

// Tuning constants, in world units and radians.
const (
	moveSpeed  = 3.0 // units/s
	yawSpeed   = 1.8 // rad/s
	pitchSpeed = 1.2 // rad/s

	// maxPitch stops the camera short of straight up/down to avoid gimbal flip.
	maxPitch = math.Pi/2 - 0.15

	// dampRate drives head-bob amplitude toward its target and the suspend
	// decay; per-second exponential rate.
	dampRate = 10.0

	// moveEpsilon is the minimum XZ displacement per frame that counts as
	// walking, after clamps and rollbacks.
	moveEpsilon = 0.0005

	bobRate       = 7.5 // phase advance, rad/s, while walking
	bobAmplitude  = 0.035
	rollAmplitude = 0.010
	nodAmplitude  = 0.006
	nodPhase      = 0.7

	// bobGate: the phase accumulator only advances while amplitude is above this.
	bobGate = 0.001

	stepInterval = 0.38 // s between footstep triggers
)

// Pose is the camera state the controller produces. Yaw/pitch are independent
// scalars (YXZ order); Roll is cosmetic head-bob only and is zero whenever the
// controller is suspended.
type Pose struct {
	Position   geom.Vec3
	Yaw, Pitch float64
	Roll       float64
}

// FloorProber validates a proposed horizontal position against the walk-mesh
// by a downward ray. A nil prober means permissive mode: bounds clamping is
// the only floor constraint.
type FloorProber interface {
	FloorUnder(pos geom.Vec3) bool
}

// StepSounder receives footstep triggers. Step reports whether a sound
// actually played; a dropped trigger (audio still locked) does not consume
// the cadence, so the first audible step fires as soon as playback unlocks.
type StepSounder interface {
	Step() bool
}

// Controller holds the navigation state machine (Active/Suspended) and the
// per-frame update. Not safe for concurrent use; everything runs on the one
// event loop.
type Controller struct {
	Pose      Pose
	Suspended bool

	bounds geom.Box3
	floor  FloorProber
	steps  StepSounder

	bobAmount    float64
	bobPhase     float64
	stepCooldown float64
	lastXZ       geom.Vec3
}

// New returns a controller at the given spawn pose. bounds are the inset scene
// bounds; floor and steps may be nil.
func New(spawn Pose, bounds geom.Box3, floor FloorProber, steps StepSounder) *Controller {
	spawn.Position.Y = EyeHeight
	return &Controller{
		Pose:   spawn,
		bounds: bounds,
		floor:  floor,
		steps:  steps,
		lastXZ: spawn.Position,
	}
}

// Step advances the controller by dt seconds. While suspended (modal open) it
// only decays the head-bob toward zero, pins the height and zeroes the roll,
// so resuming never jumps.
func (c *Controller) Step(in InputState, dt float64) {
	if c.Suspended {
		c.bobAmount = geom.Damp(c.bobAmount, 0, dampRate, dt)
		c.Pose.Position.Y = EyeHeight
		c.Pose.Roll = 0
		c.stepCooldown = 0
		return
	}

	// Look.
	c.Pose.Yaw -= in.yawDir() * yawSpeed * dt
	c.Pose.Pitch -= in.pitchDir() * pitchSpeed * dt
	c.Pose.Pitch = geom.Clamp(c.Pose.Pitch, -maxPitch, maxPitch)

	// Movement proposal, with the pre-move position saved for exact rollback.
	prev := c.Pose.Position
	wantsMove := in.wantsMove()
	if wantsMove {
		dir := geom.Vec3{}
		if in.Forward {
			dir.Z -= 1
		}
		if in.Back {
			dir.Z += 1
		}
		if in.Left {
			dir.X -= 1
		}
		if in.Right {
			dir.X += 1
		}
		dir = dir.Normalize().RotateYXZ(c.Pose.Yaw, c.Pose.Pitch, c.Pose.Roll)
		dir.Y = 0
		dir = dir.Normalize()
		c.Pose.Position = c.Pose.Position.Add(dir.Scale(moveSpeed * dt))
	}
	c.Pose.Position.Y = EyeHeight

	// Hard bounds clamp, then floor validation. A miss reverts the whole move;
	// no sliding or partial correction.
	c.Pose.Position = c.bounds.ClampXZ(c.Pose.Position)
	if c.floor != nil && wantsMove {
		if !c.floor.FloorUnder(c.Pose.Position) {
			c.Pose.Position = prev
			c.Pose.Position.Y = EyeHeight
		}
	}

	// Displacement after all clamps/rollbacks decides whether we are walking.
	moved := c.Pose.Position.DistanceToXZ(c.lastXZ)
	c.lastXZ = c.Pose.Position
	moving := moved > moveEpsilon

	// Head-bob: amplitude eases in/out, phase advances only while audible.
	target := 0.0
	if moving {
		target = 1.0
	}
	c.bobAmount = geom.Damp(c.bobAmount, target, dampRate, dt)
	if c.bobAmount > bobGate {
		c.bobPhase += dt * bobRate
	}

	t := c.bobPhase
	bobY := math.Sin(t*2) * bobAmplitude * c.bobAmount
	c.Pose.Roll = math.Sin(t) * rollAmplitude * c.bobAmount
	nod := math.Sin(t*2+nodPhase) * nodAmplitude * c.bobAmount

	c.Pose.Position.Y = EyeHeight + bobY
	c.Pose.Pitch = geom.Clamp(c.Pose.Pitch+nod, -maxPitch, maxPitch)

	// Footstep cadence. Stopping force-resets the cooldown so no stale step
	// fires on the next move.
	c.stepCooldown = math.Max(0, c.stepCooldown-dt)
	if moving {
		if c.stepCooldown == 0 {
			played := true
			if c.steps != nil {
				played = c.steps.Step()
			}
			if played {
				c.stepCooldown = stepInterval
			}
		}
	} else {
		c.stepCooldown = 0
	}
}

// BobAmount exposes the current head-bob amplitude for tests and debug HUDs.
func (c *Controller) BobAmount() float64 {
	return c.bobAmount
}
