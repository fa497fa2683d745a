package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/assert"
	"github.com/oomph-ac/yamato/game"
)

// jump consumes a jump request. It returns how the request was resolved and the velocity added to
// the body.
func (c *Controller) jump() (JumpOutcome, mgl32.Vec3) {
	var (
		direction mgl32.Vec3
		outcome   JumpOutcome
	)
	switch {
	case c.contacts.onGround():
		direction, outcome = c.contacts.groundNormal, JumpOutcomeGround
	case c.contacts.onSteep():
		direction, outcome = game.Normalized(c.contacts.steepNormal), JumpOutcomeSteep
		c.jumpPhase = 0
	case c.cfg.MaxAirJumps > 0 && c.jumpPhase <= c.cfg.MaxAirJumps:
		// Walking off a ledge spends the ground jump.
		if c.jumpPhase == 0 {
			c.jumpPhase = 1
		}
		direction, outcome = c.contacts.groundNormal, JumpOutcomeAir
	default:
		c.debugf(true, "jump dropped: phase %d, max air jumps %d", c.jumpPhase, c.cfg.MaxAirJumps)
		return JumpOutcomeDropped, mgl32.Vec3{}
	}

	c.stepsSinceLastJump = 0
	c.jumpPhase++
	if outcome == JumpOutcomeAir {
		assert.IsTrue(c.jumpPhase <= c.cfg.MaxAirJumps+1, "jump phase %d exceeds %d", c.jumpPhase, c.cfg.MaxAirJumps+1)
	}

	direction, ok := game.SafeNormalize(direction.Add(game.Up))
	if !ok {
		direction = game.Up
	}
	speed := JumpSpeed(c.world.Gravity().Y(), c.cfg.JumpHeight)
	if aligned := c.velocity.Dot(direction); aligned > 0 {
		speed = max(speed-aligned, 0)
	}
	impulse := direction.Mul(speed)
	c.velocity = c.velocity.Add(impulse)
	c.debugf(true, "%s jump (phase=%d, speed=%.3f)", outcome, c.jumpPhase, speed)
	return outcome, impulse
}
