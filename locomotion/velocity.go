package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
)

// adjustVelocity accelerates the velocity towards the desired velocity along the axes of the contact
// plane, so that moving on a slope follows the slope instead of pushing into it.
func (c *Controller) adjustVelocity(dt float32) {
	normal := c.contacts.groundNormal
	xAxis := game.Normalized(game.ProjectOnPlane(game.Right, normal))
	zAxis := game.Normalized(game.ProjectOnPlane(game.Forward, normal))

	currentX, currentZ := c.velocity.Dot(xAxis), c.velocity.Dot(zAxis)

	acceleration := c.cfg.MaxAirAcceleration
	if c.contacts.onGround() {
		acceleration = c.cfg.MaxAcceleration
	}
	maxSpeedChange := acceleration * dt
	newX := game.MoveTowards(currentX, c.desiredVelocity.X(), maxSpeedChange)
	newZ := game.MoveTowards(currentZ, c.desiredVelocity.Z(), maxSpeedChange)

	adjusted := c.velocity.Add(xAxis.Mul(newX - currentX)).Add(zAxis.Mul(newZ - currentZ))
	c.velocity = limitDeceleration(c.velocity, adjusted, c.cfg.MaxDeacceleration*dt)
	c.debugf(newX != currentX || newZ != currentZ, "adjusted velocity: x %.3f->%.3f z %.3f->%.3f (accel=%.2f)", currentX, newX, currentZ, newZ, acceleration)
}

// limitDeceleration limits how much the speed along the direction of current may drop when moving to
// next. If the drop is too large, the whole change is scaled down until the drop equals maxDrop. Each
// axis then changes by no more than it would have without the limit, and the direction of the change
// stays the same. Speeding up passes through untouched.
func limitDeceleration(current, next mgl32.Vec3, maxDrop float32) mgl32.Vec3 {
	direction, ok := game.SafeNormalize(current)
	if !ok {
		return next
	}
	delta := next.Sub(current)
	drop := -delta.Dot(direction)
	if drop <= maxDrop {
		return next
	}
	return current.Add(delta.Mul(maxDrop / drop))
}
