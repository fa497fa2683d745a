package locomotion

import (
	"github.com/oomph-ac/yamato/game"
)

// snapToGround keeps the body on the ground when it briefly loses contact, for example when running
// over the crest of a ramp. It probes downwards for ground and, on a hit, redirects the velocity
// along the surface. Nothing is changed if the probe is not eligible or does not find ground.
func (c *Controller) snapToGround() bool {
	if c.stepsSinceLastGrounded > SnapMaxStepsSinceGrounded || c.stepsSinceLastJump <= SnapMinStepsSinceJump {
		return false
	}
	speed := c.velocity.Len()
	if speed > c.cfg.MaxSnapSpeed {
		c.debugf(true, "snap skipped: speed %.3f > %.3f", speed, c.cfg.MaxSnapSpeed)
		return false
	}

	hit, ok := c.world.Raycast(c.body.Position(), game.Down, c.cfg.ProbeDistance, c.cfg.ProbeMask)
	if !ok {
		c.debugf(true, "snap probe found nothing within %.3f", c.cfg.ProbeDistance)
		return false
	}
	if hit.Normal.Y() < c.minGroundDotProduct {
		c.debugf(true, "snap probe hit steep surface (normal.y=%.4f)", hit.Normal.Y())
		return false
	}

	c.contacts.groundCount = 1
	c.contacts.groundNormal = hit.Normal
	if dot := c.velocity.Dot(hit.Normal); dot > 0 {
		c.velocity = game.Normalized(game.ProjectOnPlane(c.velocity, hit.Normal)).Mul(speed)
	}
	c.debugf(true, "snapped to ground at distance %.3f", hit.Distance)
	return true
}
