package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
)

// ContactPoint is a single point of contact between the body and another collider.
type ContactPoint struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// ContactEvent is delivered by the collision world for every collider touching the body during a
// fixed step, both when the contact begins and while it persists.
type ContactEvent struct {
	Points []ContactPoint
}

// contacts accumulates the contact normals observed between two fixed steps. groundNormal and
// steepNormal are sums until the start of the next step, where they are turned into a single
// representative normal.
type contacts struct {
	groundCount, steepCount   int
	groundNormal, steepNormal mgl32.Vec3
}

func (c *contacts) onGround() bool {
	return c.groundCount > 0
}

func (c *contacts) onSteep() bool {
	return c.steepCount > 0
}

// evaluate classifies a single contact normal as ground, steep or neither.
func (c *contacts) evaluate(normal mgl32.Vec3, minGroundDotProduct float32) {
	if normal.Y() >= minGroundDotProduct {
		c.groundCount++
		c.groundNormal = c.groundNormal.Add(normal)
	} else if normal.Y() > SteepNormalFloor {
		c.steepCount++
		c.steepNormal = c.steepNormal.Add(normal)
	}
}

// promoteSteep turns several steep contacts into a single ground contact when, together, they hold
// the body up, such as when it is wedged in a narrow crevice.
func (c *contacts) promoteSteep(minGroundDotProduct float32) bool {
	if c.steepCount <= 1 {
		return false
	}
	normal, ok := game.SafeNormalize(c.steepNormal)
	if !ok {
		return false
	}
	c.steepNormal = normal
	if normal.Y() < minGroundDotProduct {
		return false
	}
	c.groundCount = 1
	c.groundNormal = normal
	return true
}

func (c *contacts) clear() {
	*c = contacts{}
}
