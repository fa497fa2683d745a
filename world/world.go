package world

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/sasha-s/go-deadlock"
)

// World is a small collision world of static colliders and dynamic spheres. It integrates gravity,
// resolves penetration and reports contacts, and serves raycasts for ground probes.
type World struct {
	gravity   mgl32.Vec3
	colliders []Collider
	bodies    []bodyEntry

	deadlock.RWMutex
}

// New creates an empty world with the gravity passed.
func New(gravity mgl32.Vec3) *World {
	return &World{gravity: gravity}
}

// Gravity returns the gravity acceleration of the world.
func (w *World) Gravity() mgl32.Vec3 {
	return w.gravity
}

// AddCollider adds static colliders to the world.
func (w *World) AddCollider(colliders ...Collider) {
	w.Lock()
	defer w.Unlock()
	w.colliders = append(w.colliders, colliders...)
}

// Colliders returns the static colliders of the world.
func (w *World) Colliders() []Collider {
	w.RLock()
	defer w.RUnlock()
	return slices.Clone(w.colliders)
}

// AddBody adds a body to the world. onContact, if not nil, is called once per touching collider on
// every Step.
func (w *World) AddBody(body *SphereBody, onContact ContactFunc) {
	w.Lock()
	defer w.Unlock()
	w.bodies = append(w.bodies, bodyEntry{body: body, onContact: onContact})
}

// RemoveBody removes a body from the world. It returns false if the body was not in the world.
func (w *World) RemoveBody(body *SphereBody) bool {
	w.Lock()
	defer w.Unlock()
	for i, e := range w.bodies {
		if e.body == body {
			w.bodies = slices.Delete(w.bodies, i, i+1)
			return true
		}
	}
	return false
}

// Raycast returns the closest hit of a ray against the colliders on a layer in mask.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask uint32) (locomotion.RaycastHit, bool) {
	dir, ok := game.SafeNormalize(direction)
	if !ok || maxDistance <= 0 {
		return locomotion.RaycastHit{}, false
	}

	w.RLock()
	defer w.RUnlock()

	var (
		closest locomotion.RaycastHit
		found   bool
	)
	closest.Distance = math.MaxFloat32
	for _, c := range w.colliders {
		if c.Layer()&mask == 0 {
			continue
		}
		if hit, ok := c.Raycast(origin, dir, maxDistance); ok && hit.Distance < closest.Distance {
			closest, found = hit, true
		}
	}
	return closest, found
}

// Step advances every body by dt seconds. Bodies are accelerated by gravity and moved, then pushed
// out of the colliders they penetrate. The velocity into a surface is removed, and a contact event
// is delivered for every collider the body touches after the step.
func (w *World) Step(dt float32) {
	w.RLock()
	defer w.RUnlock()

	for _, e := range w.bodies {
		b := e.body
		b.velocity = b.velocity.Add(w.gravity.Mul(dt))
		b.position = b.position.Add(b.velocity.Mul(dt))

		var events []locomotion.ContactEvent
		for _, c := range w.colliders {
			point, depth, ok := c.Contact(b.position, b.radius)
			if !ok {
				continue
			}
			if depth > 0 {
				b.position = b.position.Add(point.Normal.Mul(depth))
			}
			if inward := b.velocity.Dot(point.Normal); inward < 0 {
				b.velocity = b.velocity.Sub(point.Normal.Mul(inward))
			}
			events = append(events, locomotion.ContactEvent{Points: []locomotion.ContactPoint{point}})
		}
		if e.onContact != nil {
			for _, ev := range events {
				e.onContact(ev)
			}
		}
	}
}
