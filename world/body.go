package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/locomotion"
)

// SphereBody is a dynamic sphere moved by a World. It implements locomotion.Body.
type SphereBody struct {
	position mgl32.Vec3
	velocity mgl32.Vec3
	radius   float32
}

// NewSphereBody creates a sphere body of the radius passed, resting at position.
func NewSphereBody(position mgl32.Vec3, radius float32) *SphereBody {
	return &SphereBody{position: position, radius: radius}
}

func (b *SphereBody) Position() mgl32.Vec3 {
	return b.position
}

// SetPosition teleports the body to pos, keeping its velocity.
func (b *SphereBody) SetPosition(pos mgl32.Vec3) {
	b.position = pos
}

func (b *SphereBody) Velocity() mgl32.Vec3 {
	return b.velocity
}

func (b *SphereBody) SetVelocity(v mgl32.Vec3) {
	b.velocity = v
}

// Radius returns the radius of the sphere.
func (b *SphereBody) Radius() float32 {
	return b.radius
}

// ContactFunc receives the contacts between a body and one collider.
type ContactFunc func(event locomotion.ContactEvent)

type bodyEntry struct {
	body      *SphereBody
	onContact ContactFunc
}
