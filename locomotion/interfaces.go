package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Body is the rigid body a Controller steers. The integrator that owns the body applies gravity and
// advances its position outside of the controller.
type Body interface {
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
	SetVelocity(v mgl32.Vec3)
}

// PhysicsWorld bridges the collision world for the ground snap probe and the jump launch speed.
type PhysicsWorld interface {
	// Raycast returns the closest surface hit by a ray from origin along direction within
	// maxDistance, only considering colliders on a layer in mask.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask uint32) (RaycastHit, bool)
	// Gravity returns the gravity acceleration of the world.
	Gravity() mgl32.Vec3
}

// InputSpace is a reference frame, such as a camera, that input axes are relative to.
type InputSpace interface {
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
}

// RaycastHit describes the surface hit by a raycast.
type RaycastHit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}
