package game

import "github.com/go-gl/mathgl/mgl32"

// World axes. Y is up, Z is forward and X is right.
var (
	Up      = mgl32.Vec3{0, 1, 0}
	Down    = mgl32.Vec3{0, -1, 0}
	Right   = mgl32.Vec3{1, 0, 0}
	Forward = mgl32.Vec3{0, 0, 1}
)

const (
	// DefaultGravity is the vertical gravity acceleration of a default world, in m/s².
	DefaultGravity = float32(-9.81)
	// NormalizeEpsilon is the smallest vector length that is still normalized. Shorter vectors have
	// no meaningful direction.
	NormalizeEpsilon = float32(1e-5)
)
