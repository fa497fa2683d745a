package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
)

// InputState is a single frame's input sample.
type InputState struct {
	// Move holds the horizontal (X) and vertical (Y) movement axes, each in [-1, 1].
	Move mgl32.Vec2
	// Jump is true on the frame the jump button went down.
	Jump bool
	// Charge is true while the charge button is held. It halts auto-run.
	Charge bool
}

// YawSpace is an InputSpace that only rotates around the vertical axis, such as a follow camera.
type YawSpace struct {
	// Yaw is the heading in degrees. Zero faces +Z.
	Yaw float32
}

func (s YawSpace) Forward() mgl32.Vec3 {
	forward, _ := game.HorizontalBasis(s.Yaw)
	return forward
}

func (s YawSpace) Right() mgl32.Vec3 {
	_, right := game.HorizontalBasis(s.Yaw)
	return right
}
