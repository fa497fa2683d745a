package locomotion

const (
	// SteepNormalFloor is the lowest vertical normal component still treated as a steep contact.
	// Anything below it overhangs the body and is ignored.
	SteepNormalFloor = float32(-0.01)

	// SnapMaxStepsSinceGrounded is the number of steps a body may have been off the ground and
	// still be snapped back onto it.
	SnapMaxStepsSinceGrounded = 1
	// SnapMinStepsSinceJump is the number of steps after a jump during which snapping is disabled,
	// so that the probe cannot cancel the jump.
	SnapMinStepsSinceJump = 2
	// JumpPhaseResetSteps is the number of steps that must pass after a jump before touching the
	// ground resets the jump phase.
	JumpPhaseResetSteps = 1

	// AllLayers is a probe mask that matches every collision layer.
	AllLayers = ^uint32(0)

	DefaultMaxSpeed           = float32(10)
	DefaultMaxAcceleration    = float32(10)
	DefaultMaxDeacceleration  = float32(1)
	DefaultMaxAirAcceleration = float32(1)
	DefaultMaxGroundAngle     = float32(25)
	DefaultJumpHeight         = float32(2)
	DefaultMaxAirJumps        = 0
	DefaultMaxSnapSpeed       = float32(100)
	DefaultProbeDistance      = float32(1)

	MaxSpeedLimit        = float32(100)
	MaxAccelerationLimit = float32(100)
	MaxGroundAngleLimit  = float32(90)
	MaxJumpHeightLimit   = float32(10)
	MaxAirJumpsLimit     = 5
)
