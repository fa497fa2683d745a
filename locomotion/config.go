package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
)

// Config holds the tunables of a Controller. Values outside of their range are clamped by Validate
// rather than rejected.
type Config struct {
	// MaxSpeed is the speed the controller accelerates towards at full input, in m/s.
	MaxSpeed float32 `toml:"max_speed" yaml:"max_speed"`
	// MaxAcceleration is the acceleration applied while grounded, in m/s².
	MaxAcceleration float32 `toml:"max_acceleration" yaml:"max_acceleration"`
	// MaxDeacceleration caps how fast the speed along the current direction of travel may drop. Below
	// MaxAcceleration it also slows braking, so a body no longer comes to rest within
	// speed/MaxAcceleration seconds. The default of 1 is below the default MaxAcceleration.
	MaxDeacceleration float32 `toml:"max_deacceleration" yaml:"max_deacceleration"`
	// MaxAirAcceleration is the acceleration applied while airborne, in m/s².
	MaxAirAcceleration float32 `toml:"max_air_acceleration" yaml:"max_air_acceleration"`
	// MaxGroundAngle is the steepest slope, in degrees, that still counts as ground.
	MaxGroundAngle float32 `toml:"max_ground_angle" yaml:"max_ground_angle"`
	// JumpHeight is the height a jump from rest reaches, in metres.
	JumpHeight float32 `toml:"jump_height" yaml:"jump_height"`
	// MaxAirJumps is the number of jumps allowed before touching the ground again.
	MaxAirJumps int `toml:"max_air_jumps" yaml:"max_air_jumps"`
	// MaxSnapSpeed is the fastest speed at which the body is still snapped to the ground.
	MaxSnapSpeed float32 `toml:"max_snap_speed" yaml:"max_snap_speed"`
	// ProbeDistance is the length of the downward ground snap probe.
	ProbeDistance float32 `toml:"probe_distance" yaml:"probe_distance"`
	// ProbeMask selects the collision layers the ground snap probe may hit.
	ProbeMask uint32 `toml:"probe_mask" yaml:"probe_mask"`
	// AutoRun keeps the forward axis at full input unless the charge input is held.
	AutoRun bool `toml:"auto_run" yaml:"auto_run"`
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:           DefaultMaxSpeed,
		MaxAcceleration:    DefaultMaxAcceleration,
		MaxDeacceleration:  DefaultMaxDeacceleration,
		MaxAirAcceleration: DefaultMaxAirAcceleration,
		MaxGroundAngle:     DefaultMaxGroundAngle,
		JumpHeight:         DefaultJumpHeight,
		MaxAirJumps:        DefaultMaxAirJumps,
		MaxSnapSpeed:       DefaultMaxSnapSpeed,
		ProbeDistance:      DefaultProbeDistance,
		ProbeMask:          AllLayers,
	}
}

// Validate returns a copy of the configuration with every value clamped to its range.
func (c Config) Validate() Config {
	c.MaxSpeed = game.ClampFloat(c.MaxSpeed, 0, MaxSpeedLimit)
	c.MaxAcceleration = game.ClampFloat(c.MaxAcceleration, 0, MaxAccelerationLimit)
	c.MaxDeacceleration = game.ClampFloat(c.MaxDeacceleration, 0, MaxAccelerationLimit)
	c.MaxAirAcceleration = game.ClampFloat(c.MaxAirAcceleration, 0, MaxAccelerationLimit)
	c.MaxGroundAngle = game.ClampFloat(c.MaxGroundAngle, 0, MaxGroundAngleLimit)
	c.JumpHeight = game.ClampFloat(c.JumpHeight, 0, MaxJumpHeightLimit)
	c.MaxAirJumps = game.ClampInt(c.MaxAirJumps, 0, MaxAirJumpsLimit)
	c.MaxSnapSpeed = game.ClampFloat(c.MaxSnapSpeed, 0, MaxSpeedLimit)
	c.ProbeDistance = math32.Max(c.ProbeDistance, 0)
	return c
}

// MinGroundDotProduct returns the smallest vertical normal component of a surface that is still
// ground.
func (c Config) MinGroundDotProduct() float32 {
	return math32.Cos(mgl32.DegToRad(c.MaxGroundAngle))
}

// JumpSpeed returns the launch speed needed to reach jumpHeight against the vertical gravity passed.
// Upward or zero gravity yields no launch speed.
func JumpSpeed(gravityY, jumpHeight float32) float32 {
	energy := -2 * gravityY * jumpHeight
	if energy <= 0 {
		return 0
	}
	return math32.Sqrt(energy)
}
