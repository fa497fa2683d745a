package sphere

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
)

const (
	DefaultMaxSpeed        = float32(10)
	DefaultMaxAcceleration = float32(10)
	DefaultBounciness      = float32(0.5)

	MaxSpeedLimit        = float32(100)
	MaxAccelerationLimit = float32(100)
)

// Rect is an axis aligned rectangle on the ground plane. X maps to world X and Y maps to world Z.
type Rect struct {
	X      float32 `toml:"x" yaml:"x"`
	Y      float32 `toml:"y" yaml:"y"`
	Width  float32 `toml:"width" yaml:"width"`
	Height float32 `toml:"height" yaml:"height"`
}

// Min returns the corner of the rectangle with the smallest coordinates.
func (r Rect) Min() mgl32.Vec2 {
	return mgl32.Vec2{r.X, r.Y}
}

// Max returns the corner of the rectangle with the largest coordinates.
func (r Rect) Max() mgl32.Vec2 {
	return mgl32.Vec2{r.X + r.Width, r.Y + r.Height}
}

// Contains returns true if p lies within the rectangle, edges included.
func (r Rect) Contains(p mgl32.Vec2) bool {
	min, max := r.Min(), r.Max()
	return p.X() >= min.X() && p.X() <= max.X() && p.Y() >= min.Y() && p.Y() <= max.Y()
}

// Config holds the tunables of a Sphere.
type Config struct {
	MaxSpeed        float32 `toml:"max_speed" yaml:"max_speed"`
	MaxAcceleration float32 `toml:"max_acceleration" yaml:"max_acceleration"`
	// AllowedArea is the area of the ground plane the sphere is kept in.
	AllowedArea Rect `toml:"allowed_area" yaml:"allowed_area"`
	// Bounciness is the fraction of speed kept, reversed, when the sphere hits the edge of its area.
	Bounciness float32 `toml:"bounciness" yaml:"bounciness"`
}

// DefaultConfig returns the default sphere configuration: a 9x9 area centred on the origin.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:        DefaultMaxSpeed,
		MaxAcceleration: DefaultMaxAcceleration,
		AllowedArea:     Rect{X: -4.5, Y: -4.5, Width: 9, Height: 9},
		Bounciness:      DefaultBounciness,
	}
}

// Validate returns a copy of the configuration with every value clamped to its range. A rectangle
// with a negative size is flipped so that its size is positive.
func (c Config) Validate() Config {
	c.MaxSpeed = game.ClampFloat(c.MaxSpeed, 0, MaxSpeedLimit)
	c.MaxAcceleration = game.ClampFloat(c.MaxAcceleration, 0, MaxAccelerationLimit)
	c.Bounciness = game.ClampFloat(c.Bounciness, 0, 1)
	if c.AllowedArea.Width < 0 {
		c.AllowedArea.X, c.AllowedArea.Width = c.AllowedArea.X+c.AllowedArea.Width, -c.AllowedArea.Width
	}
	if c.AllowedArea.Height < 0 {
		c.AllowedArea.Y, c.AllowedArea.Height = c.AllowedArea.Y+c.AllowedArea.Height, -c.AllowedArea.Height
	}
	return c
}

// Sphere is a simple body that moves on the ground plane without a physics engine, bouncing off the
// edges of the area it is allowed in.
type Sphere struct {
	cfg      Config
	position mgl32.Vec3
	velocity mgl32.Vec3
}

// New creates a Sphere at position.
func New(position mgl32.Vec3, cfg Config) *Sphere {
	return &Sphere{cfg: cfg.Validate(), position: position}
}

// Configure applies cfg after clamping it.
func (s *Sphere) Configure(cfg Config) {
	s.cfg = cfg.Validate()
}

// Config returns the validated configuration of the sphere.
func (s *Sphere) Config() Config {
	return s.cfg
}

// Position returns the current position of the sphere.
func (s *Sphere) Position() mgl32.Vec3 {
	return s.position
}

// Velocity returns the current velocity of the sphere.
func (s *Sphere) Velocity() mgl32.Vec3 {
	return s.velocity
}

// Update moves the sphere by one frame of dt seconds towards the velocity asked for by input.
func (s *Sphere) Update(input mgl32.Vec2, dt float32) {
	input = game.ClampMagnitude2(input, 1)
	desired := mgl32.Vec3{input.X(), 0, input.Y()}.Mul(s.cfg.MaxSpeed)
	maxSpeedChange := s.cfg.MaxAcceleration * dt
	s.velocity[0] = game.MoveTowards(s.velocity.X(), desired.X(), maxSpeedChange)
	s.velocity[2] = game.MoveTowards(s.velocity.Z(), desired.Z(), maxSpeedChange)

	pos := s.position.Add(s.velocity.Mul(dt))
	area := s.cfg.AllowedArea
	if !area.Contains(mgl32.Vec2{pos.X(), pos.Z()}) {
		min, max := area.Min(), area.Max()
		if pos.X() < min.X() || pos.X() > max.X() {
			pos[0] = game.ClampFloat(pos.X(), min.X(), max.X())
			s.velocity[0] = -s.velocity.X() * s.cfg.Bounciness
		}
		if pos.Z() < min.Y() || pos.Z() > max.Y() {
			pos[2] = game.ClampFloat(pos.Z(), min.Y(), max.Y())
			s.velocity[2] = -s.velocity.Z() * s.cfg.Bounciness
		}
	}
	s.position = pos
}
