package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
	"github.com/sirupsen/logrus"
)

// Options define optional collaborators of a Controller.
type Options struct {
	// Log receives trace lines for every stage of a fixed step while Debug is true. A nil Log
	// disables tracing.
	Log   *logrus.Logger
	Debug bool

	// InputSpace is the reference frame input axes are relative to. If nil, the axes map to world
	// right (+X) and forward (+Z).
	InputSpace InputSpace
}

// Controller steers a Body from per-frame input and per-step contacts. It is not safe for concurrent
// use: OnFrame, OnContact and OnFixedStep are expected to be called from the goroutine running the
// physics loop.
type Controller struct {
	body  Body
	world PhysicsWorld
	opts  Options

	cfg                 Config
	minGroundDotProduct float32

	velocity        mgl32.Vec3
	desiredVelocity mgl32.Vec3
	desiredJump     bool

	contacts contacts
	// snapped is true if the current step found ground through the snap probe.
	snapped  bool
	promoted bool

	jumpPhase              int
	stepsSinceLastGrounded int
	stepsSinceLastJump     int
}

// New creates a Controller for body in world, configured with cfg.
func New(body Body, world PhysicsWorld, cfg Config, opts Options) *Controller {
	c := &Controller{
		body:  body,
		world: world,
		opts:  opts,
	}
	c.Configure(cfg)
	return c
}

// Configure clamps cfg into its valid ranges and applies it. It may be called at any time, for
// example after settings were reloaded.
func (c *Controller) Configure(cfg Config) {
	c.cfg = cfg.Validate()
	c.minGroundDotProduct = c.cfg.MinGroundDotProduct()
	c.debugf(true, "configured controller: max_speed=%.2f min_ground_dot=%.4f air_jumps=%d", c.cfg.MaxSpeed, c.minGroundDotProduct, c.cfg.MaxAirJumps)
}

// Config returns the validated configuration of the controller.
func (c *Controller) Config() Config {
	return c.cfg
}

// MinGroundDotProduct returns the smallest vertical normal component that counts as ground.
func (c *Controller) MinGroundDotProduct() float32 {
	return c.minGroundDotProduct
}

// SetInputSpace changes the reference frame input axes are relative to. A nil space maps the axes
// to the world axes.
func (c *Controller) SetInputSpace(space InputSpace) {
	c.opts.InputSpace = space
}

// DesiredVelocity returns the velocity derived from the last input sample.
func (c *Controller) DesiredVelocity() mgl32.Vec3 {
	return c.desiredVelocity
}

// JumpRequested returns true if a jump request is pending for the next fixed step.
func (c *Controller) JumpRequested() bool {
	return c.desiredJump
}

// JumpPhase returns the number of jumps made since the body last stood on the ground.
func (c *Controller) JumpPhase() int {
	return c.jumpPhase
}

// StepsSinceLastGrounded returns the number of fixed steps since the body last stood on the ground.
func (c *Controller) StepsSinceLastGrounded() int {
	return c.stepsSinceLastGrounded
}

// StepsSinceLastJump returns the number of fixed steps since the last jump.
func (c *Controller) StepsSinceLastJump() int {
	return c.stepsSinceLastJump
}

// OnFrame samples the input of a frame. The desired velocity is replaced on every call, while a jump
// request stays pending until the next fixed step consumes it.
func (c *Controller) OnFrame(input InputState) {
	move := game.ClampMagnitude2(input.Move, 1)
	if c.cfg.AutoRun {
		move[1] = 1
		if input.Charge {
			move[1] = 0
		}
	}

	if space := c.opts.InputSpace; space != nil {
		forward := game.Normalized(game.ProjectOnPlane(space.Forward(), game.Up))
		right := game.Normalized(game.ProjectOnPlane(space.Right(), game.Up))
		c.desiredVelocity = forward.Mul(move.Y()).Add(right.Mul(move.X())).Mul(c.cfg.MaxSpeed)
	} else {
		c.desiredVelocity = mgl32.Vec3{move.X(), 0, move.Y()}.Mul(c.cfg.MaxSpeed)
	}
	c.desiredJump = c.desiredJump || input.Jump
}

// OnContact accumulates every contact point of a collision event. It should be called for contacts
// that begin and for those that persist.
func (c *Controller) OnContact(event ContactEvent) {
	for _, point := range event.Points {
		c.contacts.evaluate(point.Normal, c.minGroundDotProduct)
	}
}

// OnFixedStep advances the controller by one fixed step of dt seconds and writes the resulting
// velocity to the body.
func (c *Controller) OnFixedStep(dt float32) StepResult {
	c.debugf(true, "BEGIN fixed step (ground=%d steep=%d)", c.contacts.groundCount, c.contacts.steepCount)
	defer c.debugf(true, "END fixed step")

	c.updateState()
	c.adjustVelocity(dt)

	outcome, impulse := JumpOutcomeNone, mgl32.Vec3{}
	if c.desiredJump {
		c.desiredJump = false
		outcome, impulse = c.jump()
	}
	c.body.SetVelocity(c.velocity)

	res := c.result(outcome, impulse)
	if c.opts.Debug {
		c.debugf(true, "step result: %s", DiagnosticsString(res.Diagnostics()))
	}
	c.contacts.clear()
	return res
}

// updateState reads the body and classifies the ground state of the step.
func (c *Controller) updateState() {
	c.stepsSinceLastGrounded++
	c.stepsSinceLastJump++
	c.velocity = c.body.Velocity()
	c.snapped, c.promoted = false, false

	switch {
	case c.contacts.onGround():
	case c.snapToGround():
		c.snapped = true
	case c.contacts.promoteSteep(c.minGroundDotProduct):
		c.promoted = true
		c.debugf(true, "promoted %d steep contacts to ground", c.contacts.steepCount)
	default:
		c.contacts.groundNormal = game.Up
		c.debugf(c.stepsSinceLastGrounded == 1, "left the ground")
		return
	}

	c.stepsSinceLastGrounded = 0
	if c.stepsSinceLastJump > JumpPhaseResetSteps {
		c.jumpPhase = 0
	}
	if c.contacts.groundCount > 1 {
		if normal, ok := game.SafeNormalize(c.contacts.groundNormal); ok {
			c.contacts.groundNormal = normal
		} else {
			c.contacts.groundNormal = game.Up
		}
	}
}

func (c *Controller) result(outcome JumpOutcome, impulse mgl32.Vec3) StepResult {
	res := StepResult{
		Velocity:       c.velocity,
		ContactNormal:  c.contacts.groundNormal,
		SteepNormal:    game.Normalized(c.contacts.steepNormal),
		GroundContacts: c.contacts.groundCount,
		SteepContacts:  c.contacts.steepCount,
		Jump:           outcome,
		JumpImpulse:    impulse,
		JumpPhase:      c.jumpPhase,
	}
	switch {
	case c.snapped:
		res.Classification = ClassificationSnapped
	case c.promoted:
		res.Classification = ClassificationSteepPromoted
	case c.contacts.onGround():
		res.Classification = ClassificationContact
	default:
		res.Classification = ClassificationAirborne
	}
	res.State = c.jumpState(res.Classification)
	return res
}

// jumpState returns the state of the jump state machine after the step.
func (c *Controller) jumpState(class Classification) JumpState {
	switch {
	case class != ClassificationAirborne:
		return JumpStateGrounded
	case c.contacts.onSteep():
		return JumpStateSteep
	case c.cfg.MaxAirJumps > 0 && c.jumpPhase <= c.cfg.MaxAirJumps:
		return JumpStateAirborneWithJumps
	}
	return JumpStateAirborneExhausted
}

func (c *Controller) debugf(cond bool, format string, args ...any) {
	if !cond || !c.opts.Debug || c.opts.Log == nil {
		return
	}
	c.opts.Log.Debugf(format, args...)
}
