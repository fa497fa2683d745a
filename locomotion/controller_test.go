package locomotion

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/game"
)

const testStep = float32(0.02)

type mockBody struct {
	pos, vel mgl32.Vec3
}

func (b *mockBody) Position() mgl32.Vec3     { return b.pos }
func (b *mockBody) Velocity() mgl32.Vec3     { return b.vel }
func (b *mockBody) SetVelocity(v mgl32.Vec3) { b.vel = v }

// mockWorld reports hit for every raycast if set.
type mockWorld struct {
	hit   *RaycastHit
	casts int
}

func (w *mockWorld) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask uint32) (RaycastHit, bool) {
	w.casts++
	if w.hit == nil || w.hit.Distance > maxDistance {
		return RaycastHit{}, false
	}
	return *w.hit, true
}

func (w *mockWorld) Gravity() mgl32.Vec3 {
	return mgl32.Vec3{0, game.DefaultGravity, 0}
}

func newTestController(cfg Config) (*Controller, *mockBody, *mockWorld) {
	body, world := &mockBody{}, &mockWorld{}
	return New(body, world, cfg, Options{}), body, world
}

func ground(c *Controller, normals ...mgl32.Vec3) {
	if len(normals) == 0 {
		normals = []mgl32.Vec3{game.Up}
	}
	points := make([]ContactPoint, len(normals))
	for i, n := range normals {
		points[i] = ContactPoint{Normal: n}
	}
	c.OnContact(ContactEvent{Points: points})
}

func approxVec(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestFlatGroundAcceleration(t *testing.T) {
	c, body, _ := newTestController(DefaultConfig())
	c.OnFrame(InputState{Move: mgl32.Vec2{1, 0}})
	ground(c)

	res := c.OnFixedStep(testStep)
	if !approxVec(body.vel, mgl32.Vec3{0.2, 0, 0}, 1e-5) {
		t.Fatalf("expected velocity (0.2, 0, 0), got %v", body.vel)
	}
	if res.Classification != ClassificationContact || !res.Grounded() {
		t.Fatalf("expected contact classification, got %v", res.Classification)
	}
	if res.State != JumpStateGrounded {
		t.Fatalf("expected grounded jump state, got %v", res.State)
	}
}

func TestConvergesToRest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAcceleration = 10
	cfg.MaxDeacceleration = 20
	c, body, _ := newTestController(cfg)
	body.vel = mgl32.Vec3{4, 0, 0}
	c.OnFrame(InputState{})

	// 4 m/s at 10 m/s² takes 0.4s.
	steps := int(math32.Ceil(4 / (cfg.MaxAcceleration * testStep)))
	speed := body.vel.Len()
	for i := 0; i < steps; i++ {
		ground(c)
		c.OnFixedStep(testStep)
		if body.vel.X() < 0 {
			t.Fatalf("step %d: overshot past rest to %v", i, body.vel)
		}
		if next := body.vel.Len(); next > speed {
			t.Fatalf("step %d: speed rose from %v to %v", i, speed, next)
		} else {
			speed = next
		}
	}
	if !approxVec(body.vel, mgl32.Vec3{}, 1e-4) {
		t.Fatalf("expected body at rest after %d steps, got %v", steps, body.vel)
	}
}

func TestDecelerationCap(t *testing.T) {
	tests := []struct {
		name     string
		airborne bool
		start    mgl32.Vec3
		move     mgl32.Vec2
		want     mgl32.Vec3
	}{
		{name: "braking", start: mgl32.Vec3{5, 0, 0}, move: mgl32.Vec2{}, want: mgl32.Vec3{4.98, 0, 0}},
		{name: "reversal", start: mgl32.Vec3{5, 0, 0}, move: mgl32.Vec2{-1, 0}, want: mgl32.Vec3{4.98, 0, 0}},
		{name: "speeding up", start: mgl32.Vec3{1, 0, 0}, move: mgl32.Vec2{1, 0}, want: mgl32.Vec3{1.2, 0, 0}},
		{name: "turning", start: mgl32.Vec3{5, 0, 0}, move: mgl32.Vec2{1, 1}, want: mgl32.Vec3{5.2, 0, 0.2}},
		// (0.2, 0, -0.2) drops 0.04 along (0.6, 0, 0.8), twice the allowed drop.
		{name: "diagonal", start: mgl32.Vec3{3, 0, 4}, move: mgl32.Vec2{1, -1}, want: mgl32.Vec3{3.1, 0, 3.9}},
		{name: "air turning", airborne: true, start: mgl32.Vec3{3, 0, 4}, move: mgl32.Vec2{1, -1}, want: mgl32.Vec3{3.02, 0, 3.98}},
		// (-0.02, 0, -0.02) drops 0.028, scaled by 0.02/0.028.
		{name: "air braking", airborne: true, start: mgl32.Vec3{3, 0, 4}, move: mgl32.Vec2{}, want: mgl32.Vec3{2.985714, 0, 3.985714}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c, body, _ := newTestController(cfg)
			body.vel = tt.start
			c.OnFrame(InputState{Move: tt.move})
			if !tt.airborne {
				ground(c)
			}
			res := c.OnFixedStep(testStep)
			if res.Grounded() == tt.airborne {
				t.Fatalf("expected grounded=%v, got classification %v", !tt.airborne, res.Classification)
			}

			if !approxVec(body.vel, tt.want, 1e-4) {
				t.Fatalf("expected %v, got %v", tt.want, body.vel)
			}
			maxChange := cfg.MaxAcceleration * testStep
			if tt.airborne {
				maxChange = cfg.MaxAirAcceleration * testStep
			}
			delta := body.vel.Sub(tt.start)
			if math32.Abs(delta.X()) > maxChange+1e-5 || math32.Abs(delta.Z()) > maxChange+1e-5 {
				t.Fatalf("velocity changed by %v, more than %v per axis", delta, maxChange)
			}
			direction := game.Normalized(tt.start)
			if drop := -delta.Dot(direction); drop > cfg.MaxDeacceleration*testStep+1e-5 {
				t.Fatalf("speed along direction of travel dropped by %v", drop)
			}
		})
	}
}

func TestJumpSpeed(t *testing.T) {
	if got := JumpSpeed(-9.81, 2); !game.Float32ApproxEq(game.Round32(got, 2), 6.26) {
		t.Fatalf("expected jump speed 6.26, got %v", got)
	}
	if got := JumpSpeed(9.81, 2); got != 0 {
		t.Fatalf("expected no jump speed with upward gravity, got %v", got)
	}

	c, body, _ := newTestController(DefaultConfig())
	c.OnFrame(InputState{Jump: true})
	ground(c)
	res := c.OnFixedStep(testStep)
	if res.Jump != JumpOutcomeGround {
		t.Fatalf("expected ground jump, got %v", res.Jump)
	}
	if math32.Abs(body.vel.Y()-6.264184) > 1e-4 || body.vel.X() != 0 || body.vel.Z() != 0 {
		t.Fatalf("expected straight up launch at 6.26 m/s, got %v", body.vel)
	}
	if c.StepsSinceLastJump() != 0 || c.JumpPhase() != 1 {
		t.Fatalf("unexpected jump counters: steps=%d phase=%d", c.StepsSinceLastJump(), c.JumpPhase())
	}
}

func TestJumpSubtractsAlignedSpeed(t *testing.T) {
	c, body, _ := newTestController(DefaultConfig())
	body.vel = mgl32.Vec3{0, 3, 0}
	c.OnFrame(InputState{Jump: true})
	ground(c)
	res := c.OnFixedStep(testStep)

	want := JumpSpeed(game.DefaultGravity, DefaultJumpHeight) - 3
	if math32.Abs(res.JumpImpulse.Y()-want) > 1e-4 {
		t.Fatalf("expected impulse %v, got %v", want, res.JumpImpulse)
	}

	body.vel = mgl32.Vec3{0, 10, 0}
	c.OnFrame(InputState{Jump: true})
	ground(c)
	if res = c.OnFixedStep(testStep); res.JumpImpulse != (mgl32.Vec3{}) || res.Jump != JumpOutcomeGround {
		t.Fatalf("expected a zero impulse ground jump, got %v (%v)", res.JumpImpulse, res.Jump)
	}
}

func TestSingleJumpWithoutAirJumps(t *testing.T) {
	c, _, _ := newTestController(DefaultConfig())
	c.OnFrame(InputState{Jump: true})
	ground(c)
	if res := c.OnFixedStep(testStep); res.Jump != JumpOutcomeGround {
		t.Fatalf("expected ground jump, got %v", res.Jump)
	}

	for i := 0; i < 10; i++ {
		c.OnFrame(InputState{Jump: true})
		res := c.OnFixedStep(testStep)
		if res.Jump != JumpOutcomeDropped {
			t.Fatalf("step %d: expected jump to be dropped, got %v", i, res.Jump)
		}
		if res.State != JumpStateAirborneExhausted {
			t.Fatalf("step %d: expected exhausted state, got %v", i, res.State)
		}
	}
}

func TestLaunchesBetweenGroundContacts(t *testing.T) {
	for airJumps := 0; airJumps <= 3; airJumps++ {
		cfg := DefaultConfig()
		cfg.MaxAirJumps = airJumps
		c, _, _ := newTestController(cfg)

		launches := 0
		c.OnFrame(InputState{Jump: true})
		ground(c)
		if c.OnFixedStep(testStep).Jump.Launched() {
			launches++
		}
		for i := 0; i < 20; i++ {
			c.OnFrame(InputState{Jump: true})
			if c.OnFixedStep(testStep).Jump.Launched() {
				launches++
			}
		}
		if launches != airJumps+1 {
			t.Fatalf("max air jumps %d: expected %d launches, got %d", airJumps, airJumps+1, launches)
		}
	}
}

func TestLedgeSpendsGroundJump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAirJumps = 1
	c, _, _ := newTestController(cfg)
	ground(c)
	c.OnFixedStep(testStep)

	// Walked off a ledge: only the air jump is left.
	c.OnFixedStep(testStep)
	c.OnFrame(InputState{Jump: true})
	if res := c.OnFixedStep(testStep); res.Jump != JumpOutcomeAir || res.JumpPhase != 2 {
		t.Fatalf("expected air jump at phase 2, got %v at phase %d", res.Jump, res.JumpPhase)
	}
	c.OnFrame(InputState{Jump: true})
	if res := c.OnFixedStep(testStep); res.Jump != JumpOutcomeDropped {
		t.Fatalf("expected second air jump to be dropped, got %v", res.Jump)
	}
}

func TestSteepWallJump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAirJumps = 1
	c, body, _ := newTestController(cfg)

	c.OnFrame(InputState{Jump: true})
	ground(c)
	if res := c.OnFixedStep(testStep); res.Jump != JumpOutcomeGround {
		t.Fatalf("expected ground jump, got %v", res.Jump)
	}
	c.OnFrame(InputState{Jump: true})
	if res := c.OnFixedStep(testStep); res.Jump != JumpOutcomeAir {
		t.Fatalf("expected air jump, got %v", res.Jump)
	}
	c.OnFrame(InputState{Jump: true})
	if res := c.OnFixedStep(testStep); res.Jump != JumpOutcomeDropped {
		t.Fatalf("expected exhausted air jumps, got %v", res.Jump)
	}

	body.vel = mgl32.Vec3{}
	c.OnFrame(InputState{Jump: true})
	ground(c, mgl32.Vec3{1, 0, 0})
	res := c.OnFixedStep(testStep)
	if res.Jump != JumpOutcomeSteep {
		t.Fatalf("expected steep jump, got %v", res.Jump)
	}
	if res.JumpPhase != 1 {
		t.Fatalf("expected jump phase 1 after wall jump, got %d", res.JumpPhase)
	}
	dir := game.Normalized(mgl32.Vec3{1, 1, 0})
	if !approxVec(game.Normalized(res.JumpImpulse), dir, 1e-5) {
		t.Fatalf("expected launch along %v, got %v", dir, res.JumpImpulse)
	}
	if res.State != JumpStateSteep {
		t.Fatalf("expected steep state, got %v", res.State)
	}
}

func TestJumpPhaseReset(t *testing.T) {
	c, _, _ := newTestController(DefaultConfig())
	c.OnFrame(InputState{Jump: true})
	ground(c)
	c.OnFixedStep(testStep)

	// Still touching the ground right after the jump.
	ground(c)
	if res := c.OnFixedStep(testStep); res.JumpPhase != 1 {
		t.Fatalf("expected jump phase to survive the step after a jump, got %d", res.JumpPhase)
	}
	ground(c)
	if res := c.OnFixedStep(testStep); res.JumpPhase != 0 {
		t.Fatalf("expected jump phase reset, got %d", res.JumpPhase)
	}
}

func TestJumpRequestPersistsAcrossFrames(t *testing.T) {
	c, _, _ := newTestController(DefaultConfig())
	c.OnFrame(InputState{Jump: true})
	c.OnFrame(InputState{})
	c.OnFrame(InputState{})
	if !c.JumpRequested() {
		t.Fatal("expected jump request to persist until the next fixed step")
	}
	ground(c)
	c.OnFixedStep(testStep)
	if c.JumpRequested() {
		t.Fatal("expected jump request to be consumed")
	}
}

func TestGroundSnap(t *testing.T) {
	minDot := DefaultConfig().MinGroundDotProduct()
	boundary := mgl32.Vec3{math32.Sqrt(1 - minDot*minDot), minDot, 0}
	below := mgl32.Vec3{math32.Sqrt(1 - (minDot-0.001)*(minDot-0.001)), minDot - 0.001, 0}

	tests := []struct {
		name    string
		normal  mgl32.Vec3
		snapped bool
	}{
		{name: "flat", normal: game.Up, snapped: true},
		{name: "boundary", normal: boundary, snapped: true},
		{name: "too steep", normal: below, snapped: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, world := newTestController(DefaultConfig())
			for i := 0; i < 3; i++ {
				ground(c)
				c.OnFixedStep(testStep)
			}
			world.hit = &RaycastHit{Normal: tt.normal, Distance: 0.5}
			res := c.OnFixedStep(testStep)
			if got := res.Classification == ClassificationSnapped; got != tt.snapped {
				t.Fatalf("expected snapped=%v, got classification %v", tt.snapped, res.Classification)
			}
			if tt.snapped && (res.GroundContacts != 1 || res.ContactNormal != tt.normal) {
				t.Fatalf("unexpected snapped contact: %d %v", res.GroundContacts, res.ContactNormal)
			}
		})
	}
}

func TestGroundSnapEligibility(t *testing.T) {
	c, _, world := newTestController(DefaultConfig())
	world.hit = &RaycastHit{Normal: game.Up, Distance: 0.5}

	// Too soon after a jump.
	c.OnFrame(InputState{Jump: true})
	ground(c)
	c.OnFixedStep(testStep)
	if res := c.OnFixedStep(testStep); res.Classification == ClassificationSnapped {
		t.Fatal("expected no snap right after a jump")
	}
	if world.casts != 0 {
		t.Fatalf("expected no probe, got %d raycasts", world.casts)
	}

	// Off the ground for too long.
	c, _, world = newTestController(DefaultConfig())
	for i := 0; i < 3; i++ {
		ground(c)
		c.OnFixedStep(testStep)
	}
	c.OnFixedStep(testStep)
	c.OnFixedStep(testStep)
	world.hit = &RaycastHit{Normal: game.Up, Distance: 0.5}
	if res := c.OnFixedStep(testStep); res.Classification == ClassificationSnapped {
		t.Fatal("expected no snap after being airborne for several steps")
	}

	// Probe too short.
	cfg := DefaultConfig()
	cfg.ProbeDistance = 0.25
	c, _, world = newTestController(cfg)
	for i := 0; i < 3; i++ {
		ground(c)
		c.OnFixedStep(testStep)
	}
	world.hit = &RaycastHit{Normal: game.Up, Distance: 0.5}
	if res := c.OnFixedStep(testStep); res.Classification == ClassificationSnapped {
		t.Fatal("expected no snap beyond the probe distance")
	}
}

func TestGroundSnapRedirectsVelocity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAcceleration = 0
	cfg.MaxAirAcceleration = 0
	c, body, world := newTestController(cfg)
	for i := 0; i < 3; i++ {
		ground(c)
		c.OnFixedStep(testStep)
	}

	body.vel = mgl32.Vec3{5, 1, 0}
	world.hit = &RaycastHit{Normal: game.Up, Distance: 0.1}
	res := c.OnFixedStep(testStep)
	if res.Classification != ClassificationSnapped {
		t.Fatalf("expected snap, got %v", res.Classification)
	}
	if !approxVec(body.vel, mgl32.Vec3{math32.Sqrt(26), 0, 0}, 1e-4) {
		t.Fatalf("expected velocity along the ground at the same speed, got %v", body.vel)
	}

	cfg.MaxSnapSpeed = 1
	c.Configure(cfg)
	ground(c)
	c.OnFixedStep(testStep)
	ground(c)
	c.OnFixedStep(testStep)
	body.vel = mgl32.Vec3{5, 1, 0}
	if res = c.OnFixedStep(testStep); res.Classification == ClassificationSnapped {
		t.Fatal("expected no snap above the max snap speed")
	}
}

func TestSteepPromotion(t *testing.T) {
	c, _, _ := newTestController(DefaultConfig())
	ground(c, mgl32.Vec3{0.8, 0.6, 0}, mgl32.Vec3{-0.8, 0.6, 0})
	res := c.OnFixedStep(testStep)
	if res.Classification != ClassificationSteepPromoted {
		t.Fatalf("expected promoted steep contacts, got %v", res.Classification)
	}
	if !approxVec(res.ContactNormal, game.Up, 1e-5) || res.GroundContacts != 1 {
		t.Fatalf("unexpected promoted contact: %d %v", res.GroundContacts, res.ContactNormal)
	}

	// Opposite walls cancel out and have no direction to promote.
	ground(c, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{-1, 0, 0})
	res = c.OnFixedStep(testStep)
	if res.Classification != ClassificationAirborne || res.ContactNormal != game.Up {
		t.Fatalf("expected airborne with up normal, got %v %v", res.Classification, res.ContactNormal)
	}
	if res.State != JumpStateSteep {
		t.Fatalf("expected steep state, got %v", res.State)
	}
}

func TestContactClassification(t *testing.T) {
	c, _, _ := newTestController(DefaultConfig())
	ground(c, game.Up, mgl32.Vec3{0.2, 0.98, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0})
	res := c.OnFixedStep(testStep)
	if res.GroundContacts != 2 || res.SteepContacts != 1 {
		t.Fatalf("expected 2 ground and 1 steep contacts, got %d and %d", res.GroundContacts, res.SteepContacts)
	}
	if !game.Float32ApproxEq(res.ContactNormal.Len(), 1) {
		t.Fatalf("expected a normalized contact normal, got %v", res.ContactNormal)
	}

	// The accumulator is cleared after every step.
	if res = c.OnFixedStep(testStep); res.GroundContacts != 0 || res.SteepContacts != 0 {
		t.Fatalf("expected contacts to be cleared, got %d and %d", res.GroundContacts, res.SteepContacts)
	}
}

func TestSlopeAxes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAcceleration = 100
	c, body, _ := newTestController(cfg)
	normal := game.Normalized(mgl32.Vec3{0, 1, -0.3})
	c.OnFrame(InputState{Move: mgl32.Vec2{0, 1}})
	ground(c, normal)
	c.OnFixedStep(testStep)

	if d := body.vel.Dot(normal); math32.Abs(d) > 1e-5 {
		t.Fatalf("expected velocity along the slope, got %v (dot %v)", body.vel, d)
	}
	if body.vel.Y() <= 0 || body.vel.Z() <= 0 {
		t.Fatalf("expected velocity up the slope, got %v", body.vel)
	}
}

func TestDesiredVelocity(t *testing.T) {
	tests := []struct {
		name  string
		cfg   func(*Config)
		space InputSpace
		input InputState
		want  mgl32.Vec3
	}{
		{name: "world axes", input: InputState{Move: mgl32.Vec2{1, 0}}, want: mgl32.Vec3{10, 0, 0}},
		{name: "clamped diagonal", input: InputState{Move: mgl32.Vec2{1, 1}}, want: mgl32.Vec3{7.071068, 0, 7.071068}},
		{name: "input space", space: YawSpace{Yaw: 90}, input: InputState{Move: mgl32.Vec2{0, 1}}, want: mgl32.Vec3{10, 0, 0}},
		{name: "auto run", cfg: func(c *Config) { c.AutoRun = true }, input: InputState{}, want: mgl32.Vec3{0, 0, 10}},
		{name: "auto run charging", cfg: func(c *Config) { c.AutoRun = true }, input: InputState{Move: mgl32.Vec2{1, 0}, Charge: true}, want: mgl32.Vec3{10, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			c, _, _ := newTestController(cfg)
			c.SetInputSpace(tt.space)
			c.OnFrame(tt.input)
			if !approxVec(c.DesiredVelocity(), tt.want, 1e-4) {
				t.Fatalf("expected desired velocity %v, got %v", tt.want, c.DesiredVelocity())
			}
		})
	}
}

func TestConfigureClamps(t *testing.T) {
	c, _, _ := newTestController(Config{
		MaxSpeed:       500,
		MaxGroundAngle: 120,
		JumpHeight:     -1,
		MaxAirJumps:    10,
		ProbeDistance:  -2,
	})
	cfg := c.Config()
	if cfg.MaxSpeed != MaxSpeedLimit || cfg.MaxGroundAngle != MaxGroundAngleLimit || cfg.JumpHeight != 0 || cfg.MaxAirJumps != MaxAirJumpsLimit || cfg.ProbeDistance != 0 {
		t.Fatalf("unexpected clamped configuration: %+v", cfg)
	}
	if math32.Abs(c.MinGroundDotProduct()) > 1e-6 {
		t.Fatalf("expected min ground dot of a 90 degree angle to be 0, got %v", c.MinGroundDotProduct())
	}
	c.Configure(DefaultConfig())
	if math32.Abs(c.MinGroundDotProduct()-math32.Cos(mgl32.DegToRad(25))) > 1e-6 {
		t.Fatalf("unexpected min ground dot %v", c.MinGroundDotProduct())
	}
}

func TestDiagnostics(t *testing.T) {
	c, _, _ := newTestController(DefaultConfig())
	c.OnFrame(InputState{Jump: true})
	ground(c)
	s := DiagnosticsString(c.OnFixedStep(testStep).Diagnostics())
	if !strings.HasPrefix(s, "[class=contact state=grounded ") || !strings.HasSuffix(s, " phase=1 jump=ground]") {
		t.Fatalf("unexpected diagnostics %q", s)
	}
}
