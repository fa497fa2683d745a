package locomotion

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Classification describes how the ground state of a fixed step was determined.
type Classification uint8

const (
	// ClassificationAirborne means no ground was found and the contact normal defaulted to up.
	ClassificationAirborne Classification = iota
	// ClassificationContact means the body touched ground directly.
	ClassificationContact
	// ClassificationSnapped means the ground snap probe put the body back on the ground.
	ClassificationSnapped
	// ClassificationSteepPromoted means several steep contacts together were treated as ground.
	ClassificationSteepPromoted
)

func (c Classification) String() string {
	switch c {
	case ClassificationAirborne:
		return "airborne"
	case ClassificationContact:
		return "contact"
	case ClassificationSnapped:
		return "snapped"
	case ClassificationSteepPromoted:
		return "steep_promoted"
	}
	return fmt.Sprintf("classification(%d)", uint8(c))
}

// JumpOutcome describes what happened to a jump request during a fixed step.
type JumpOutcome uint8

const (
	// JumpOutcomeNone means no jump was requested.
	JumpOutcomeNone JumpOutcome = iota
	// JumpOutcomeGround means the body jumped off the ground.
	JumpOutcomeGround
	// JumpOutcomeSteep means the body jumped off a steep surface, such as a wall.
	JumpOutcomeSteep
	// JumpOutcomeAir means an air jump was spent.
	JumpOutcomeAir
	// JumpOutcomeDropped means the request was ignored because no jumps were left.
	JumpOutcomeDropped
)

func (o JumpOutcome) String() string {
	switch o {
	case JumpOutcomeNone:
		return "none"
	case JumpOutcomeGround:
		return "ground"
	case JumpOutcomeSteep:
		return "steep"
	case JumpOutcomeAir:
		return "air"
	case JumpOutcomeDropped:
		return "dropped"
	}
	return fmt.Sprintf("jump_outcome(%d)", uint8(o))
}

// Launched returns true if the outcome applied a jump impulse.
func (o JumpOutcome) Launched() bool {
	return o == JumpOutcomeGround || o == JumpOutcomeSteep || o == JumpOutcomeAir
}

// JumpState is the state of the jump state machine at the end of a fixed step.
type JumpState uint8

const (
	JumpStateGrounded JumpState = iota
	JumpStateAirborneWithJumps
	JumpStateAirborneExhausted
	JumpStateSteep
)

func (s JumpState) String() string {
	switch s {
	case JumpStateGrounded:
		return "grounded"
	case JumpStateAirborneWithJumps:
		return "airborne"
	case JumpStateAirborneExhausted:
		return "exhausted"
	case JumpStateSteep:
		return "steep"
	}
	return fmt.Sprintf("jump_state(%d)", uint8(s))
}

// StepResult captures the outcome of a single fixed step.
type StepResult struct {
	Velocity mgl32.Vec3

	ContactNormal  mgl32.Vec3
	SteepNormal    mgl32.Vec3
	GroundContacts int
	SteepContacts  int
	Classification Classification

	Jump        JumpOutcome
	JumpImpulse mgl32.Vec3
	JumpPhase   int
	State       JumpState
}

// Grounded returns true if the body stood on ground during the step.
func (r StepResult) Grounded() bool {
	return r.Classification != ClassificationAirborne
}

// Diagnostics returns the fields of the result in a stable order, for logging.
func (r StepResult) Diagnostics() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("class", r.Classification)
	data.Set("state", r.State)
	data.Set("vel", fmt.Sprintf("(%.3f, %.3f, %.3f)", r.Velocity.X(), r.Velocity.Y(), r.Velocity.Z()))
	data.Set("normal", fmt.Sprintf("(%.3f, %.3f, %.3f)", r.ContactNormal.X(), r.ContactNormal.Y(), r.ContactNormal.Z()))
	data.Set("ground", r.GroundContacts)
	data.Set("steep", r.SteepContacts)
	data.Set("phase", r.JumpPhase)
	if r.Jump != JumpOutcomeNone {
		data.Set("jump", r.Jump)
	}
	return data
}

// DiagnosticsString renders ordered diagnostics as "[key=value ...]".
func DiagnosticsString(data *orderedmap.OrderedMap[string, any]) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for el := data.Front(); el != nil; el = el.Next() {
		if sb.Len() > 1 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", el.Key, el.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
