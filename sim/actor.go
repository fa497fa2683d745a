package sim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/internal"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/sphere"
	"github.com/oomph-ac/yamato/world"
)

// historySize is the number of step results a CharacterActor keeps.
const historySize = 64

// Actor is something a Driver moves every frame and every fixed step.
type Actor interface {
	// Frame samples the input of a frame that took dt seconds.
	Frame(input locomotion.InputState, dt float32)
	// FixedStep advances the actor by one fixed step of dt seconds.
	FixedStep(dt float32)
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
}

// detacher is implemented by actors that own resources in the world that must be released when the
// actor is removed from a Driver.
type detacher interface {
	Detach()
}

// CharacterActor is a sphere body in a World steered by a locomotion.Controller.
type CharacterActor struct {
	w          *world.World
	body       *world.SphereBody
	controller *locomotion.Controller

	history *internal.Ring[locomotion.StepResult]
}

// NewCharacter creates a character with a sphere body of the radius passed at pos and adds the body
// to w.
func NewCharacter(w *world.World, pos mgl32.Vec3, radius float32, cfg locomotion.Config, opts locomotion.Options) *CharacterActor {
	body := world.NewSphereBody(pos, radius)
	c := &CharacterActor{
		w:          w,
		body:       body,
		controller: locomotion.New(body, w, cfg, opts),
		history:    internal.NewRing[locomotion.StepResult](historySize),
	}
	w.AddBody(body, c.controller.OnContact)
	return c
}

func (c *CharacterActor) Frame(input locomotion.InputState, _ float32) {
	c.controller.OnFrame(input)
}

func (c *CharacterActor) FixedStep(dt float32) {
	c.history.Push(c.controller.OnFixedStep(dt))
}

func (c *CharacterActor) Position() mgl32.Vec3 {
	return c.body.Position()
}

func (c *CharacterActor) Velocity() mgl32.Vec3 {
	return c.body.Velocity()
}

// Controller returns the controller steering the character.
func (c *CharacterActor) Controller() *locomotion.Controller {
	return c.controller
}

// Body returns the body of the character.
func (c *CharacterActor) Body() *world.SphereBody {
	return c.body
}

// LastStep returns the result of the latest fixed step.
func (c *CharacterActor) LastStep() (locomotion.StepResult, bool) {
	return c.history.Last()
}

// History returns the results of the latest fixed steps, oldest first.
func (c *CharacterActor) History() []locomotion.StepResult {
	results := make([]locomotion.StepResult, 0, c.history.Len())
	for res := range c.history.All() {
		results = append(results, res)
	}
	return results
}

// Detach removes the body of the character from its world.
func (c *CharacterActor) Detach() {
	c.w.RemoveBody(c.body)
}

// SphereActor is a bounded moving sphere. It moves once per frame rather than per fixed step.
type SphereActor struct {
	*sphere.Sphere
}

// NewSphere creates a moving sphere at pos.
func NewSphere(pos mgl32.Vec3, cfg sphere.Config) *SphereActor {
	return &SphereActor{Sphere: sphere.New(pos, cfg)}
}

func (s *SphereActor) Frame(input locomotion.InputState, dt float32) {
	s.Update(input.Move, dt)
}

func (s *SphereActor) FixedStep(float32) {}
