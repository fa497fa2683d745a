package sim

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/yamato/event"
	"github.com/oomph-ac/yamato/internal"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/oerror"
	"github.com/oomph-ac/yamato/world"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// MaxStepsPerFrame is the most fixed steps a single frame may run. Time beyond it is dropped, so that
// a slow frame cannot make the next one slower still.
const MaxStepsPerFrame = 8

// Driver couples the frame loop with the fixed step loop of a World. Every frame delivers input to
// the actors and then runs as many fixed steps as the accumulated time allows. Actors are stepped in
// the order they were added, followed by the world. A Driver is not safe for concurrent use.
type Driver struct {
	w         *world.World
	fixedStep float32
	log       *logrus.Logger

	actors *orderedmap.OrderedMap[string, Actor]

	accumulator float32
	frame, step uint64

	recorder *Recorder
	onStep   func(step, digest uint64)
}

// NewDriver creates a driver stepping w every fixedStep seconds. A nil log uses the standard logrus
// logger.
func NewDriver(w *world.World, fixedStep float32, log *logrus.Logger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{
		w:         w,
		fixedStep: fixedStep,
		log:       log,
		actors:    orderedmap.NewOrderedMap[string, Actor](),
	}
}

// World returns the world the driver steps.
func (d *Driver) World() *world.World {
	return d.w
}

// FixedStep returns the duration of a fixed step.
func (d *Driver) FixedStep() float32 {
	return d.fixedStep
}

// Add adds an actor under name. An error is returned if the name is taken, or if the name or the
// number of actors no longer fits in a recording.
func (d *Driver) Add(name string, a Actor) error {
	if len(name) > internal.MaxLength {
		return oerror.New("actor name of %d bytes exceeds %d", len(name), internal.MaxLength)
	}
	if d.actors.Len() >= internal.MaxLength {
		return oerror.New("driver already holds %d actors", d.actors.Len())
	}
	if _, ok := d.actors.Get(name); ok {
		return oerror.New("actor %q already exists", name)
	}
	d.actors.Set(name, a)
	return nil
}

// Remove removes the actor under name, detaching it from the world. It returns false if no such actor
// exists.
func (d *Driver) Remove(name string) bool {
	a, ok := d.actors.Get(name)
	if !ok {
		return false
	}
	if det, ok := a.(detacher); ok {
		det.Detach()
	}
	return d.actors.Delete(name)
}

// Actor returns the actor under name.
func (d *Driver) Actor(name string) (Actor, bool) {
	return d.actors.Get(name)
}

// Names returns the names of the actors in the order they are stepped.
func (d *Driver) Names() []string {
	return d.actors.Keys()
}

// Frames returns the number of frames run.
func (d *Driver) Frames() uint64 {
	return d.frame
}

// Steps returns the number of fixed steps run.
func (d *Driver) Steps() uint64 {
	return d.step
}

// Record starts recording every frame and step to r. A nil recorder stops recording.
func (d *Driver) Record(r *Recorder) {
	d.recorder = r
}

// Frame runs a frame that took dt seconds. inputs holds the input of every actor by name, actors
// without an entry receive no input. It returns the number of fixed steps run.
func (d *Driver) Frame(dt float32, inputs map[string]locomotion.InputState) int {
	d.frame++
	if d.recorder != nil {
		d.recorder.frame(d.frame, dt, d.actors.Keys(), inputs)
	}
	for el := d.actors.Front(); el != nil; el = el.Next() {
		el.Value.Frame(inputs[el.Key], dt)
	}

	d.accumulator += dt
	steps := 0
	for d.accumulator >= d.fixedStep && steps < MaxStepsPerFrame {
		d.Step()
		d.accumulator -= d.fixedStep
		steps++
	}
	if d.accumulator >= d.fixedStep {
		d.log.Warnf("frame %d ran %d fixed steps, dropping %.3fs of simulation time", d.frame, steps, d.accumulator)
		d.accumulator = 0
	}
	return steps
}

// Step runs a single fixed step: every actor, then the world.
func (d *Driver) Step() {
	for el := d.actors.Front(); el != nil; el = el.Next() {
		el.Value.FixedStep(d.fixedStep)
	}
	d.w.Step(d.fixedStep)
	d.step++

	if d.recorder == nil && d.onStep == nil {
		return
	}
	digest := d.Digest()
	if d.recorder != nil {
		d.recorder.digest(d.step, digest)
	}
	if d.onStep != nil {
		d.onStep(d.step, digest)
	}
}

// Digest returns a hash of the name, position and velocity of every actor. Two drivers that ran the
// same frames from the same state have the same digest.
func (d *Driver) Digest() uint64 {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	internal.WriteLUint64(buf, d.step)
	for el := d.actors.Front(); el != nil; el = el.Next() {
		internal.WriteString(buf, el.Key)
		internal.WriteVec3(buf, el.Value.Position())
		internal.WriteVec3(buf, el.Value.Velocity())
	}
	return xxh3.Hash(buf.Bytes())
}

// Summary returns the position of every actor in the order they are stepped, for logging.
func (d *Driver) Summary() string {
	data := orderedmap.NewOrderedMap[string, any]()
	for el := d.actors.Front(); el != nil; el = el.Next() {
		pos := el.Value.Position()
		data.Set(el.Key, fmt.Sprintf("(%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z()))
	}
	return locomotion.DiagnosticsString(data)
}

// recordedInputs returns the inputs of a frame in the order of names, skipping actors without input.
func recordedInputs(names []string, inputs map[string]locomotion.InputState) []event.ActorInput {
	out := make([]event.ActorInput, 0, len(inputs))
	for _, name := range names {
		if in, ok := inputs[name]; ok {
			out = append(out, event.ActorInput{Actor: name, Input: in})
		}
	}
	return out
}
