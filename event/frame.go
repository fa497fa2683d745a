package event

import (
	"bytes"

	"github.com/oomph-ac/yamato/assert"
	"github.com/oomph-ac/yamato/internal"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/oerror"
)

const (
	flagJump = 1 << iota
	flagCharge
)

// ActorInput is the input one actor received in a frame.
type ActorInput struct {
	Actor string
	Input locomotion.InputState
}

// FrameEvent records a rendered frame: its duration and the input of every actor.
type FrameEvent struct {
	Frame  uint64
	Delta  float32
	Inputs []ActorInput
}

func (FrameEvent) ID() byte {
	return IDFrame
}

// Encode writes the frame to buf. It panics if the frame holds more than internal.MaxLength inputs.
func (ev FrameEvent) Encode(buf *bytes.Buffer) {
	assert.IsTrue(len(ev.Inputs) <= internal.MaxLength, "%d inputs exceed %d", len(ev.Inputs), internal.MaxLength)
	internal.WriteLUint64(buf, ev.Frame)
	internal.WriteLFloat32(buf, ev.Delta)
	internal.WriteLUint16(buf, uint16(len(ev.Inputs)))
	for _, in := range ev.Inputs {
		internal.WriteString(buf, in.Actor)
		internal.WriteVec2(buf, in.Input.Move)
		var flags byte
		if in.Input.Jump {
			flags |= flagJump
		}
		if in.Input.Charge {
			flags |= flagCharge
		}
		buf.WriteByte(flags)
	}
}

// InputMap returns the inputs of the frame keyed by actor.
func (ev FrameEvent) InputMap() map[string]locomotion.InputState {
	m := make(map[string]locomotion.InputState, len(ev.Inputs))
	for _, in := range ev.Inputs {
		m[in.Actor] = in.Input
	}
	return m
}

func decodeFrame(buf *bytes.Buffer) (ev FrameEvent, err error) {
	if ev.Frame, err = internal.LUint64(buf); err != nil {
		return ev, oerror.New("error reading frame number: %w", err)
	}
	if ev.Delta, err = internal.LFloat32(buf); err != nil {
		return ev, oerror.New("error reading frame delta: %w", err)
	}
	count, err := internal.LUint16(buf)
	if err != nil {
		return ev, oerror.New("error reading input count: %w", err)
	}
	ev.Inputs = make([]ActorInput, 0, count)
	for i := 0; i < int(count); i++ {
		var in ActorInput
		if in.Actor, err = internal.String(buf); err != nil {
			return ev, oerror.New("error reading actor of input %d: %w", i, err)
		}
		if in.Input.Move, err = internal.Vec2(buf); err != nil {
			return ev, oerror.New("error reading move axes of input %d: %w", i, err)
		}
		flags, err := buf.ReadByte()
		if err != nil {
			return ev, oerror.New("error reading flags of input %d: %w", i, err)
		}
		in.Input.Jump = flags&flagJump != 0
		in.Input.Charge = flags&flagCharge != 0
		ev.Inputs = append(ev.Inputs, in)
	}
	return ev, nil
}
