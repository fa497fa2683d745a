package sim

import (
	"github.com/oomph-ac/yamato/event"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/oerror"
)

// Recorder captures the frames and step digests of a Driver so that the run can be replayed and
// verified later.
type Recorder struct {
	header event.Header
	events []event.Event
}

// NewRecorder creates a recorder for a driver with the fixed step passed.
func NewRecorder(fixedStep float32) *Recorder {
	return &Recorder{header: event.NewHeader(fixedStep)}
}

// Header returns the header of the recording.
func (r *Recorder) Header() event.Header {
	return r.header
}

// Events returns the events recorded so far.
func (r *Recorder) Events() []event.Event {
	return r.events
}

// Encode encodes the recording.
func (r *Recorder) Encode() []byte {
	return event.EncodeRecording(r.header, r.events)
}

func (r *Recorder) frame(frame uint64, dt float32, names []string, inputs map[string]locomotion.InputState) {
	r.events = append(r.events, event.FrameEvent{Frame: frame, Delta: dt, Inputs: recordedInputs(names, inputs)})
}

func (r *Recorder) digest(step, digest uint64) {
	r.events = append(r.events, event.DigestEvent{Step: step, Digest: digest})
}

// Replay decodes a recording and feeds its frames to d, which must be set up the same way as the
// driver that was recorded. An error is returned at the first step whose digest differs from the
// recorded one.
func Replay(dat []byte, d *Driver) error {
	header, events, err := event.DecodeRecording(dat)
	if err != nil {
		return oerror.New("error decoding recording: %w", err)
	}
	if header.FixedStep != d.fixedStep {
		return oerror.New("recording %s uses a fixed step of %v, driver uses %v", header.RecordingID, header.FixedStep, d.fixedStep)
	}

	replayed := make(map[uint64]uint64)
	d.onStep = func(step, digest uint64) {
		replayed[step] = digest
	}
	defer func() {
		d.onStep = nil
	}()

	for _, ev := range events {
		switch ev := ev.(type) {
		case event.FrameEvent:
			d.Frame(ev.Delta, ev.InputMap())
		case event.DigestEvent:
			digest, ok := replayed[ev.Step]
			if !ok {
				return oerror.New("recording %s: step %d was not replayed", header.RecordingID, ev.Step)
			}
			if digest != ev.Digest {
				return oerror.New("recording %s: digest mismatch at step %d: recorded %x, replayed %x", header.RecordingID, ev.Step, ev.Digest, digest)
			}
			delete(replayed, ev.Step)
		}
	}
	d.log.Debugf("replayed recording %s: %d frames, %d steps", header.RecordingID, d.frame, d.step)
	return nil
}
