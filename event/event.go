package event

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/oomph-ac/yamato/internal"
	"github.com/oomph-ac/yamato/oerror"
)

// Version is the version of the recording format written by EncodeRecording.
const Version uint16 = 1

var magic = []byte("YMTO")

const (
	_ = iota
	IDFrame
	IDDigest
)

// Event is a single entry of a recording.
type Event interface {
	ID() byte
	// Encode writes the payload of the event to buf, without its ID.
	Encode(buf *bytes.Buffer)
}

// Header identifies a recording and the fixed step it was recorded with.
type Header struct {
	RecordingID uuid.UUID
	Version     uint16
	FixedStep   float32
}

// NewHeader returns a header for a new recording with a random ID.
func NewHeader(fixedStep float32) Header {
	return Header{RecordingID: uuid.New(), Version: Version, FixedStep: fixedStep}
}

// EncodeRecording encodes a header followed by events.
func EncodeRecording(h Header, events []Event) []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	buf.Write(magic)
	internal.WriteLUint16(buf, h.Version)
	buf.Write(h.RecordingID[:])
	internal.WriteLFloat32(buf, h.FixedStep)
	encodeEvents(buf, events)
	return bytes.Clone(buf.Bytes())
}

// DecodeRecording decodes a recording written by EncodeRecording.
func DecodeRecording(dat []byte) (Header, []Event, error) {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	buf.Write(dat)

	var h Header
	if !bytes.HasPrefix(buf.Bytes(), magic) {
		return h, nil, oerror.New("not a recording: bad magic")
	}
	buf.Next(len(magic))

	var err error
	if h.Version, err = internal.LUint16(buf); err != nil {
		return h, nil, oerror.New("error reading recording version: %w", err)
	}
	if h.Version != Version {
		return h, nil, oerror.New("unsupported recording version %d", h.Version)
	}
	if buf.Len() < len(h.RecordingID) {
		return h, nil, oerror.New("error reading recording ID: truncated header")
	}
	copy(h.RecordingID[:], buf.Next(len(h.RecordingID)))
	if h.FixedStep, err = internal.LFloat32(buf); err != nil {
		return h, nil, oerror.New("error reading fixed step: %w", err)
	}

	events, err := decodeEvents(buf)
	return h, events, err
}

// EncodeEvents encodes events without a header.
func EncodeEvents(events []Event) []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	encodeEvents(buf, events)
	return bytes.Clone(buf.Bytes())
}

// DecodeEvents decodes events written by EncodeEvents. The events decoded before an error are
// returned along with it.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	buf.Write(dat)
	return decodeEvents(buf)
}

func encodeEvents(buf *bytes.Buffer, events []Event) {
	for _, ev := range events {
		buf.WriteByte(ev.ID())
		ev.Encode(buf)
	}
}

func decodeEvents(buf *bytes.Buffer) ([]Event, error) {
	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event %d: %w", len(events), err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEvent decodes the next event in buf.
func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	id, err := buf.ReadByte()
	if err != nil {
		return nil, oerror.New("error reading event ID: %w", err)
	}
	var ev Event
	switch id {
	case IDFrame:
		ev, err = decodeFrame(buf)
	case IDDigest:
		ev, err = decodeDigest(buf)
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}
