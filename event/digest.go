package event

import (
	"bytes"

	"github.com/oomph-ac/yamato/internal"
	"github.com/oomph-ac/yamato/oerror"
)

// DigestEvent records the state digest of the simulation after a fixed step.
type DigestEvent struct {
	Step   uint64
	Digest uint64
}

func (DigestEvent) ID() byte {
	return IDDigest
}

func (ev DigestEvent) Encode(buf *bytes.Buffer) {
	internal.WriteLUint64(buf, ev.Step)
	internal.WriteLUint64(buf, ev.Digest)
}

func decodeDigest(buf *bytes.Buffer) (ev DigestEvent, err error) {
	if ev.Step, err = internal.LUint64(buf); err != nil {
		return ev, oerror.New("error reading step number: %w", err)
	}
	if ev.Digest, err = internal.LUint64(buf); err != nil {
		return ev, oerror.New("error reading digest: %w", err)
	}
	return ev, nil
}
