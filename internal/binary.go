package internal

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/assert"
	"github.com/oomph-ac/yamato/oerror"
)

// MaxLength is the longest string or list that can be written with a uint16 length prefix.
const MaxLength = math.MaxUint16

func WriteLUint16(buf *bytes.Buffer, v uint16) {
	buf.Write(binary.LittleEndian.AppendUint16(buf.AvailableBuffer(), v))
}

func WriteLUint32(buf *bytes.Buffer, v uint32) {
	buf.Write(binary.LittleEndian.AppendUint32(buf.AvailableBuffer(), v))
}

func WriteLUint64(buf *bytes.Buffer, v uint64) {
	buf.Write(binary.LittleEndian.AppendUint64(buf.AvailableBuffer(), v))
}

func WriteLFloat32(buf *bytes.Buffer, v float32) {
	WriteLUint32(buf, math.Float32bits(v))
}

func WriteVec2(buf *bytes.Buffer, v mgl32.Vec2) {
	WriteLFloat32(buf, v.X())
	WriteLFloat32(buf, v.Y())
}

func WriteVec3(buf *bytes.Buffer, v mgl32.Vec3) {
	WriteLFloat32(buf, v.X())
	WriteLFloat32(buf, v.Y())
	WriteLFloat32(buf, v.Z())
}

// WriteString writes s prefixed with its length as a uint16. It panics if s is longer than MaxLength.
func WriteString(buf *bytes.Buffer, s string) {
	assert.IsTrue(len(s) <= MaxLength, "string of %d bytes exceeds %d", len(s), MaxLength)
	WriteLUint16(buf, uint16(len(s)))
	buf.WriteString(s)
}

// next reads exactly n bytes from buf.
func next(buf *bytes.Buffer, n int) ([]byte, error) {
	if buf.Len() < n {
		return nil, oerror.New("need %d bytes, %d left: %w", n, buf.Len(), io.ErrUnexpectedEOF)
	}
	return buf.Next(n), nil
}

func LUint16(buf *bytes.Buffer) (uint16, error) {
	b, err := next(buf, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func LUint32(buf *bytes.Buffer) (uint32, error) {
	b, err := next(buf, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func LUint64(buf *bytes.Buffer) (uint64, error) {
	b, err := next(buf, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func LFloat32(buf *bytes.Buffer) (float32, error) {
	v, err := LUint32(buf)
	return math.Float32frombits(v), err
}

func Vec2(buf *bytes.Buffer) (v mgl32.Vec2, err error) {
	for i := range v {
		if v[i], err = LFloat32(buf); err != nil {
			return v, err
		}
	}
	return v, nil
}

func Vec3(buf *bytes.Buffer) (v mgl32.Vec3, err error) {
	for i := range v {
		if v[i], err = LFloat32(buf); err != nil {
			return v, err
		}
	}
	return v, nil
}

func String(buf *bytes.Buffer) (string, error) {
	l, err := LUint16(buf)
	if err != nil {
		return "", err
	}
	b, err := next(buf, int(l))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
