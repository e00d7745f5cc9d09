package protocol

import (
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload one frame carries. Larger
	// batches are split with Split.
	MaxPayloadSize = 65535
)

// FrameType identifies the payload of a frame.
type FrameType uint8

const (
	FrameOps   FrameType = 0x01 // server → client op batch
	FrameEvent FrameType = 0x02 // client → server event
	FrameError FrameType = 0x03 // error message
)

// String returns the frame type name.
func (ft FrameType) String() string {
	switch ft {
	case FrameOps:
		return "Ops"
	case FrameEvent:
		return "Event"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags are per-frame flags.
type FrameFlags uint8

// FlagMore marks a frame whose payload continues in the next frame.
const FlagMore FrameFlags = 0x01

// Has reports whether ff contains flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
	ErrFrameSequence    = errors.New("protocol: continuation frame type changed")
)

// Frame is a 4-byte header followed by the payload.
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame with no flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the frame with its header.
func (f *Frame) Encode() []byte {
	length := len(f.Payload)
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// DecodeFrame decodes one complete frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	ft := FrameType(data[0])
	if ft.String() == "Unknown" {
		return nil, ErrInvalidFrameType
	}
	length := int(data[2])<<8 | int(data[3])
	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])
	return &Frame{
		Type:    ft,
		Flags:   FrameFlags(data[1]),
		Payload: payload,
	}, nil
}

// ReadFrame reads a complete frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	length := int(header[2])<<8 | int(header[3])
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}
	return DecodeFrame(append(header, payload...))
}

// WriteFrame writes a complete frame to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}

// Split cuts payload into frames of at most MaxPayloadSize bytes. Every
// frame but the last carries FlagMore. An empty payload yields one empty
// frame.
func Split(ft FrameType, payload []byte) []*Frame {
	var frames []*Frame
	for len(payload) > MaxPayloadSize {
		frames = append(frames, &Frame{Type: ft, Flags: FlagMore, Payload: payload[:MaxPayloadSize]})
		payload = payload[MaxPayloadSize:]
	}
	return append(frames, NewFrame(ft, payload))
}

// Assembler joins frames produced by Split.
type Assembler struct {
	typ FrameType
	buf []byte
	mid bool
}

// Add appends f. It returns the joined payload and true once the last frame
// of a sequence has been added.
func (a *Assembler) Add(f *Frame) ([]byte, bool, error) {
	if a.mid && f.Type != a.typ {
		a.Reset()
		return nil, false, ErrFrameSequence
	}
	a.typ = f.Type
	a.buf = append(a.buf, f.Payload...)
	if f.Flags.Has(FlagMore) {
		a.mid = true
		return nil, false, nil
	}
	payload := a.buf
	a.buf = nil
	a.mid = false
	return payload, true, nil
}

// Reset drops a partially assembled sequence.
func (a *Assembler) Reset() {
	a.buf = nil
	a.mid = false
}
