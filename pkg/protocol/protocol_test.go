package protocol

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	rerrors "github.com/vango-dev/reconcile/internal/errors"
)

func sampleOps() []Op {
	return []Op{
		{Kind: OpCreateElement, ID: 1, Name: "div"},
		{Kind: OpCreateElement, ID: 2, NS: "svg", Name: "circle"},
		{Kind: OpCreateText, ID: 3, Value: "hello"},
		{Kind: OpCreateComment, ID: 4, Value: "c"},
		{Kind: OpAppendChild, Parent: 1, ID: 3},
		{Kind: OpInsertBefore, Parent: 1, ID: 4, Ref: 3},
		{Kind: OpInsertBefore, Parent: 1, ID: 2},
		{Kind: OpRemoveChild, Parent: 1, ID: 4},
		{Kind: OpSetText, ID: 3, Value: "bye"},
		{Kind: OpSetAttr, ID: 1, Name: "class", Value: "a b"},
		{Kind: OpRemoveAttr, ID: 1, Name: "class"},
		{Kind: OpSetScope, ID: 1, Value: "data-v-1"},
		{Kind: OpSetProp, ID: 1, Name: "innerHTML", Value: "<b>x</b>"},
		{Kind: OpListen, ID: 1, Name: "click"},
		{Kind: OpUnlisten, ID: 1, Name: "click"},
	}
}

func TestOpsRoundTrip(t *testing.T) {
	ops := sampleOps()
	got, err := DecodeOps(EncodeOps(ops))
	if err != nil {
		t.Fatalf("DecodeOps() error = %v", err)
	}
	if diff := cmp.Diff(ops, got); diff != "" {
		t.Errorf("DecodeOps() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeOpsEmpty(t *testing.T) {
	data := EncodeOps(nil)
	if !bytes.Equal(data, []byte{0x00}) {
		t.Errorf("EncodeOps(nil) = %x, want 00", data)
	}
	ops, err := DecodeOps(data)
	if err != nil || len(ops) != 0 {
		t.Errorf("DecodeOps(00) = %v, %v; want empty", ops, err)
	}
}

func TestEncodeOpsLayout(t *testing.T) {
	data := EncodeOps([]Op{{Kind: OpAppendChild, Parent: 300, ID: 2}})
	want := []byte{0x01, byte(OpAppendChild), 0xAC, 0x02, 0x02}
	if !bytes.Equal(data, want) {
		t.Errorf("EncodeOps() = %x, want %x", data, want)
	}
}

func TestDecodeOpsMalformed(t *testing.T) {
	valid := EncodeOps(sampleOps())

	tests := []struct {
		name  string
		data  []byte
		cause error
	}{
		{"empty", nil, io.ErrUnexpectedEOF},
		{"truncated", valid[:len(valid)-3], io.ErrUnexpectedEOF},
		{"unknown kind", []byte{0x01, 0x7F}, ErrUnknownOp},
		{"trailing", append(EncodeOps(nil), 0x00), ErrTrailingBytes},
		{"count beyond input", []byte{0x05, byte(OpSetText)}, io.ErrUnexpectedEOF},
		{"varint overflow", append([]byte{0x01, byte(OpSetText)}, bytes.Repeat([]byte{0xFF}, 10)...), ErrVarintOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeOps(tc.data)
			if err == nil {
				t.Fatal("DecodeOps() error = nil, want P001")
			}
			var re *rerrors.Error
			if !errors.As(err, &re) || re.Code != "P001" {
				t.Errorf("DecodeOps() error = %v, want code P001", err)
			}
			if !errors.Is(err, tc.cause) {
				t.Errorf("DecodeOps() error = %v, want wrapping %v", err, tc.cause)
			}
		})
	}
}

func TestDecodeStringTooLarge(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxStringLen + 1)
	e.WriteBytes(make([]byte, MaxStringLen+1))
	_, err := NewDecoder(e.Bytes()).ReadString()
	if !errors.Is(err, ErrAllocationTooLarge) {
		t.Errorf("ReadString() error = %v, want %v", err, ErrAllocationTooLarge)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Op{Kind: OpCreateElement, ID: 1, Name: "div"}, "CreateElement #1 div"},
		{Op{Kind: OpCreateElement, ID: 2, NS: "svg", Name: "g"}, "CreateElement #2 svg:g"},
		{Op{Kind: OpSetText, ID: 3, Value: "x"}, `SetText #3 "x"`},
		{Op{Kind: OpInsertBefore, Parent: 1, ID: 2, Ref: 3}, "InsertBefore #2 in #1 before #3"},
		{Op{Kind: OpRemoveChild, Parent: 1, ID: 2}, "RemoveChild #2 in #1"},
		{Op{Kind: OpSetAttr, ID: 1, Name: "id", Value: "a"}, `SetAttr #1 id="a"`},
		{Op{Kind: OpListen, ID: 1, Name: "click"}, "Listen #1 click"},
		{Op{Kind: OpKind(0x7F), ID: 1}, "Op(0x7f) #1 "},
	}
	for _, tc := range tests {
		if got := tc.op.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	f := NewFrame(FrameOps, EncodeOps(sampleOps()))
	var buf bytes.Buffer
	if err := WriteFrame(&buf, f); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("ReadFrame() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"short payload", []byte{0x01, 0x00, 0x00, 0x05, 0x01}, io.ErrUnexpectedEOF},
		{"bad type", []byte{0x09, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFrame(tc.data); !errors.Is(err, tc.want) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameOps, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() error = %v, want %v", err, ErrFrameTooLarge)
	}
}

func TestSplitAndAssemble(t *testing.T) {
	payload := []byte(strings.Repeat("x", 2*MaxPayloadSize+10))
	frames := Split(FrameOps, payload)
	if len(frames) != 3 {
		t.Fatalf("Split() = %d frames, want 3", len(frames))
	}
	for i, f := range frames {
		if more := f.Flags.Has(FlagMore); more != (i < 2) {
			t.Errorf("frame %d FlagMore = %v", i, more)
		}
	}

	var a Assembler
	var got []byte
	for i, f := range frames {
		out, done, err := a.Add(f)
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if done != (i == 2) {
			t.Errorf("Add(frame %d) done = %v", i, done)
		}
		got = out
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("assembled %d bytes, want %d", len(got), len(payload))
	}

	if frames := Split(FrameOps, nil); len(frames) != 1 || frames[0].Flags != 0 {
		t.Errorf("Split(nil) = %v, want one final frame", frames)
	}
}

func TestAssemblerTypeChange(t *testing.T) {
	var a Assembler
	a.Add(&Frame{Type: FrameOps, Flags: FlagMore, Payload: []byte{1}})
	if _, _, err := a.Add(NewFrame(FrameEvent, nil)); !errors.Is(err, ErrFrameSequence) {
		t.Errorf("Add() error = %v, want %v", err, ErrFrameSequence)
	}
}

func TestEventRoundTrip(t *testing.T) {
	ev := &Event{Target: 42, Type: "input", Value: "hello"}
	got, err := DecodeEvent(EncodeEvent(ev))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if diff := cmp.Diff(ev, got); diff != "" {
		t.Errorf("DecodeEvent() mismatch (-want +got):\n%s", diff)
	}

	_, err = DecodeEvent([]byte{42, 0x05})
	var re *rerrors.Error
	if !errors.As(err, &re) || re.Code != "P001" {
		t.Errorf("DecodeEvent(truncated) error = %v, want P001", err)
	}
}

func TestErrorMessage(t *testing.T) {
	em := NewFatalError("P001", "bad batch")
	got, err := DecodeErrorMessage(EncodeErrorMessage(em))
	if err != nil {
		t.Fatalf("DecodeErrorMessage() error = %v", err)
	}
	if diff := cmp.Diff(em, got); diff != "" {
		t.Errorf("DecodeErrorMessage() mismatch (-want +got):\n%s", diff)
	}
	if got, want := em.Error(), "protocol: fatal P001: bad batch"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := NewError("X", "y").Error(), "protocol: X: y"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUvarintLen(t *testing.T) {
	for _, v := range []uint64{0, 127, 128, 16383, 16384, 1<<63 + 1} {
		e := NewEncoder()
		e.WriteUvarint(v)
		if got := UvarintLen(v); got != e.Len() {
			t.Errorf("UvarintLen(%d) = %d, want %d", v, got, e.Len())
		}
		d := NewDecoder(e.Bytes())
		if got, err := d.ReadUvarint(); err != nil || got != v {
			t.Errorf("ReadUvarint() = %d, %v; want %d", got, err, v)
		}
	}
}
