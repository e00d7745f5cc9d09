package protocol

import (
	"fmt"

	rerrors "github.com/vango-dev/reconcile/internal/errors"
)

// OpKind identifies a recorded host operation.
type OpKind uint8

const (
	OpCreateElement OpKind = 0x01
	OpCreateText    OpKind = 0x02
	OpCreateComment OpKind = 0x03
	OpInsertBefore  OpKind = 0x10
	OpAppendChild   OpKind = 0x11
	OpRemoveChild   OpKind = 0x12
	OpSetText       OpKind = 0x20
	OpSetAttr       OpKind = 0x21
	OpRemoveAttr    OpKind = 0x22
	OpSetScope      OpKind = 0x23
	OpSetProp       OpKind = 0x24
	OpListen        OpKind = 0x30
	OpUnlisten      OpKind = 0x31
)

// String returns the op name.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpCreateComment:
		return "CreateComment"
	case OpInsertBefore:
		return "InsertBefore"
	case OpAppendChild:
		return "AppendChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetScope:
		return "SetScope"
	case OpSetProp:
		return "SetProp"
	case OpListen:
		return "Listen"
	case OpUnlisten:
		return "Unlisten"
	default:
		return fmt.Sprintf("Op(0x%02x)", uint8(k))
	}
}

// Op is one host mutation. Nodes are referred to by the numeric id the
// recorder assigned when the node was created; 0 means no node.
//
// Field use by kind:
//
//	CreateElement              ID, NS, Name (tag)
//	CreateText, CreateComment  ID, Value
//	InsertBefore               Parent, ID, Ref
//	AppendChild, RemoveChild   Parent, ID
//	SetText, SetScope          ID, Value
//	SetAttr, SetProp           ID, Name, Value
//	RemoveAttr                 ID, Name
//	Listen, Unlisten           ID, Name (event)
type Op struct {
	Kind   OpKind
	ID     uint64
	Parent uint64
	Ref    uint64
	NS     string
	Name   string
	Value  string
}

// String renders the op in a compact human-readable form.
func (op Op) String() string {
	switch op.Kind {
	case OpCreateElement:
		if op.NS != "" {
			return fmt.Sprintf("%s #%d %s:%s", op.Kind, op.ID, op.NS, op.Name)
		}
		return fmt.Sprintf("%s #%d %s", op.Kind, op.ID, op.Name)
	case OpCreateText, OpCreateComment, OpSetText, OpSetScope:
		return fmt.Sprintf("%s #%d %q", op.Kind, op.ID, op.Value)
	case OpInsertBefore:
		return fmt.Sprintf("%s #%d in #%d before #%d", op.Kind, op.ID, op.Parent, op.Ref)
	case OpAppendChild, OpRemoveChild:
		return fmt.Sprintf("%s #%d in #%d", op.Kind, op.ID, op.Parent)
	case OpSetAttr, OpSetProp:
		return fmt.Sprintf("%s #%d %s=%q", op.Kind, op.ID, op.Name, op.Value)
	default:
		return fmt.Sprintf("%s #%d %s", op.Kind, op.ID, op.Name)
	}
}

// EncodeOps encodes a batch of ops.
//
// Format: [count: varint] then per op [kind: byte] followed by the fields
// its kind uses, in the order listed on Op.
func EncodeOps(ops []Op) []byte {
	e := NewEncoder()
	EncodeOpsTo(e, ops)
	return e.Bytes()
}

// EncodeOpsTo encodes a batch of ops using the provided encoder.
func EncodeOpsTo(e *Encoder, ops []Op) {
	e.WriteUvarint(uint64(len(ops)))
	for i := range ops {
		encodeOp(e, &ops[i])
	}
}

func encodeOp(e *Encoder, op *Op) {
	e.WriteByte(byte(op.Kind))
	switch op.Kind {
	case OpCreateElement:
		e.WriteUvarint(op.ID)
		e.WriteString(op.NS)
		e.WriteString(op.Name)
	case OpCreateText, OpCreateComment, OpSetText, OpSetScope:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Value)
	case OpInsertBefore:
		e.WriteUvarint(op.Parent)
		e.WriteUvarint(op.ID)
		e.WriteUvarint(op.Ref)
	case OpAppendChild, OpRemoveChild:
		e.WriteUvarint(op.Parent)
		e.WriteUvarint(op.ID)
	case OpSetAttr, OpSetProp:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Name)
		e.WriteString(op.Value)
	case OpRemoveAttr, OpListen, OpUnlisten:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Name)
	}
}

// DecodeOps decodes a batch produced by EncodeOps. Malformed input yields a
// P001 error wrapping the underlying decode error.
func DecodeOps(data []byte) ([]Op, error) {
	d := NewDecoder(data)
	count, err := d.ReadCount()
	if err != nil {
		return nil, malformed(err, "op count", d.Position())
	}
	ops := make([]Op, 0, count)
	for i := 0; i < count; i++ {
		start := d.Position()
		op, err := decodeOp(d)
		if err != nil {
			return nil, malformed(err, fmt.Sprintf("op %d", i), start)
		}
		ops = append(ops, op)
	}
	if !d.EOF() {
		return nil, malformed(ErrTrailingBytes, "batch", d.Position())
	}
	return ops, nil
}

func decodeOp(d *Decoder) (op Op, err error) {
	kind, err := d.ReadByte()
	if err != nil {
		return op, err
	}
	op.Kind = OpKind(kind)
	switch op.Kind {
	case OpCreateElement:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		if op.NS, err = d.ReadString(); err != nil {
			return op, err
		}
		op.Name, err = d.ReadString()
	case OpCreateText, OpCreateComment, OpSetText, OpSetScope:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		op.Value, err = d.ReadString()
	case OpInsertBefore:
		if op.Parent, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		if op.ID, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		op.Ref, err = d.ReadUvarint()
	case OpAppendChild, OpRemoveChild:
		if op.Parent, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		op.ID, err = d.ReadUvarint()
	case OpSetAttr, OpSetProp:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		if op.Name, err = d.ReadString(); err != nil {
			return op, err
		}
		op.Value, err = d.ReadString()
	case OpRemoveAttr, OpListen, OpUnlisten:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return op, err
		}
		op.Name, err = d.ReadString()
	default:
		err = fmt.Errorf("%w: 0x%02x", ErrUnknownOp, kind)
	}
	return op, err
}

func malformed(err error, what string, offset int) error {
	return rerrors.New("P001").
		Wrap(err).
		WithDetailf("%s at offset %d: %v", what, offset, err)
}
