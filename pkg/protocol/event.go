package protocol

// Event is a host event the client reports back for a recorded node.
//
// Format: [target: varint][type: string][value: string]
type Event struct {
	Target uint64
	Type   string
	Value  string
}

// EncodeEvent encodes an Event.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Target)
	e.WriteString(ev.Type)
	e.WriteString(ev.Value)
	return e.Bytes()
}

// DecodeEvent decodes an Event. Malformed input yields a P001 error.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	var ev Event
	var err error
	if ev.Target, err = d.ReadUvarint(); err != nil {
		return nil, malformed(err, "event target", d.Position())
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, malformed(err, "event type", d.Position())
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return nil, malformed(err, "event value", d.Position())
	}
	return &ev, nil
}
