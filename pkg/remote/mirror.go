package remote

import (
	"errors"
	"fmt"

	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// ErrUnknownNode is returned by Apply for an op naming an id the mirror
// has never seen.
var ErrUnknownNode = errors.New("remote: unknown node id")

// Mirror replays recorded ops onto another host, keeping a copy of the
// recorded tree in sync. It is the receiving end of a Recorder.
type Mirror struct {
	host    Host
	nodes   map[uint64]vdom.Node
	next    uint64
	onEvent func(*protocol.Event)
}

// NewMirror creates a Mirror applying ops to host. onEvent, if non-nil,
// receives events fired at nodes that have a replayed listener.
func NewMirror(host Host, onEvent func(*protocol.Event)) *Mirror {
	return &Mirror{
		host:    host,
		nodes:   make(map[uint64]vdom.Node),
		onEvent: onEvent,
	}
}

// Adopt numbers root and its descendants in document order, matching
// Recorder.Adopt on the same markup. Call it before applying ops, once per
// tree the recorder adopted, in the same order.
func (m *Mirror) Adopt(root vdom.Node) {
	if root == nil {
		return
	}
	m.next++
	m.nodes[m.next] = root
	for c := m.host.FirstChild(root); c != nil; c = m.host.NextSibling(c) {
		m.Adopt(c)
	}
}

// Node returns the node with the given id, or nil.
func (m *Mirror) Node(id uint64) vdom.Node {
	return m.nodes[id]
}

// Apply replays ops in order. It stops at the first op it cannot apply.
func (m *Mirror) Apply(ops []protocol.Op) error {
	for i := range ops {
		if err := m.apply(&ops[i]); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, ops[i], err)
		}
	}
	return nil
}

func (m *Mirror) apply(op *protocol.Op) error {
	switch op.Kind {
	case protocol.OpCreateElement:
		if op.NS != "" {
			m.create(op.ID, m.host.CreateElementNS(op.NS, op.Name))
		} else {
			m.create(op.ID, m.host.CreateElement(op.Name))
		}
		return nil
	case protocol.OpCreateText:
		m.create(op.ID, m.host.CreateTextNode(op.Value))
		return nil
	case protocol.OpCreateComment:
		m.create(op.ID, m.host.CreateComment(op.Value))
		return nil
	}

	n, err := m.lookup(op.ID)
	if err != nil {
		return err
	}
	switch op.Kind {
	case protocol.OpInsertBefore:
		parent, err := m.lookup(op.Parent)
		if err != nil {
			return err
		}
		var ref vdom.Node
		if op.Ref != 0 {
			if ref, err = m.lookup(op.Ref); err != nil {
				return err
			}
		}
		m.host.InsertBefore(parent, n, ref)
	case protocol.OpAppendChild, protocol.OpRemoveChild:
		parent, err := m.lookup(op.Parent)
		if err != nil {
			return err
		}
		if op.Kind == protocol.OpAppendChild {
			m.host.AppendChild(parent, n)
		} else {
			m.host.RemoveChild(parent, n)
		}
	case protocol.OpSetText:
		m.host.SetTextContent(n, op.Value)
	case protocol.OpSetAttr:
		m.host.SetAttribute(n, op.Name, op.Value)
	case protocol.OpRemoveAttr:
		m.host.RemoveAttribute(n, op.Name)
	case protocol.OpSetScope:
		m.host.SetStyleScope(n, op.Value)
	case protocol.OpSetProp:
		m.host.SetProperty(n, op.Name, op.Value)
	case protocol.OpListen:
		id := op.ID
		m.host.AddEventListener(n, op.Name, func(e vdom.Event) {
			if m.onEvent != nil {
				m.onEvent(&protocol.Event{Target: id, Type: e.Type, Value: e.Value})
			}
		})
	case protocol.OpUnlisten:
		m.host.RemoveEventListener(n, op.Name)
	default:
		return protocol.ErrUnknownOp
	}
	return nil
}

func (m *Mirror) create(id uint64, n vdom.Node) {
	m.nodes[id] = n
	if id > m.next {
		m.next = id
	}
}

func (m *Mirror) lookup(id uint64) (vdom.Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w #%d", ErrUnknownNode, id)
	}
	return n, nil
}
