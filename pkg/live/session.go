package live

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/html"

	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/modules"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/remote"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// ErrClosed is returned when rendering on a closed session.
var ErrClosed = errors.New("live: session closed")

// RenderFunc produces the current view. It is always called with the
// session lock held, as are the listeners of the tree it returns.
type RenderFunc func() *vdom.VNode

// Session keeps one server-side tree in sync with a client over a
// websocket. Each render pass is recorded and sent as an op batch; the
// client replays it with a remote.Mirror. The root element is always the
// first node created, id 1.
type Session struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	config *Config
	logger *slog.Logger

	doc    *htmldom.Document
	rec    *remote.Recorder
	p      *patch.Patcher
	render RenderFunc
	prev   *vdom.VNode

	closed atomic.Bool
	done   chan struct{}

	frames atomic.Uint64
	ops    atomic.Uint64
}

// NewSession creates a session on conn. render may be set later with
// SetRender, before the first Render call.
func NewSession(conn *websocket.Conn, render RenderFunc, config *Config) *Session {
	config = config.withDefaults()
	doc := htmldom.New()
	rec := remote.NewRecorder(doc)
	opts := append([]patch.Option{patch.WithLogger(config.Logger)}, config.PatchOptions...)
	return &Session{
		conn:   conn,
		config: config,
		logger: config.Logger,
		doc:    doc,
		rec:    rec,
		p:      patch.New(rec, modules.Default(rec), opts...),
		render: render,
		done:   make(chan struct{}),
	}
}

// SetRender replaces the render function.
func (s *Session) SetRender(render RenderFunc) {
	s.mu.Lock()
	s.render = render
	s.mu.Unlock()
}

// Render patches the previous tree to a fresh render and sends the
// recorded ops. A pass that changes nothing sends nothing.
func (s *Session) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

// Update runs fn with the session lock held, then re-renders. Use it to
// change state the render function reads from outside the session loop.
func (s *Session) Update(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn()
	}
	return s.renderLocked()
}

func (s *Session) renderLocked() error {
	if s.closed.Load() {
		return ErrClosed
	}
	next := s.render()
	if s.prev == nil {
		s.p.Patch(nil, next, false, false)
	} else {
		s.p.Patch(s.prev, next, false, false)
	}
	s.prev = next
	return s.flushLocked()
}

func (s *Session) flushLocked() error {
	ops := s.rec.Flush()
	if len(ops) == 0 {
		return nil
	}
	for _, f := range protocol.Split(protocol.FrameOps, protocol.EncodeOps(ops)) {
		if err := s.writeFrame(f); err != nil {
			s.logger.Error("write error", "error", err)
			s.closeInternal()
			return err
		}
		s.frames.Add(1)
	}
	s.ops.Add(uint64(len(ops)))
	return nil
}

// writeFrame must be called with mu held.
func (s *Session) writeFrame(f *protocol.Frame) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, f.Encode())
}

func (s *Session) sendError(code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return
	}
	f := protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(protocol.NewError(code, message)))
	if err := s.writeFrame(f); err != nil {
		s.logger.Error("error frame write failed", "error", err)
	}
}

// ReadLoop reads client frames until the connection fails or the session
// is closed. Events are dispatched to the recorded node they name and
// followed by a render pass.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		return nil
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError("P001", err.Error())
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("event decode error", "error", err)
		s.sendError("P001", err.Error())
		return
	}
	if err := s.dispatch(ev); err != nil && !errors.Is(err, ErrClosed) {
		s.logger.Error("event dispatch failed", "error", err)
	}
}

func (s *Session) dispatch(ev *protocol.Event) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.rec.Node(ev.Target).(*html.Node)
	if !ok {
		return fmt.Errorf("%w #%d", remote.ErrUnknownNode, ev.Target)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("live: handler panic: %v", r)
		}
	}()

	if s.doc.Dispatch(target, vdom.Event{Type: ev.Type, Value: ev.Value}) == 0 {
		s.logger.Debug("event without listener", "target", ev.Target, "type", ev.Type)
		return nil
	}
	return s.renderLocked()
}

// WriteLoop sends heartbeats until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			s.mu.Unlock()
			if err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// Stats returns the number of frames and ops sent so far.
func (s *Session) Stats() (frames, ops uint64) {
	return s.frames.Load(), s.ops.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close closes the connection. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeInternal()
}

// closeInternal must be called with mu held.
func (s *Session) closeInternal() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
	s.conn.Close()
	s.logger.Info("session closed", "frames", s.frames.Load(), "ops", s.ops.Load())
}
