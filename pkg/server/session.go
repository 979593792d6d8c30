package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loomui/loom"
	"github.com/loomui/loom/internal/errors"
	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/metrics"
	"github.com/loomui/loom/pkg/protocol"
	"github.com/loomui/loom/pkg/vdom"
)

// Session is one websocket connection with its own document and app.
// The document and the app are touched only by the session's read
// goroutine; the write mutex exists because the ping loop shares the
// connection.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn    *websocket.Conn
	app     *loom.App
	doc     *dom.Document
	config  Config
	logger  *slog.Logger
	onClose func()

	writeMu sync.Mutex
	closed  atomic.Bool
	done    chan struct{}

	// Ops buffered between flushes. Appended by the document
	// observer, drained after mount and after each event.
	ops []dom.Op
}

// generateSessionID returns a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func newSession(conn *websocket.Conn, app *loom.App, config Config) *Session {
	id := generateSessionID()
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		app:       app,
		doc:       dom.NewDocument(),
		config:    config,
		logger:    config.Logger.With("session_id", id),
		done:      make(chan struct{}),
	}
	s.doc.Observe(func(op dom.Op) {
		s.ops = append(s.ops, op)
	})
	return s
}

// Run performs the handshake, mounts the app, and reads frames until
// the connection dies. It blocks; the server calls it from the
// connection's goroutine.
func (s *Session) Run() {
	metrics.RecordSessionStart()
	defer s.Close()

	s.writeFrame(protocol.NewFrame(protocol.FrameHandshake,
		protocol.EncodeHandshake(&protocol.Handshake{
			Version:   protocol.Version,
			SessionID: s.ID,
		})))

	if err := s.app.Mount(s.doc.Body()); err != nil {
		s.logger.Error("mount failed", "error", err)
		s.sendError(errors.CodeMountFailed, err)
		return
	}
	s.flushOps()

	s.logger.Info("session started",
		"nodes", s.doc.Len(),
		"remote", s.conn.RemoteAddr())

	go s.pingLoop()
	s.readLoop()
}

func (s *Session) readLoop() {
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error",
				"code", errors.CodeFrameDecode, "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)

		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

// handleEventFrame resolves the target node and dispatches the event
// through its listeners. Stale targets are expected: the client may
// fire against a node the last render already removed.
func (s *Session) handleEventFrame(payload []byte) {
	msg, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Error("event decode error",
			"code", errors.CodeFrameDecode, "error", err)
		s.sendError(errors.CodeFrameDecode, err)
		return
	}

	node, ok := s.doc.NodeByID(msg.Target)
	if !ok {
		s.logger.Debug("event for unknown target",
			"code", errors.CodeUnknownTarget,
			"target", msg.Target, "event", msg.Name)
		return
	}

	node.DispatchEvent(vdom.Event{Name: msg.Name, Value: msg.Value})
	s.flushOps()
}

func (s *Session) handleControlFrame(payload []byte) {
	if len(payload) == 0 {
		return
	}
	switch payload[0] {
	case protocol.ControlPing:
		s.writeFrame(protocol.PongFrame())
	case protocol.ControlPong:
		s.logger.Debug("pong received")
	}
}

// flushOps drains buffered document operations into ops frames,
// split by encoded size so every frame fits the 2-byte length field.
func (s *Session) flushOps() {
	if len(s.ops) == 0 {
		return
	}

	pending := s.ops
	s.ops = nil

	batches, err := protocol.ChunkOps(pending)
	if err != nil {
		s.logger.Error("op batch too large",
			"code", errors.CodeFrameTooLarge, "error", err)
		s.sendError(errors.CodeFrameTooLarge, err)
		return
	}

	for _, batch := range batches {
		payload, err := protocol.EncodeOps(batch)
		if err != nil {
			s.logger.Error("op encode error", "error", err)
			return
		}
		s.writeFrame(protocol.NewFrame(protocol.FrameOps, payload))
		metrics.RecordOpsSent(len(batch))
	}
}

func (s *Session) sendError(code string, err error) {
	le := errors.FromError(err, code)
	s.writeFrame(protocol.ErrorFrame(le.Code, le.Message))
}

func (s *Session) writeFrame(f *protocol.Frame) {
	if s.closed.Load() {
		return
	}

	buf, err := f.Encode()
	if err != nil {
		s.logger.Error("frame encode error",
			"code", errors.CodeFrameTooLarge, "type", f.Type, "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
		s.logger.Debug("write failed", "type", f.Type, "error", err)
	}
}

func (s *Session) pingLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeFrame(protocol.PingFrame())
		}
	}
}

// Close tears down the session. Idempotent.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)

	if err := s.app.Unmount(); err != nil {
		s.logger.Debug("unmount error", "error", err)
	}
	s.conn.Close()
	metrics.RecordSessionEnd()

	if s.onClose != nil {
		s.onClose()
	}
	s.logger.Info("session closed")
}
