package protocol

// EventMessage is a client-side interaction forwarded to the server:
// the live node it targets, the event name, and an optional value
// (current input text for "input" and "change" events).
type EventMessage struct {
	Target uint64
	Name   string
	Value  string
}

// EncodeEvent encodes an event message into an event-frame payload.
func EncodeEvent(m *EventMessage) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(m.Target)
	enc.WriteString(m.Name)
	enc.WriteString(m.Value)
	return enc.Bytes()
}

// DecodeEvent decodes an event-frame payload.
func DecodeEvent(payload []byte) (*EventMessage, error) {
	dec := NewDecoder(payload)

	target, err := dec.ReadUvarint()
	if err != nil {
		return nil, err
	}
	name, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	value, err := dec.ReadString()
	if err != nil {
		return nil, err
	}

	return &EventMessage{Target: target, Name: name, Value: value}, nil
}

// Control payload bytes.
const (
	ControlPing byte = 0x01
	ControlPong byte = 0x02
)

// PingFrame builds a keepalive ping frame.
func PingFrame() *Frame {
	return NewFrame(FrameControl, []byte{ControlPing})
}

// PongFrame builds a keepalive pong frame.
func PongFrame() *Frame {
	return NewFrame(FrameControl, []byte{ControlPong})
}

// Handshake is exchanged once when a session opens. The server sends
// its protocol version and the session ID assigned to the connection.
type Handshake struct {
	Version   uint64
	SessionID string
}

// Version is the current protocol version.
const Version = 1

// EncodeHandshake encodes a handshake payload.
func EncodeHandshake(h *Handshake) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(h.Version)
	enc.WriteString(h.SessionID)
	return enc.Bytes()
}

// DecodeHandshake decodes a handshake payload.
func DecodeHandshake(payload []byte) (*Handshake, error) {
	dec := NewDecoder(payload)

	version, err := dec.ReadUvarint()
	if err != nil {
		return nil, err
	}
	sessionID, err := dec.ReadString()
	if err != nil {
		return nil, err
	}

	return &Handshake{Version: version, SessionID: sessionID}, nil
}

// ErrorFrame builds an error frame carrying a code and message.
func ErrorFrame(code, message string) *Frame {
	enc := NewEncoder()
	enc.WriteString(code)
	enc.WriteString(message)
	return NewFrame(FrameError, enc.Bytes())
}

// DecodeError decodes an error-frame payload into code and message.
func DecodeError(payload []byte) (code, message string, err error) {
	dec := NewDecoder(payload)
	if code, err = dec.ReadString(); err != nil {
		return "", "", err
	}
	if message, err = dec.ReadString(); err != nil {
		return "", "", err
	}
	return code, message, nil
}
