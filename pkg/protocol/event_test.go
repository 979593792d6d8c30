package protocol

import "testing"

func TestEventRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  EventMessage
	}{
		{"click", EventMessage{Target: 7, Name: "click"}},
		{"input with value", EventMessage{Target: 12, Name: "input", Value: "typed text"}},
		{"zero target", EventMessage{Name: "blur"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeEvent(EncodeEvent(&tt.msg))
			if err != nil {
				t.Fatalf("DecodeEvent: %v", err)
			}
			if *decoded != tt.msg {
				t.Errorf("decoded = %+v, want %+v", *decoded, tt.msg)
			}
		})
	}
}

func TestEventTruncated(t *testing.T) {
	payload := EncodeEvent(&EventMessage{Target: 3, Name: "click", Value: "x"})
	if _, err := DecodeEvent(payload[:2]); err == nil {
		t.Error("DecodeEvent accepted truncated payload")
	}
}

func TestHandshakeRoundTrip(t *testing.T) {
	h := Handshake{Version: Version, SessionID: "abc123"}
	decoded, err := DecodeHandshake(EncodeHandshake(&h))
	if err != nil {
		t.Fatalf("DecodeHandshake: %v", err)
	}
	if *decoded != h {
		t.Errorf("decoded = %+v, want %+v", *decoded, h)
	}
}

func TestControlFrames(t *testing.T) {
	ping := PingFrame()
	if ping.Type != FrameControl || len(ping.Payload) != 1 || ping.Payload[0] != ControlPing {
		t.Errorf("ping frame = %+v", ping)
	}
	pong := PongFrame()
	if pong.Type != FrameControl || pong.Payload[0] != ControlPong {
		t.Errorf("pong frame = %+v", pong)
	}
}

func TestErrorFrameRoundTrip(t *testing.T) {
	f := ErrorFrame("E141", "unknown target")
	if f.Type != FrameError {
		t.Fatalf("Type = %v, want FrameError", f.Type)
	}
	code, message, err := DecodeError(f.Payload)
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if code != "E141" || message != "unknown target" {
		t.Errorf("decoded = %q %q", code, message)
	}
}
