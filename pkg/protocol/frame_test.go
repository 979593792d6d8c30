package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		ftype   FrameType
		payload []byte
	}{
		{"empty", FrameControl, nil},
		{"small", FrameEvent, []byte{1, 2, 3}},
		{"large", FrameOps, bytes.Repeat([]byte{0xAB}, 60000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.ftype, tt.payload)

			wire, err := f.Encode()
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded, err := DecodeFrame(wire)
			if err != nil {
				t.Fatalf("DecodeFrame: %v", err)
			}
			if decoded.Type != tt.ftype {
				t.Errorf("Type = %v, want %v", decoded.Type, tt.ftype)
			}
			if !bytes.Equal(decoded.Payload, tt.payload) {
				t.Errorf("payload mismatch: %d bytes vs %d", len(decoded.Payload), len(tt.payload))
			}
		})
	}
}

func TestFrameReadWrite(t *testing.T) {
	var buf bytes.Buffer

	frames := []*Frame{
		PingFrame(),
		NewFrame(FrameEvent, []byte("evt")),
		NewFrame(FrameOps, []byte{0x00}),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	for _, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("frame = %v %v, want %v %v", got.Type, got.Payload, want.Type, want.Payload)
		}
	}

	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("ReadFrame on empty buffer = %v, want io.EOF", err)
	}
}

func TestFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameOps, make([]byte, MaxPayloadSize+1))

	// Encode must refuse rather than write a wrapped length field.
	if _, err := f.Encode(); err != ErrFrameTooLarge {
		t.Errorf("Encode err = %v, want ErrFrameTooLarge", err)
	}
	if err := WriteFrame(io.Discard, f); err != ErrFrameTooLarge {
		t.Errorf("WriteFrame err = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameEncodeAtLimit(t *testing.T) {
	f := NewFrame(FrameOps, make([]byte, MaxPayloadSize))
	wire, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(wire) != FrameHeaderSize+MaxPayloadSize {
		t.Errorf("wire length = %d, want %d", len(wire), FrameHeaderSize+MaxPayloadSize)
	}
	decoded, err := DecodeFrame(wire)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if len(decoded.Payload) != MaxPayloadSize {
		t.Errorf("payload length = %d, want %d", len(decoded.Payload), MaxPayloadSize)
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	t.Run("short header", func(t *testing.T) {
		if _, err := DecodeFrame([]byte{0x01}); err != io.ErrUnexpectedEOF {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})

	t.Run("short payload", func(t *testing.T) {
		// Header claims 5 payload bytes, only 2 present.
		data := []byte{byte(FrameEvent), 0x00, 0x05, 0xAA, 0xBB}
		if _, err := DecodeFrame(data); err != io.ErrUnexpectedEOF {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ftype FrameType
		want  string
	}{
		{FrameHandshake, "Handshake"},
		{FrameEvent, "Event"},
		{FrameOps, "Ops"},
		{FrameControl, "Control"},
		{FrameError, "Error"},
		{FrameType(0xFF), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ftype.String(); got != tt.want {
			t.Errorf("FrameType(%d).String() = %q, want %q", tt.ftype, got, tt.want)
		}
	}
}
