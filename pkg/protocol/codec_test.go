package protocol

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1<<32 - 1, 1<<64 - 1}

	enc := NewEncoder()
	for _, v := range values {
		enc.WriteUvarint(v)
	}

	dec := NewDecoder(enc.Bytes())
	for _, want := range values {
		got, err := dec.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint: %v", err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
	if !dec.EOF() {
		t.Errorf("Remaining = %d, want 0", dec.Remaining())
	}
}

func TestStringRoundTrip(t *testing.T) {
	values := []string{"", "a", "héllo wörld", strings.Repeat("x", 1000)}

	enc := NewEncoder()
	for _, s := range values {
		enc.WriteString(s)
	}

	dec := NewDecoder(enc.Bytes())
	for _, want := range values {
		got, err := dec.ReadString()
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestDecoderTruncation(t *testing.T) {
	t.Run("empty byte", func(t *testing.T) {
		dec := NewDecoder(nil)
		if _, err := dec.ReadByte(); err != io.ErrUnexpectedEOF {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})

	t.Run("cut varint", func(t *testing.T) {
		dec := NewDecoder([]byte{0x80, 0x80})
		if _, err := dec.ReadUvarint(); err != io.ErrUnexpectedEOF {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})

	t.Run("cut string body", func(t *testing.T) {
		enc := NewEncoder()
		enc.WriteString("hello")
		dec := NewDecoder(enc.Bytes()[:3])
		if _, err := dec.ReadString(); err != io.ErrUnexpectedEOF {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})

	t.Run("varint overflow", func(t *testing.T) {
		overlong := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
		dec := NewDecoder(overlong)
		if _, err := dec.ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
			t.Errorf("err = %v, want ErrVarintOverflow", err)
		}
	})

	t.Run("oversized string length", func(t *testing.T) {
		enc := NewEncoder()
		enc.WriteUvarint(MaxStringLen + 1)
		dec := NewDecoder(enc.Bytes())
		if _, err := dec.ReadString(); !errors.Is(err, ErrStringTooLong) {
			t.Errorf("err = %v, want ErrStringTooLong", err)
		}
	})
}

func TestEncoderReset(t *testing.T) {
	enc := NewEncoder()
	enc.WriteString("abc")
	if enc.Len() == 0 {
		t.Fatal("encoder empty after write")
	}
	enc.Reset()
	if enc.Len() != 0 {
		t.Errorf("Len after Reset = %d", enc.Len())
	}
	enc.WriteByte(0x7F)
	if enc.Len() != 1 || enc.Bytes()[0] != 0x7F {
		t.Errorf("Bytes after Reset = %v", enc.Bytes())
	}
}
