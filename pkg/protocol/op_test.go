package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/loomui/loom/pkg/dom"
)

func TestOpsRoundTrip(t *testing.T) {
	ops := []dom.Op{
		{Kind: dom.OpCreateElement, Node: 2, Tag: "div"},
		{Kind: dom.OpCreateText, Node: 3, Value: "hello"},
		{Kind: dom.OpCreateFragment, Node: 4},
		{Kind: dom.OpSetAttr, Node: 2, Key: "id", Value: "root"},
		{Kind: dom.OpRemoveAttr, Node: 2, Key: "hidden"},
		{Kind: dom.OpSetStyle, Node: 2, Key: "color", Value: "red"},
		{Kind: dom.OpRemoveStyle, Node: 2, Key: "color"},
		{Kind: dom.OpSetClass, Node: 2, Value: "a b"},
		{Kind: dom.OpAddClass, Node: 2, Value: "c"},
		{Kind: dom.OpSetText, Node: 3, Value: "updated"},
		{Kind: dom.OpListen, Node: 2, Key: "click"},
		{Kind: dom.OpUnlisten, Node: 2, Key: "click"},
		{Kind: dom.OpAppend, Parent: 1, Node: 2},
		{Kind: dom.OpRemove, Node: 2},
	}

	payload, err := EncodeOps(ops)
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}

	decoded, err := DecodeOps(payload)
	if err != nil {
		t.Fatalf("DecodeOps: %v", err)
	}
	if len(decoded) != len(ops) {
		t.Fatalf("decoded %d ops, want %d", len(decoded), len(ops))
	}
	for i, want := range ops {
		if decoded[i] != want {
			t.Errorf("op %d = %+v, want %+v", i, decoded[i], want)
		}
	}
}

func TestOpsEmpty(t *testing.T) {
	payload, err := EncodeOps(nil)
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}
	decoded, err := DecodeOps(payload)
	if err != nil {
		t.Fatalf("DecodeOps: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded %d ops, want 0", len(decoded))
	}
}

func TestOpsUnknownKind(t *testing.T) {
	if _, err := EncodeOps([]dom.Op{{Kind: dom.OpKind(0xEE)}}); err == nil {
		t.Error("EncodeOps accepted unknown kind")
	}

	enc := NewEncoder()
	enc.WriteUvarint(1)
	enc.WriteByte(0xEE)
	if _, err := DecodeOps(enc.Bytes()); err == nil {
		t.Error("DecodeOps accepted unknown opcode")
	}
}

func TestOpsTooMany(t *testing.T) {
	ops := make([]dom.Op, MaxOpsPerFrame+1)
	for i := range ops {
		ops[i] = dom.Op{Kind: dom.OpRemove, Node: uint64(i)}
	}
	if _, err := EncodeOps(ops); !errors.Is(err, ErrTooManyOps) {
		t.Errorf("err = %v, want ErrTooManyOps", err)
	}

	enc := NewEncoder()
	enc.WriteUvarint(MaxOpsPerFrame + 1)
	if _, err := DecodeOps(enc.Bytes()); !errors.Is(err, ErrTooManyOps) {
		t.Errorf("decode err = %v, want ErrTooManyOps", err)
	}
}

func TestOpsPayloadTooLarge(t *testing.T) {
	// One text op can exceed the frame payload limit on its own; the
	// encoder must refuse rather than hand back a payload whose length
	// wraps the frame header's 2-byte field.
	ops := []dom.Op{{Kind: dom.OpSetText, Node: 2, Value: strings.Repeat("x", MaxPayloadSize+1)}}
	if _, err := EncodeOps(ops); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestChunkOps(t *testing.T) {
	t.Run("small batch stays whole", func(t *testing.T) {
		ops := []dom.Op{
			{Kind: dom.OpCreateElement, Node: 2, Tag: "div"},
			{Kind: dom.OpAppend, Parent: 1, Node: 2},
		}
		batches, err := ChunkOps(ops)
		if err != nil {
			t.Fatalf("ChunkOps: %v", err)
		}
		if len(batches) != 1 || len(batches[0]) != 2 {
			t.Fatalf("batches = %v", batches)
		}
	})

	t.Run("large batch splits within the limit", func(t *testing.T) {
		value := strings.Repeat("y", 1000)
		ops := make([]dom.Op, 200)
		for i := range ops {
			ops[i] = dom.Op{Kind: dom.OpSetText, Node: uint64(i + 2), Value: value}
		}

		batches, err := ChunkOps(ops)
		if err != nil {
			t.Fatalf("ChunkOps: %v", err)
		}
		if len(batches) < 2 {
			t.Fatalf("batches = %d, want the ops split across frames", len(batches))
		}

		var total int
		for _, batch := range batches {
			payload, err := EncodeOps(batch)
			if err != nil {
				t.Fatalf("EncodeOps: %v", err)
			}
			if len(payload) > MaxPayloadSize {
				t.Errorf("batch payload %d bytes exceeds limit", len(payload))
			}
			total += len(batch)
		}
		if total != len(ops) {
			t.Errorf("chunked %d ops, want %d", total, len(ops))
		}
		if batches[0][0] != ops[0] || batches[len(batches)-1][len(batches[len(batches)-1])-1] != ops[len(ops)-1] {
			t.Error("chunking reordered the op stream")
		}
	})

	t.Run("oversized single op rejected", func(t *testing.T) {
		ops := []dom.Op{{Kind: dom.OpCreateText, Node: 2, Value: strings.Repeat("z", MaxPayloadSize)}}
		if _, err := ChunkOps(ops); !errors.Is(err, ErrFrameTooLarge) {
			t.Errorf("err = %v, want ErrFrameTooLarge", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		batches, err := ChunkOps(nil)
		if err != nil {
			t.Fatalf("ChunkOps: %v", err)
		}
		if len(batches) != 0 {
			t.Errorf("batches = %v, want none", batches)
		}
	})
}

func TestOpsTruncated(t *testing.T) {
	payload, err := EncodeOps([]dom.Op{{Kind: dom.OpCreateElement, Node: 2, Tag: "div"}})
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}
	if _, err := DecodeOps(payload[:len(payload)-2]); err == nil {
		t.Error("DecodeOps accepted truncated payload")
	}
}
