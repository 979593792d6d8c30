package protocol

import (
	"fmt"

	"github.com/loomui/loom/pkg/dom"
)

// EncodeOps encodes a batch of tree operations into an ops-frame payload.
// The batch is prefixed with its length; each op starts with its kind
// byte followed by kind-specific operands. A batch whose encoding would
// not fit a single frame yields ErrFrameTooLarge; callers split batches
// with ChunkOps first.
func EncodeOps(ops []dom.Op) ([]byte, error) {
	if len(ops) > MaxOpsPerFrame {
		return nil, ErrTooManyOps
	}

	enc := NewEncoder()
	enc.WriteUvarint(uint64(len(ops)))

	for _, op := range ops {
		enc.WriteByte(byte(op.Kind))

		switch op.Kind {
		case dom.OpCreateElement:
			enc.WriteUvarint(op.Node)
			enc.WriteString(op.Tag)

		case dom.OpCreateText:
			enc.WriteUvarint(op.Node)
			enc.WriteString(op.Value)

		case dom.OpCreateFragment:
			enc.WriteUvarint(op.Node)

		case dom.OpAppend:
			enc.WriteUvarint(op.Parent)
			enc.WriteUvarint(op.Node)

		case dom.OpRemove:
			enc.WriteUvarint(op.Node)

		case dom.OpSetAttr, dom.OpSetStyle:
			enc.WriteUvarint(op.Node)
			enc.WriteString(op.Key)
			enc.WriteString(op.Value)

		case dom.OpRemoveAttr, dom.OpRemoveStyle:
			enc.WriteUvarint(op.Node)
			enc.WriteString(op.Key)

		case dom.OpSetClass, dom.OpAddClass, dom.OpSetText:
			enc.WriteUvarint(op.Node)
			enc.WriteString(op.Value)

		case dom.OpListen, dom.OpUnlisten:
			enc.WriteUvarint(op.Node)
			enc.WriteString(op.Key)

		default:
			return nil, fmt.Errorf("protocol: unknown op kind 0x%02X", byte(op.Kind))
		}
	}

	if enc.Len() > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	return enc.Bytes(), nil
}

// opCountPrefixSize is the worst-case size of the batch length prefix.
const opCountPrefixSize = 3 // uvarint(MaxOpsPerFrame)

// ChunkOps splits ops into batches whose encoded payloads each fit in
// a single frame. Order is preserved across batches. A single op too
// large to fit any frame yields ErrFrameTooLarge; the op stream cannot
// be mirrored without splitting the underlying mutation.
func ChunkOps(ops []dom.Op) ([][]dom.Op, error) {
	const budget = MaxPayloadSize - opCountPrefixSize

	var batches [][]dom.Op
	start, size := 0, 0
	for i, op := range ops {
		n := opSize(op)
		if n > budget {
			return nil, ErrFrameTooLarge
		}
		if size+n > budget {
			batches = append(batches, ops[start:i])
			start, size = i, 0
		}
		size += n
	}
	if start < len(ops) {
		batches = append(batches, ops[start:])
	}
	return batches, nil
}

// opSize returns the encoded size of op in bytes, including the kind
// byte. Every op carries its node ID; the remaining operands vary by
// kind. Unknown kinds size as a bare ID and fail later in EncodeOps.
func opSize(op dom.Op) int {
	n := 1 + uvarintSize(op.Node)
	switch op.Kind {
	case dom.OpCreateElement:
		n += stringSize(op.Tag)
	case dom.OpCreateText, dom.OpSetClass, dom.OpAddClass, dom.OpSetText:
		n += stringSize(op.Value)
	case dom.OpAppend:
		n += uvarintSize(op.Parent)
	case dom.OpSetAttr, dom.OpSetStyle:
		n += stringSize(op.Key) + stringSize(op.Value)
	case dom.OpRemoveAttr, dom.OpRemoveStyle, dom.OpListen, dom.OpUnlisten:
		n += stringSize(op.Key)
	}
	return n
}

func uvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func stringSize(s string) int {
	return uvarintSize(uint64(len(s))) + len(s)
}

// DecodeOps decodes an ops-frame payload back into a batch of operations.
func DecodeOps(payload []byte) ([]dom.Op, error) {
	dec := NewDecoder(payload)

	count, err := dec.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count > MaxOpsPerFrame {
		return nil, ErrTooManyOps
	}

	ops := make([]dom.Op, 0, count)
	for i := uint64(0); i < count; i++ {
		kindByte, err := dec.ReadByte()
		if err != nil {
			return nil, err
		}

		op := dom.Op{Kind: dom.OpKind(kindByte)}

		switch op.Kind {
		case dom.OpCreateElement:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Tag, err = dec.ReadString(); err != nil {
				return nil, err
			}

		case dom.OpCreateText:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Value, err = dec.ReadString(); err != nil {
				return nil, err
			}

		case dom.OpCreateFragment:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}

		case dom.OpAppend:
			if op.Parent, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}

		case dom.OpRemove:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}

		case dom.OpSetAttr, dom.OpSetStyle:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Key, err = dec.ReadString(); err != nil {
				return nil, err
			}
			if op.Value, err = dec.ReadString(); err != nil {
				return nil, err
			}

		case dom.OpRemoveAttr, dom.OpRemoveStyle:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Key, err = dec.ReadString(); err != nil {
				return nil, err
			}

		case dom.OpSetClass, dom.OpAddClass, dom.OpSetText:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Value, err = dec.ReadString(); err != nil {
				return nil, err
			}

		case dom.OpListen, dom.OpUnlisten:
			if op.Node, err = dec.ReadUvarint(); err != nil {
				return nil, err
			}
			if op.Key, err = dec.ReadString(); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("protocol: unknown op kind 0x%02X", kindByte)
		}

		ops = append(ops, op)
	}

	return ops, nil
}
