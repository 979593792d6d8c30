package dom

// OpKind is the type of document mutation.
type OpKind uint8

const (
	OpCreateElement  OpKind = 0x01 // Create an element node
	OpCreateText     OpKind = 0x02 // Create a text node
	OpCreateFragment OpKind = 0x03 // Create a fragment container
	OpAppend         OpKind = 0x04 // Append node to parent
	OpRemove         OpKind = 0x05 // Detach node from its parent
	OpSetAttr        OpKind = 0x06 // Set attribute
	OpRemoveAttr     OpKind = 0x07 // Remove attribute
	OpSetStyle       OpKind = 0x08 // Set inline style property
	OpRemoveStyle    OpKind = 0x09 // Remove inline style property
	OpSetClass       OpKind = 0x0A // Replace the whole class attribute
	OpAddClass       OpKind = 0x0B // Add a single class
	OpSetText        OpKind = 0x0C // Replace text content
	OpListen         OpKind = 0x0D // Start forwarding an event
	OpUnlisten       OpKind = 0x0E // Stop forwarding an event
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpCreateFragment:
		return "CreateFragment"
	case OpAppend:
		return "Append"
	case OpRemove:
		return "Remove"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpSetClass:
		return "SetClass"
	case OpAddClass:
		return "AddClass"
	case OpSetText:
		return "SetText"
	case OpListen:
		return "Listen"
	case OpUnlisten:
		return "Unlisten"
	default:
		return "Unknown"
	}
}

// Op describes a single document mutation. Which fields are meaningful
// depends on Kind: creation ops carry Node and Tag or Value, Append
// carries Parent and Node, attribute/style ops carry Key and Value.
type Op struct {
	Kind   OpKind
	Node   uint64 // Target node ID
	Parent uint64 // Parent node ID (Append only)
	Tag    string // Element tag (CreateElement only)
	Key    string // Attribute/style property or event name
	Value  string // Attribute/style/text value
}
