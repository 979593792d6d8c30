package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText     Kind = iota // Plain text node
	KindElement              // <div>, <button>, etc.
	KindFragment             // Grouping without wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// VNode is a virtual node: an in-memory description of a piece of
// presentation, independent of any live resource. Text nodes use Text,
// element nodes use Tag/Props/Children, fragments use only Children.
type VNode struct {
	Kind     Kind     // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes, classes, styles, event handlers
	Children []*VNode // Child nodes
	Text     string   // For KindText
}

// Props holds everything attached to an element, split by how the mount
// engine applies it. Attrs is the ordered residual list; class, style,
// and events get dedicated treatment.
type Props struct {
	Class  ClassValue        // Replace-whole or additive, see ClassName/ClassList
	Styles map[string]string // Inline styles, set property by property
	Events map[string]HandlerFunc
	Attrs  []Attr
}

// IsInteractive returns true if this node has event handlers attached.
func (v *VNode) IsInteractive() bool {
	return v != nil && v.Kind == KindElement && len(v.Props.Events) > 0
}

// ClassValue is the class prop. The two concrete forms are not
// equivalent: ClassName replaces the element's entire class attribute,
// ClassList adds classes without clearing existing ones.
type ClassValue interface {
	isClassValue()
}

// ClassName replaces the whole class attribute.
type ClassName string

func (ClassName) isClassValue() {}

// ClassList adds each class without clearing existing classes.
type ClassList []string

func (ClassList) isClassValue() {}

// Style is an inline-style mapping accepted as a constructor argument.
type Style map[string]string

// Attr represents a single attribute. A nil Value removes the attribute
// at mount time instead of setting it.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Event is delivered to handlers when a live node fires.
type Event struct {
	Name  string // Event name (e.g., "click", "input")
	Value string // Event value, if any (input text, key name)
}

// HandlerFunc handles a live event.
type HandlerFunc func(Event)

// EventHandler pairs an event name with its handler for the variadic
// element constructors.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler HandlerFunc
}
