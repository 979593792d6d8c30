package dom

import (
	"sort"
	"strings"

	"github.com/loomui/loom/pkg/vdom"
)

// Node is a live presentation node. Nodes are created through a
// Document and keep parent/child links, attributes, classes, inline
// styles, and event listeners.
type Node struct {
	doc      *Document
	id       uint64
	kind     Kind
	tag      string
	text     string
	parent   *Node
	children []*Node
	attrs    map[string]string
	classes  []string
	styles   map[string]string
	handlers map[string][]*Listener
}

// ID returns the node's document-unique identity.
func (n *Node) ID() uint64 { return n.id }

// Document returns the document that owns this node.
func (n *Node) Document() *Document { return n.doc }

// Kind returns the live node type.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag name; empty for text and fragment nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil for detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered child list. The returned slice is the
// node's own; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// GetAttribute returns the attribute value and whether it is set.
func (n *Node) GetAttribute(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// ClassAttr returns the space-joined class attribute.
func (n *Node) ClassAttr() string {
	return strings.Join(n.classes, " ")
}

// HasClass reports whether the class is present.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// StyleValue returns the inline style property value.
func (n *Node) StyleValue(prop string) string {
	return n.styles[prop]
}

// AppendChild appends child to n. Appending a fragment splices the
// fragment's children into n and retires the emptied container.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}

	if child.kind == KindFragment {
		moved := child.children
		child.children = nil
		for _, c := range moved {
			c.parent = n
			n.children = append(n.children, c)
			n.doc.emit(Op{Kind: OpAppend, Parent: n.id, Node: c.id})
		}
		n.doc.forget(child)
		return
	}

	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.doc.emit(Op{Kind: OpAppend, Parent: n.id, Node: child.id})
}

// Remove detaches n from its parent. The subtree stays intact but is
// released from the document's ID index: the kernel never re-attaches
// a detached tree. Removing a detached node is a no-op.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	n.parent.detach(n)
	n.parent = nil
	n.doc.forget(n)
	n.doc.emit(Op{Kind: OpRemove, Node: n.id})
}

// detach removes child from n's child list without emitting an op.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// SetAttribute sets an attribute value.
func (n *Node) SetAttribute(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	n.doc.emit(Op{Kind: OpSetAttr, Node: n.id, Key: key, Value: value})
}

// RemoveAttribute removes an attribute. Removing an unset attribute is
// a no-op.
func (n *Node) RemoveAttribute(key string) {
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	n.doc.emit(Op{Kind: OpRemoveAttr, Node: n.id, Key: key})
}

// SetStyle sets a single inline style property.
func (n *Node) SetStyle(prop, value string) {
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[prop] = value
	n.doc.emit(Op{Kind: OpSetStyle, Node: n.id, Key: prop, Value: value})
}

// RemoveStyle removes a single inline style property.
func (n *Node) RemoveStyle(prop string) {
	if _, ok := n.styles[prop]; !ok {
		return
	}
	delete(n.styles, prop)
	n.doc.emit(Op{Kind: OpRemoveStyle, Node: n.id, Key: prop})
}

// SetClass replaces the element's entire class attribute.
func (n *Node) SetClass(value string) {
	n.classes = n.classes[:0]
	for _, c := range strings.Fields(value) {
		n.classes = append(n.classes, c)
	}
	n.doc.emit(Op{Kind: OpSetClass, Node: n.id, Value: value})
}

// AddClass adds a single class without clearing existing ones. Adding a
// class that is already present is a no-op.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
	n.doc.emit(Op{Kind: OpAddClass, Node: n.id, Value: class})
}

// SetText replaces the content of a text node.
func (n *Node) SetText(text string) {
	n.text = text
	n.doc.emit(Op{Kind: OpSetText, Node: n.id, Value: text})
}

// sortedAttrKeys returns attribute keys in deterministic order.
func (n *Node) sortedAttrKeys() []string {
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedStyleKeys returns style property names in deterministic order.
func (n *Node) sortedStyleKeys() []string {
	keys := make([]string, 0, len(n.styles))
	for k := range n.styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Listener is the handle for a registered event listener. The mount
// engine records handles at mount time and removes exactly those
// handles at destroy time.
type Listener struct {
	node    *Node
	name    string
	fn      vdom.HandlerFunc
	removed bool
}

// Name returns the event name the listener is registered for.
func (l *Listener) Name() string { return l.name }

// AddEventListener registers fn for the named event and returns its
// handle.
func (n *Node) AddEventListener(name string, fn vdom.HandlerFunc) *Listener {
	l := &Listener{node: n, name: name, fn: fn}
	if n.handlers == nil {
		n.handlers = make(map[string][]*Listener)
	}
	n.handlers[name] = append(n.handlers[name], l)
	n.doc.emit(Op{Kind: OpListen, Node: n.id, Key: name})
	return l
}

// RemoveEventListener removes exactly the given registration. Removing
// a nil or already-removed handle is a no-op.
func (n *Node) RemoveEventListener(l *Listener) {
	if l == nil || l.removed || l.node != n {
		return
	}
	l.removed = true
	ls := n.handlers[l.name]
	for i, cur := range ls {
		if cur == l {
			n.handlers[l.name] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(n.handlers[l.name]) == 0 {
		delete(n.handlers, l.name)
	}
	n.doc.emit(Op{Kind: OpUnlisten, Node: n.id, Key: l.name})
}

// ListenerCount returns the number of registrations for the named
// event, or the total across all events if name is empty.
func (n *Node) ListenerCount(name string) int {
	if name != "" {
		return len(n.handlers[name])
	}
	total := 0
	for _, ls := range n.handlers {
		total += len(ls)
	}
	return total
}

// DispatchEvent invokes the listeners registered for e.Name in
// registration order.
func (n *Node) DispatchEvent(e vdom.Event) {
	// Copy first: a handler may unsubscribe during dispatch.
	ls := append([]*Listener(nil), n.handlers[e.Name]...)
	for _, l := range ls {
		if !l.removed {
			l.fn(e)
		}
	}
}
