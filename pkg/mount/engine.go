// Package mount materializes virtual node trees into live nodes and
// tears them down again.
//
// The Engine owns the association between a virtual node and the live
// resources it produced: a side table from node identity to live handle
// plus the event-listener registrations made at mount time. The
// association exists exactly between a successful Mount and the
// matching Destroy; Destroy always clears it.
package mount

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/loomui/loom/internal/errors"
	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/vdom"
)

// binding is the transient mount-state of one virtual node.
type binding struct {
	node      *dom.Node
	listeners map[string]*dom.Listener
}

// Engine mounts and destroys virtual trees against a live document.
type Engine struct {
	live map[*vdom.VNode]*binding
}

// NewEngine creates an engine with an empty side table.
func NewEngine() *Engine {
	return &Engine{
		live: make(map[*vdom.VNode]*binding),
	}
}

// Mount materializes v under parent. Children are mounted in order;
// fragments splice their children directly into parent. An unrecognized
// node kind is a construction-layer bug and aborts the mount.
func (e *Engine) Mount(parent *dom.Node, v *vdom.VNode) error {
	if parent == nil {
		return errors.New(errors.CodeMountTargetMissing)
	}
	if v == nil {
		return errors.New(errors.CodeUnsupportedNodeType).
			WithDetail("mount reached a nil virtual node")
	}

	doc := parent.Document()

	switch v.Kind {
	case vdom.KindText:
		n := doc.CreateText(v.Text)
		e.live[v] = &binding{node: n}
		parent.AppendChild(n)
		return nil

	case vdom.KindElement:
		n := doc.CreateElement(v.Tag)
		b := &binding{node: n}
		e.applyProps(n, b, v.Props)
		e.live[v] = b
		for _, child := range v.Children {
			if err := e.Mount(n, child); err != nil {
				return err
			}
		}
		parent.AppendChild(n)
		return nil

	case vdom.KindFragment:
		container := doc.CreateFragment()
		for _, child := range v.Children {
			if err := e.Mount(container, child); err != nil {
				return err
			}
		}
		e.live[v] = &binding{node: container}
		parent.AppendChild(container)
		return nil

	default:
		return errors.New(errors.CodeUnsupportedNodeType).
			WithDetail("mount reached a node with kind %d (%s)", v.Kind, v.Kind)
	}
}

// applyProps applies class, style, events, and residual attributes to a
// freshly created element. Listener handles are recorded per event name
// so Destroy removes exactly the registrations made here.
func (e *Engine) applyProps(n *dom.Node, b *binding, props vdom.Props) {
	switch c := props.Class.(type) {
	case vdom.ClassName:
		// String form replaces the element's whole class attribute.
		n.SetClass(string(c))
	case vdom.ClassList:
		// List form adds without clearing existing classes.
		for _, class := range c {
			n.AddClass(class)
		}
	}

	for _, prop := range sortedKeys(props.Styles) {
		n.SetStyle(prop, props.Styles[prop])
	}

	for _, a := range props.Attrs {
		if a.IsEmpty() {
			continue
		}
		if a.Value == nil {
			n.RemoveAttribute(a.Key)
			continue
		}
		n.SetAttribute(a.Key, formatAttrValue(a.Value))
	}

	for _, name := range sortedEventNames(props.Events) {
		if b.listeners == nil {
			b.listeners = make(map[string]*dom.Listener, len(props.Events))
		}
		b.listeners[name] = n.AddEventListener(name, props.Events[name])
	}
}

// Destroy detaches and releases every live node and listener associated
// with v. Children are destroyed regardless of whether the node itself
// could be detached; a missing parent must never suppress nested
// cleanup. Destroying a node that was never mounted, or destroying
// twice, leaves no dangling reference and reports no error.
func (e *Engine) Destroy(v *vdom.VNode) error {
	if v == nil {
		return errors.New(errors.CodeUnsupportedNodeType).
			WithDetail("destroy reached a nil virtual node")
	}

	b := e.live[v]

	switch v.Kind {
	case vdom.KindText:
		if b != nil && b.node.Parent() != nil {
			b.node.Remove()
		}
		delete(e.live, v)
		return nil

	case vdom.KindElement:
		if b != nil && b.node.Parent() != nil {
			b.node.Remove()
		}
		var firstErr error
		for _, child := range v.Children {
			if err := e.Destroy(child); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if b != nil {
			for _, name := range sortedListenerNames(b.listeners) {
				b.node.RemoveEventListener(b.listeners[name])
			}
			b.listeners = nil
		}
		delete(e.live, v)
		return firstErr

	case vdom.KindFragment:
		var firstErr error
		for _, child := range v.Children {
			if err := e.Destroy(child); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		// The transient container was retired at splice time; there is
		// no independent live node to detach.
		delete(e.live, v)
		return firstErr

	default:
		return errors.New(errors.CodeUnsupportedNodeType).
			WithDetail("destroy reached a node with kind %d (%s)", v.Kind, v.Kind)
	}
}

// Live returns the live node v produced, or nil if v is not mounted.
func (e *Engine) Live(v *vdom.VNode) *dom.Node {
	if b, ok := e.live[v]; ok {
		return b.node
	}
	return nil
}

// Mounted reports whether v currently holds a live back-reference.
func (e *Engine) Mounted(v *vdom.VNode) bool {
	_, ok := e.live[v]
	return ok
}

// Size returns the number of virtual nodes with live back-references.
func (e *Engine) Size() int {
	return len(e.live)
}

// ListenerCount returns the number of listener registrations the engine
// currently holds across all mounted nodes.
func (e *Engine) ListenerCount() int {
	total := 0
	for _, b := range e.live {
		total += len(b.listeners)
	}
	return total
}

// formatAttrValue renders a residual attribute value the way the wire
// and HTML layers expect.
func formatAttrValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEventNames(m map[string]vdom.HandlerFunc) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedListenerNames(m map[string]*dom.Listener) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
