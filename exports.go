package loom

import "github.com/loomui/loom/pkg/vdom"

// Re-exports so application code can stay on a single import:
//
//	import "github.com/loomui/loom"
//
//	loom.Div(loom.Text("hi"))
//
// The full element and attribute vocabulary lives in pkg/vdom; only
// the types and the most common constructors are mirrored here.

// VNode is an alias for vdom.VNode.
type VNode = vdom.VNode

// Kind is an alias for vdom.Kind.
type Kind = vdom.Kind

// Props is an alias for vdom.Props.
type Props = vdom.Props

// Event is an alias for vdom.Event.
type Event = vdom.Event

// Attr is an alias for vdom.Attr.
type Attr = vdom.Attr

// ClassName is an alias for vdom.ClassName.
type ClassName = vdom.ClassName

// ClassList is an alias for vdom.ClassList.
type ClassList = vdom.ClassList

// Style is an alias for vdom.Style.
type Style = vdom.Style

// Re-export Kind constants.
const (
	KindText     = vdom.KindText
	KindElement  = vdom.KindElement
	KindFragment = vdom.KindFragment
)

// Text creates a text node.
func Text(s string) *VNode { return vdom.Text(s) }

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode { return vdom.Textf(format, args...) }

// Fragment groups children without introducing an element.
func Fragment(children ...any) *VNode { return vdom.Fragment(children...) }

// El creates an element node with the given tag.
func El(tag string, args ...any) *VNode { return vdom.El(tag, args...) }

// Common element constructors.
var (
	Div    = vdom.Div
	Span   = vdom.Span
	P      = vdom.P
	Button = vdom.Button
	Input  = vdom.Input
	Ul     = vdom.Ul
	Li     = vdom.Li
	H1     = vdom.H1
	H2     = vdom.H2
	A      = vdom.A
)

// Common event helpers.
var (
	On      = vdom.On
	OnClick = vdom.OnClick
	OnInput = vdom.OnInput
)
