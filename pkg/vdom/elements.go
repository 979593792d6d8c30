package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, ClassName, ClassList, Style,
// EventHandler, *VNode, []*VNode, string. Nil entries are dropped and
// raw strings are coerced into text nodes; child order is preserved.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes and children)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case ClassName:
			node.Props.Class = v

		case ClassList:
			if existing, ok := node.Props.Class.(ClassList); ok {
				node.Props.Class = append(existing, v...)
			} else {
				node.Props.Class = v
			}

		case Style:
			if node.Props.Styles == nil {
				node.Props.Styles = make(map[string]string, len(v))
			}
			for prop, val := range v {
				node.Props.Styles[prop] = val
			}

		case EventHandler:
			if v.Handler == nil {
				continue
			}
			if node.Props.Events == nil {
				node.Props.Events = make(map[string]HandlerFunc)
			}
			node.Props.Events[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// setAttr records a residual attribute, keeping order and letting the
// latest value for a key win.
func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	for i := range v.Props.Attrs {
		if v.Props.Attrs[i].Key == a.Key {
			v.Props.Attrs[i].Value = a.Value
			return
		}
	}
	v.Props.Attrs = append(v.Props.Attrs, a)
}

// Document structure elements

func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Article(args ...any) *VNode { return El("article", args...) }
func Aside(args ...any) *VNode   { return El("aside", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }
func H4(args ...any) *VNode      { return El("h4", args...) }

// Text content elements

func Div(args ...any) *VNode        { return El("div", args...) }
func P(args ...any) *VNode          { return El("p", args...) }
func Span(args ...any) *VNode       { return El("span", args...) }
func Pre(args ...any) *VNode        { return El("pre", args...) }
func Blockquote(args ...any) *VNode { return El("blockquote", args...) }
func Ul(args ...any) *VNode         { return El("ul", args...) }
func Ol(args ...any) *VNode         { return El("ol", args...) }
func Li(args ...any) *VNode         { return El("li", args...) }
func Hr(args ...any) *VNode         { return El("hr", args...) }

// Inline text semantics

func A(args ...any) *VNode      { return El("a", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }
func Em(args ...any) *VNode     { return El("em", args...) }
func Small(args ...any) *VNode  { return El("small", args...) }
func Code(args ...any) *VNode   { return El("code", args...) }
func Br(args ...any) *VNode     { return El("br", args...) }

// Form elements

func Form(args ...any) *VNode     { return El("form", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }

// Table elements

func Table(args ...any) *VNode { return El("table", args...) }
func Thead(args ...any) *VNode { return El("thead", args...) }
func Tbody(args ...any) *VNode { return El("tbody", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Th(args ...any) *VNode    { return El("th", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }

// Media elements

func Img(args ...any) *VNode    { return El("img", args...) }
func Canvas(args ...any) *VNode { return El("canvas", args...) }
