package dom

import (
	"strings"

	"github.com/loomui/loom/pkg/vdom"
)

// HTML renders the live tree rooted at n to an HTML string. Attribute
// and style keys are emitted in sorted order so output is stable for
// assertions and snapshots.
func (n *Node) HTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// HTML renders the whole document body.
func (d *Document) HTML() string {
	return d.body.HTML()
}

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.kind {
	case KindText:
		b.WriteString(escapeHTML(n.text))

	case KindFragment:
		for _, c := range n.children {
			c.writeHTML(b)
		}

	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.tag)

		if len(n.classes) > 0 {
			b.WriteString(` class="`)
			b.WriteString(escapeAttr(strings.Join(n.classes, " ")))
			b.WriteByte('"')
		}
		if len(n.styles) > 0 {
			b.WriteString(` style="`)
			for i, prop := range n.sortedStyleKeys() {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(escapeAttr(prop))
				b.WriteString(": ")
				b.WriteString(escapeAttr(n.styles[prop]))
				b.WriteByte(';')
			}
			b.WriteByte('"')
		}
		for _, key := range n.sortedAttrKeys() {
			b.WriteByte(' ')
			b.WriteString(key)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(n.attrs[key]))
			b.WriteByte('"')
		}

		if vdom.IsVoidElement(n.tag) && len(n.children) == 0 {
			b.WriteString(">")
			return
		}

		b.WriteByte('>')
		for _, c := range n.children {
			c.writeHTML(b)
		}
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteByte('>')
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities it escapes whitespace
// characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
