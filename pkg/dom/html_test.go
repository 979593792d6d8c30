package dom

import "testing"

func TestHTML(t *testing.T) {
	d := NewDocument()

	div := d.CreateElement("div")
	div.SetClass("card")
	div.SetStyle("color", "red")
	div.SetAttribute("id", "main")

	span := d.CreateElement("span")
	span.AppendChild(d.CreateText("hi"))
	div.AppendChild(span)
	div.AppendChild(d.CreateElement("br"))

	d.Body().AppendChild(div)

	want := `<body><div class="card" style="color: red;" id="main"><span>hi</span><br></div></body>`
	if got := d.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestHTMLEscaping(t *testing.T) {
	d := NewDocument()

	div := d.CreateElement("div")
	div.SetAttribute("title", `a"b<c`)
	div.AppendChild(d.CreateText("<script>&</script>"))

	want := `<div title="a&quot;b&lt;c">&lt;script&gt;&amp;&lt;/script&gt;</div>`
	if got := div.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}
