package vdom

import "testing"

func TestFragment(t *testing.T) {
	t.Run("flattens slices and coerces strings", func(t *testing.T) {
		f := Fragment(
			Text("a"),
			nil,
			"b",
			[]*VNode{Span(), nil},
		)
		if f.Kind != KindFragment {
			t.Fatalf("Kind = %v, want KindFragment", f.Kind)
		}
		if len(f.Children) != 3 {
			t.Fatalf("len(Children) = %d, want 3", len(f.Children))
		}
		if f.Children[1].Text != "b" {
			t.Errorf("Children[1].Text = %q, want b", f.Children[1].Text)
		}
	})

	t.Run("empty", func(t *testing.T) {
		f := Fragment()
		if len(f.Children) != 0 {
			t.Errorf("len(Children) = %d, want 0", len(f.Children))
		}
	})
}

func TestConditionalHelpers(t *testing.T) {
	span := Span()

	if If(true, span) != span {
		t.Error("If(true) should return the node")
	}
	if If(false, span) != nil {
		t.Error("If(false) should return nil")
	}
	if IfElse(false, nil, span) != span {
		t.Error("IfElse(false) should return the second node")
	}

	called := false
	When(false, func() *VNode {
		called = true
		return span
	})
	if called {
		t.Error("When(false) must not call the function")
	}
	if When(true, func() *VNode { return span }) != span {
		t.Error("When(true) should return the node")
	}

	if Nothing() != nil {
		t.Error("Nothing() should return nil")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Range(items, func(item string, i int) *VNode {
		if item == "b" {
			return nil
		}
		return Li(Text(item))
	})

	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if nodes[0].Children[0].Text != "a" || nodes[1].Children[0].Text != "c" {
		t.Errorf("unexpected nodes: %v", nodes)
	}
}

func TestTextf(t *testing.T) {
	n := Textf("count: %d", 42)
	if n.Kind != KindText || n.Text != "count: 42" {
		t.Errorf("Textf = %+v, want text node with count: 42", n)
	}
}
