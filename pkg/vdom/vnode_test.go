package vdom

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindText, "Text"},
		{KindElement, "Element"},
		{KindFragment, "Fragment"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"plain element", Div(), false},
		{"element with handler", Button(OnClick(func(Event) {})), true},
		{"fragment", Fragment(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttrIsEmpty(t *testing.T) {
	if !(Attr{}).IsEmpty() {
		t.Error("zero Attr should be empty")
	}
	if (Attr{Key: "id", Value: "x"}).IsEmpty() {
		t.Error("keyed Attr should not be empty")
	}
	// Nil value with a key is a removal marker, not an empty attr.
	if Remove("id").IsEmpty() {
		t.Error("removal Attr should not be empty")
	}
}
