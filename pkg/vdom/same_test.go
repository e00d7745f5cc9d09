package vdom

import (
	"errors"
	"testing"
)

func TestSameVNode(t *testing.T) {
	factory := &AsyncFactory{}
	failed := &AsyncFactory{Error: errors.New("boom")}

	placeholder := AsyncPlaceholder(factory, "")

	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"nil", nil, Div(), false},
		{"same tag no data", Div(), Div(), true},
		{"different tag", Div(), Span(), false},
		{"different key", Li(Key(1)), Li(Key(2)), false},
		{"same key", Li(Key(1)), Li(Key(1)), true},
		{"data vs none", Div(ID("a")), Div(), false},
		{"both data", Div(ID("a")), Div(ID("b")), true},
		{"text nodes", Text("a"), Text("b"), true},
		{"text vs comment", Text("a"), Comment("a"), false},
		{"text input types interchangeable", Input(Type("text")), Input(Type("email")), true},
		{"checkbox vs text", Input(Type("checkbox")), Input(Type("text")), false},
		{"same non-text type", Input(Type("radio")), Input(Type("radio")), true},
		{"element vs component", Div(), &VNode{Kind: KindComponent, Tag: "div"}, false},
		{"async placeholder resolves", placeholder, &VNode{Kind: KindComponent, Tag: "x", AsyncFactory: factory}, true},
		{"different factories", placeholder, &VNode{Kind: KindComponent, Tag: "x", AsyncFactory: failed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameVNode(tt.a, tt.b); got != tt.want {
				t.Errorf("SameVNode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameVNodeAsyncError(t *testing.T) {
	f := &AsyncFactory{}
	a := AsyncPlaceholder(f, "")
	b := &VNode{Kind: KindComponent, Tag: "x", AsyncFactory: f}
	if !SameVNode(a, b) {
		t.Fatal("placeholder should match pending component")
	}
	f.Error = errors.New("failed")
	if SameVNode(a, b) {
		t.Error("placeholder should not match after the factory failed")
	}
}

func TestEqualityCustomTextInputs(t *testing.T) {
	eq := NewEquality([]string{"text", "date"})
	if !eq.Same(Input(Type("text")), Input(Type("date"))) {
		t.Error("text/date should be interchangeable")
	}
	if eq.Same(Input(Type("text")), Input(Type("email"))) {
		t.Error("text/email should not be interchangeable with a custom policy")
	}
	if !eq.IsTextInputType("date") {
		t.Error("IsTextInputType(date) = false")
	}
}
