package keys

import (
	"reflect"
	"testing"
)

func TestNewModifierSetCanonical(t *testing.T) {
	s := NewModifierSet(Alt, Control, Shift, Alt, Control)
	want := []Modifier{Shift, Control, Alt}
	if got := s.Modifiers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Modifiers() = %v, want %v", got, want)
	}
	if got := s.Mask(); got != uint16(Shift|Control|Alt) {
		t.Fatalf("Mask() = %#04x", got)
	}
	if got := s.String(); got != "Shift+Control+Alt" {
		t.Fatalf("String() = %q", got)
	}
}

func TestModifierSetCopiesInput(t *testing.T) {
	in := []Modifier{Control, Alt}
	s := NewModifierSet(in...)
	in[0] = Windows
	if got := s.Modifiers(); !reflect.DeepEqual(got, []Modifier{Control, Alt}) {
		t.Fatalf("set changed with its input: %v", got)
	}
}

func TestBindingOrderIndependent(t *testing.T) {
	noop := Func(func() {})
	b1 := NewBinding('a', []Modifier{Control, Alt}, Pressed, noop)
	b2 := NewBinding('a', []Modifier{Alt, Control}, Pressed, noop)
	if !b1.Modifiers().Equal(b2.Modifiers()) {
		t.Fatalf("modifier sets differ: %v vs %v", b1.Modifiers(), b2.Modifiers())
	}
	if !reflect.DeepEqual(b1.ExpandedKeys(), b2.ExpandedKeys()) {
		t.Fatalf("expanded keys differ:\n%v\n%v", b1.ExpandedKeys(), b2.ExpandedKeys())
	}
}

func TestBindingString(t *testing.T) {
	noop := Func(func() {})
	tests := []struct {
		b    *Binding
		want string
	}{
		{NewBinding(XKReturn, []Modifier{Alt, Control}, Pressed, noop), "Control+Alt+Return pressed"},
		{NewBinding('a', nil, Released, noop), "a released"},
		{NewBinding(' ', []Modifier{Windows}, Pressed, noop), "Windows+space pressed"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewBindingNilActionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewBinding with nil action did not panic")
		}
	}()
	NewBinding('a', nil, Pressed, nil)
}
