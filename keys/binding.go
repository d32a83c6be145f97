package keys

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Keysym and Keycode are the X11 types. A keysym names a symbol such as 'a'
// or Return; a keycode names a physical key under the current layout.
type (
	Keysym  = xp.Keysym
	Keycode = xp.Keycode
)

// Trigger is whether a binding fires on key press or key release.
type Trigger int

const (
	Pressed Trigger = iota
	Released
	nTriggers
)

func (t Trigger) String() string {
	switch t {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	}
	return "unknown"
}

// Action is what a binding runs. Run is called on its own goroutine.
type Action interface {
	Run() error
}

// ActionFunc adapts a function to an Action.
type ActionFunc func() error

func (f ActionFunc) Run() error { return f() }

// Func adapts a function that cannot fail to an Action.
func Func(f func()) Action {
	return ActionFunc(func() error {
		f()
		return nil
	})
}

// Binding ties a chord and a trigger to an action. It is immutable once
// built.
type Binding struct {
	keysym  Keysym
	mods    ModifierSet
	trigger Trigger
	action  Action
}

// NewBinding returns a binding for keysym plus mods. The modifiers may be in
// any order and may repeat. No modifiers means any modifier state.
//
// NewBinding panics if action is nil.
func NewBinding(keysym Keysym, mods []Modifier, trigger Trigger, action Action) *Binding {
	if action == nil {
		panic("keys: nil action")
	}
	return &Binding{
		keysym:  keysym,
		mods:    NewModifierSet(mods...),
		trigger: trigger,
		action:  action,
	}
}

func (b *Binding) Keysym() Keysym { return b.keysym }

func (b *Binding) Modifiers() ModifierSet { return b.mods }

func (b *Binding) Trigger() Trigger { return b.trigger }

func (b *Binding) Action() Action { return b.action }

// ExpandedKeys returns the lookup keys the registry stores for b, one per
// mask from Expand.
func (b *Binding) ExpandedKeys() []ExpandedKey {
	masks := Expand(b.mods)
	out := make([]ExpandedKey, len(masks))
	for i, m := range masks {
		out[i] = ExpandedKey{Keysym: b.keysym, Mask: m}
	}
	return out
}

// Chord returns the chord in the form accepted by ParseChord, such as
// "Control+Alt+Return".
func (b *Binding) Chord() string {
	name := KeysymName(b.keysym)
	if b.mods.Len() == 0 {
		return name
	}
	return b.mods.String() + "+" + name
}

func (b *Binding) String() string {
	return b.Chord() + " " + b.trigger.String()
}

// ExpandedKey is the registry's lookup key: a keysym and an exact raw
// modifier state.
type ExpandedKey struct {
	Keysym Keysym
	Mask   uint16
}
