package keys

import (
	"sort"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"
)

// Modifier is one bit of the X11 key event state field.
type Modifier uint16

// These are the only places that tie modifiers to X11's bit layout. On a
// typical X server, Mod1 is Alt, Mod2 is Num Lock, Mod3 is Scroll Lock (when
// it is mapped at all) and Mod4 is the 'Windows' (Super) key.
const (
	Shift      = Modifier(xp.ModMaskShift)
	CapsLock   = Modifier(xp.ModMaskLock)
	Control    = Modifier(xp.ModMaskControl)
	Alt        = Modifier(xp.ModMask1)
	NumLock    = Modifier(xp.ModMask2)
	ScrollLock = Modifier(xp.ModMask3)
	Windows    = Modifier(xp.ModMask4)
	Mod5       = Modifier(xp.ModMask5)
)

const (
	// AnyModifier is the grab mask that matches every modifier state.
	AnyModifier = uint16(xp.ModMaskAny)

	// IgnoredMask holds the lock-type modifiers, whose state says nothing
	// about which chord the user meant.
	IgnoredMask = uint16(CapsLock | NumLock | ScrollLock)
)

var modifierNames = map[Modifier]string{
	Shift:      "Shift",
	CapsLock:   "CapsLock",
	Control:    "Control",
	Alt:        "Alt",
	NumLock:    "NumLock",
	ScrollLock: "ScrollLock",
	Windows:    "Windows",
	Mod5:       "Mod5",
}

func (m Modifier) String() string {
	if s, ok := modifierNames[m]; ok {
		return s
	}
	return "UnknownModifier"
}

// ModifierSet is a deduplicated set of modifiers in ascending bit order, so
// two sets with the same members compare equal.
type ModifierSet struct {
	mods []Modifier
}

// NewModifierSet sorts and deduplicates mods. Duplicates and order in the
// input are not significant.
func NewModifierSet(mods ...Modifier) ModifierSet {
	if len(mods) == 0 {
		return ModifierSet{}
	}
	sorted := append([]Modifier(nil), mods...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:1]
	for _, m := range sorted[1:] {
		if m != out[len(out)-1] {
			out = append(out, m)
		}
	}
	return ModifierSet{mods: out}
}

// Modifiers returns a copy of the set's members in canonical order.
func (s ModifierSet) Modifiers() []Modifier {
	return append([]Modifier(nil), s.mods...)
}

func (s ModifierSet) Len() int { return len(s.mods) }

// Mask returns the bitwise OR of the set's members. The empty set gives 0.
func (s ModifierSet) Mask() uint16 {
	mask := uint16(0)
	for _, m := range s.mods {
		mask |= uint16(m)
	}
	return mask
}

func (s ModifierSet) Equal(t ModifierSet) bool {
	if len(s.mods) != len(t.mods) {
		return false
	}
	for i := range s.mods {
		if s.mods[i] != t.mods[i] {
			return false
		}
	}
	return true
}

func (s ModifierSet) String() string {
	names := make([]string, len(s.mods))
	for i, m := range s.mods {
		names[i] = m.String()
	}
	return strings.Join(names, "+")
}
