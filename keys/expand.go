package keys

// Expand returns every raw modifier mask that the X server may report for a
// chord with the given modifiers: the chord's own mask combined with each of
// the 8 possible states of Caps Lock, Num Lock and Scroll Lock. An empty set
// expands from AnyModifier instead of 0.
//
// Lock modifiers in mods are dropped from the base mask. They are matched in
// every state anyway, and keeping them would collapse the 8 masks into 4 or
// fewer.
//
// The result is in ascending order of the lock bits and has no duplicates.
func Expand(mods ModifierSet) []uint16 {
	base := mods.Mask() &^ IgnoredMask
	if mods.Len() == 0 {
		base = AnyModifier
	}
	out := make([]uint16, 0, 8)
	for ignored := uint16(0); ignored <= IgnoredMask; ignored++ {
		if ignored&^IgnoredMask != 0 {
			continue
		}
		out = append(out, base|ignored)
	}
	return out
}
