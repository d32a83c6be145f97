package xconn

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
)

// keysymTable holds the unshifted and shifted keysyms of group 0 for every
// keycode.
type keysymTable [256][2]xp.Keysym

// newKeysymTable builds the table from a GetKeyboardMapping reply covering
// keycodes lo through hi, with n keysyms per keycode.
func newKeysymTable(lo, hi xp.Keycode, n int, syms []xp.Keysym) (keysymTable, error) {
	var t keysymTable
	if n < 1 {
		return t, fmt.Errorf("too few keysyms per keycode: %d", n)
	}
	if hi < lo {
		return t, fmt.Errorf("bad keycode range: %d-%d", lo, hi)
	}
	if want := (int(hi) - int(lo) + 1) * n; len(syms) < want {
		return t, fmt.Errorf("keyboard mapping too short: %d keysyms, want %d", len(syms), want)
	}
	for i := int(lo); i <= int(hi); i++ {
		row := syms[(i-int(lo))*n:]
		t[i][0] = row[0]
		if n >= 2 {
			t[i][1] = row[1]
		}
	}
	return t, nil
}

// keycode returns the lowest keycode whose unshifted keysym is keysym.
// Events resolve through the unshifted column only, so a keysym that is only
// in the shifted column, such as '!', has no keycode: grabbing its key would
// bind a chord that never matches. Such chords are written with Shift and
// the unshifted key, as in "Shift+1".
func (t *keysymTable) keycode(keysym xp.Keysym) (xp.Keycode, bool) {
	if keysym == 0 {
		return 0, false
	}
	for i := range t {
		if t[i][0] == keysym {
			return xp.Keycode(i), true
		}
	}
	return 0, false
}

// keysym returns the unshifted keysym of keycode.
func (t *keysymTable) keysym(keycode xp.Keycode) xp.Keysym {
	return t[keycode][0]
}
