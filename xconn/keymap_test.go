package xconn

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
)

func TestKeysymTable(t *testing.T) {
	// Keycodes 8-11, 3 keysyms each, as GetKeyboardMapping returns them.
	syms := []xp.Keysym{
		0xff1b, 0, 0, // 8: Escape
		'a', 'A', 0, // 9
		'1', '!', 0, // 10
		'q', 'a', 0, // 11: 'a' only when shifted
	}
	tab, err := newKeysymTable(8, 11, 3, syms)
	if err != nil {
		t.Fatalf("newKeysymTable: %v", err)
	}
	if got := tab[9]; got != [2]xp.Keysym{'a', 'A'} {
		t.Fatalf("tab[9] = %v", got)
	}
	tests := []struct {
		keysym xp.Keysym
		want   xp.Keycode
		ok     bool
	}{
		{0xff1b, 8, true},
		{'a', 9, true},
		{'1', 10, true},
		{'q', 11, true},
		// Only in the shifted column: events never resolve to these.
		{'!', 0, false},
		{'A', 0, false},
		{'z', 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		got, ok := tab.keycode(tt.keysym)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("keycode(%#x) = %d, %v, want %d, %v", tt.keysym, got, ok, tt.want, tt.ok)
		}
		// A grabbed keycode must give back the keysym it was grabbed for.
		if ok {
			if back := tab.keysym(got); back != tt.keysym {
				t.Fatalf("keysym(keycode(%#x)) = %#x", tt.keysym, back)
			}
		}
	}
}

func TestKeysymTableRoundTrip(t *testing.T) {
	var syms []xp.Keysym
	for c := 8; c <= 255; c++ {
		syms = append(syms, xp.Keysym(0x1000+c), xp.Keysym(0x2000+c))
	}
	tab, err := newKeysymTable(8, 255, 2, syms)
	if err != nil {
		t.Fatalf("newKeysymTable: %v", err)
	}
	for c := 8; c <= 255; c++ {
		for col, sym := range tab[c] {
			kc, ok := tab.keycode(sym)
			if ok != (col == 0) {
				t.Fatalf("keycode(%#x) ok = %v, column %d", sym, ok, col)
			}
			if ok && tab.keysym(kc) != sym {
				t.Fatalf("keycode %d resolves to %#x, grabbed for %#x", kc, tab.keysym(kc), sym)
			}
		}
	}
}

func TestKeysymTableOneColumn(t *testing.T) {
	tab, err := newKeysymTable(8, 9, 1, []xp.Keysym{'x', 'y'})
	if err != nil {
		t.Fatalf("newKeysymTable: %v", err)
	}
	if tab[9] != [2]xp.Keysym{'y', 0} {
		t.Fatalf("tab[9] = %v", tab[9])
	}
}

func TestKeysymTableErrors(t *testing.T) {
	if _, err := newKeysymTable(8, 9, 0, nil); err == nil {
		t.Fatal("zero keysyms per keycode accepted")
	}
	if _, err := newKeysymTable(9, 8, 1, nil); err == nil {
		t.Fatal("reversed keycode range accepted")
	}
	if _, err := newKeysymTable(8, 11, 2, make([]xp.Keysym, 7)); err == nil {
		t.Fatal("short mapping accepted")
	}
}
