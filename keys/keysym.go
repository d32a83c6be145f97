package keys

// These constants come from /usr/include/X11/keysymdef.h and XF86keysym.h.
// Printable ASCII characters are their own keysyms.

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	XKISOLeftTab = 0xfe20
	XKBackspace  = 0xff08
	XKTab        = 0xff09
	XKReturn     = 0xff0d
	XKPause      = 0xff13
	XKScrollLock = 0xff14
	XKEscape     = 0xff1b
	XKHome       = 0xff50
	XKLeft       = 0xff51
	XKUp         = 0xff52
	XKRight      = 0xff53
	XKDown       = 0xff54
	XKPageUp     = 0xff55
	XKPageDown   = 0xff56
	XKEnd        = 0xff57
	XKPrint      = 0xff61
	XKInsert     = 0xff63
	XKMenu       = 0xff67
	XKNumLock    = 0xff7f
	XKF1         = 0xffbe
	XKF2         = 0xffbf
	XKF3         = 0xffc0
	XKF4         = 0xffc1
	XKF5         = 0xffc2
	XKF6         = 0xffc3
	XKF7         = 0xffc4
	XKF8         = 0xffc5
	XKF9         = 0xffc6
	XKF10        = 0xffc7
	XKF11        = 0xffc8
	XKF12        = 0xffc9
	XKShiftL     = 0xffe1
	XKShiftR     = 0xffe2
	XKControlL   = 0xffe3
	XKControlR   = 0xffe4
	XKCapsLock   = 0xffe5
	XKShiftLock  = 0xffe6
	XKMetaL      = 0xffe7
	XKMetaR      = 0xffe8
	XKAltL       = 0xffe9
	XKAltR       = 0xffea
	XKSuperL     = 0xffeb
	XKSuperR     = 0xffec
	XKHyperL     = 0xffed
	XKHyperR     = 0xffee
	XKDelete     = 0xffff

	XKAudioLowerVolume = 0x1008ff11
	XKAudioMute        = 0x1008ff12
	XKAudioRaiseVolume = 0x1008ff13
	XKAudioPlay        = 0x1008ff14
	XKAudioStop        = 0x1008ff15
	XKAudioPrev        = 0x1008ff16
	XKAudioNext        = 0x1008ff17
)

var keysymNames = map[string]Keysym{
	"ISO_Left_Tab": XKISOLeftTab,
	"BackSpace":    XKBackspace,
	"Tab":          XKTab,
	"Return":       XKReturn,
	"Pause":        XKPause,
	"Scroll_Lock":  XKScrollLock,
	"Escape":       XKEscape,
	"Home":         XKHome,
	"Left":         XKLeft,
	"Up":           XKUp,
	"Right":        XKRight,
	"Down":         XKDown,
	"Prior":        XKPageUp,
	"Next":         XKPageDown,
	"End":          XKEnd,
	"Print":        XKPrint,
	"Insert":       XKInsert,
	"Menu":         XKMenu,
	"Num_Lock":     XKNumLock,
	"F1":           XKF1,
	"F2":           XKF2,
	"F3":           XKF3,
	"F4":           XKF4,
	"F5":           XKF5,
	"F6":           XKF6,
	"F7":           XKF7,
	"F8":           XKF8,
	"F9":           XKF9,
	"F10":          XKF10,
	"F11":          XKF11,
	"F12":          XKF12,
	"Shift_L":      XKShiftL,
	"Shift_R":      XKShiftR,
	"Control_L":    XKControlL,
	"Control_R":    XKControlR,
	"Caps_Lock":    XKCapsLock,
	"Shift_Lock":   XKShiftLock,
	"Meta_L":       XKMetaL,
	"Meta_R":       XKMetaR,
	"Alt_L":        XKAltL,
	"Alt_R":        XKAltR,
	"Super_L":      XKSuperL,
	"Super_R":      XKSuperR,
	"Hyper_L":      XKHyperL,
	"Hyper_R":      XKHyperR,
	"Delete":       XKDelete,

	"XF86AudioLowerVolume": XKAudioLowerVolume,
	"XF86AudioMute":        XKAudioMute,
	"XF86AudioRaiseVolume": XKAudioRaiseVolume,
	"XF86AudioPlay":        XKAudioPlay,
	"XF86AudioStop":        XKAudioStop,
	"XF86AudioPrev":        XKAudioPrev,
	"XF86AudioNext":        XKAudioNext,

	"space":        ' ',
	"exclam":       '!',
	"quotedbl":     '"',
	"numbersign":   '#',
	"dollar":       '$',
	"percent":      '%',
	"ampersand":    '&',
	"apostrophe":   '\'',
	"parenleft":    '(',
	"parenright":   ')',
	"asterisk":     '*',
	"plus":         '+',
	"comma":        ',',
	"minus":        '-',
	"period":       '.',
	"slash":        '/',
	"colon":        ':',
	"semicolon":    ';',
	"less":         '<',
	"equal":        '=',
	"greater":      '>',
	"question":     '?',
	"at":           '@',
	"bracketleft":  '[',
	"backslash":    '\\',
	"bracketright": ']',
	"asciicircum":  '^',
	"underscore":   '_',
	"grave":        '`',
	"braceleft":    '{',
	"bar":          '|',
	"braceright":   '}',
	"asciitilde":   '~',
}

var keysymStrings = func() map[Keysym]string {
	m := make(map[Keysym]string, len(keysymNames))
	for name, k := range keysymNames {
		m[k] = name
	}
	// Prefer the names people type.
	m[XKPageUp] = "Prior"
	m[XKPageDown] = "Next"
	return m
}()

// KeysymName returns the keysymdef.h name of keysym without its XK_ prefix,
// the character itself for letters and digits, or a hex literal.
func KeysymName(keysym Keysym) string {
	if isAlnum(keysym) {
		return string(rune(keysym))
	}
	if s, ok := keysymStrings[keysym]; ok {
		return s
	}
	return fmt.Sprintf("%#x", uint32(keysym))
}

// LookupKeysym is the inverse of KeysymName. Names are matched case
// insensitively when there is no exact match. A single upper case letter
// gives the lower case keysym, since bindings match the unshifted symbol of
// a key.
func LookupKeysym(name string) (Keysym, bool) {
	if len(name) == 1 && name[0] > ' ' && name[0] < 0x7f {
		c := name[0]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		return Keysym(c), true
	}
	if k, ok := keysymNames[name]; ok {
		return k, true
	}
	for n, k := range keysymNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		if v, err := strconv.ParseUint(name[2:], 16, 32); err == nil && v != 0 {
			return Keysym(v), true
		}
	}
	return 0, false
}

func isAlnum(k Keysym) bool {
	return ('0' <= k && k <= '9') || ('a' <= k && k <= 'z') || ('A' <= k && k <= 'Z')
}
