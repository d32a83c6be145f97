package keys

import (
	"fmt"
	"strings"
)

var modifierAliases = map[string]Modifier{
	"shift":      Shift,
	"lock":       CapsLock,
	"capslock":   CapsLock,
	"control":    Control,
	"ctrl":       Control,
	"alt":        Alt,
	"mod1":       Alt,
	"numlock":    NumLock,
	"mod2":       NumLock,
	"scrolllock": ScrollLock,
	"mod3":       ScrollLock,
	"windows":    Windows,
	"win":        Windows,
	"super":      Windows,
	"mod4":       Windows,
	"mod5":       Mod5,
}

// ParseModifier parses a modifier name such as "Control", "ctrl" or "Mod4".
func ParseModifier(name string) (Modifier, error) {
	if m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

// ParseChord parses a chord such as "Control+Alt+Return": modifier names
// and then a key name, joined by '+'. A key on its own is a chord with no
// modifiers. Use "plus" for the '+' key.
func ParseChord(s string) (Keysym, []Modifier, error) {
	parts := strings.Split(s, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	key := parts[len(parts)-1]
	if key == "" {
		return 0, nil, fmt.Errorf("%w: %q has no key", ErrBadChord, s)
	}
	keysym, ok := LookupKeysym(key)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q: unknown key %q", ErrBadChord, s, key)
	}
	var mods []Modifier
	for _, p := range parts[:len(parts)-1] {
		m, err := ParseModifier(p)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %q: %w", ErrBadChord, s, err)
		}
		mods = append(mods, m)
	}
	return keysym, mods, nil
}
