package keys

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// keyboardModMask selects the modifier bits of an event's state field. The
// bits above it report pointer buttons, which grabs cannot match on.
const keyboardModMask = 0x00ff

type entry struct {
	binding *Binding
	// running is set while the action runs, for single-flight dispatch.
	running atomic.Bool
}

type grabKey struct {
	keycode Keycode
	mask    uint16
}

type registration struct {
	keycode Keycode
	entry   *entry
	grabbed []uint16
}

// Registry holds bindings, grabs their keys, and finds the binding for an
// event.
//
// A Registry is safe for concurrent use. Add and Remove are serialized with
// each other, and a lookup sees either none or all of a binding's expanded
// keys.
type Registry struct {
	grabber Grabber
	log     *slog.Logger

	// writeMu serializes Add and Remove, including their X round trips.
	writeMu sync.Mutex
	grabs   map[grabKey]int
	regs    map[*Binding]*registration

	mu      sync.RWMutex
	entries [nTriggers]map[ExpandedKey]*entry
}

// NewRegistry returns an empty registry that grabs keys with g.
func NewRegistry(g Grabber, opts ...Option) *Registry {
	o := buildOptions(opts)
	r := &Registry{
		grabber: g,
		log:     o.logger,
		grabs:   map[grabKey]int{},
		regs:    map[*Binding]*registration{},
	}
	for i := range r.entries {
		r.entries[i] = map[ExpandedKey]*entry{}
	}
	return r
}

// Add grabs every expanded mask of b and stores b under each of its expanded
// keys. A failed grab does not stop the others; the failures are returned
// joined together as *GrabError values, and b is stored regardless.
//
// If another binding already has one of b's expanded keys for the same
// trigger, b replaces it for that key: the last binding added wins.
//
// If the keysym has no keycode, nothing is grabbed or stored.
func (r *Registry) Add(b *Binding) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if _, ok := r.regs[b]; ok {
		return nil
	}
	keycode, err := r.grabber.Keycode(b.keysym)
	if err != nil {
		return fmt.Errorf("keys: add %s: %w", b, err)
	}

	reg := &registration{entry: &entry{binding: b}}
	errs := r.grab(reg, keycode)

	m := r.entries[b.trigger]
	replaced := map[*Binding]bool{}
	r.mu.Lock()
	for _, k := range b.ExpandedKeys() {
		if old := m[k]; old != nil && old.binding != b {
			replaced[old.binding] = true
		}
		m[k] = reg.entry
	}
	r.mu.Unlock()
	r.regs[b] = reg

	for old := range replaced {
		// The same chord added again, as on a config reload, is expected.
		if old.Chord() == b.Chord() {
			r.log.Debug("binding replaces one with the same chord", "binding", b.String())
			continue
		}
		r.log.Warn("binding replaces an earlier one",
			"binding", b.String(), "replaced", old.String())
	}
	r.log.Debug("binding added", "binding", b.String(), "keycode", keycode,
		"grabbed", len(reg.grabbed), "failed", len(errs))
	return errors.Join(errs...)
}

// Remove deletes the expanded keys still held by b and releases the grabs
// that no remaining binding needs. Removing a binding that was never added
// is a no-op.
func (r *Registry) Remove(b *Binding) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	reg, ok := r.regs[b]
	if !ok {
		return nil
	}
	delete(r.regs, b)

	m := r.entries[b.trigger]
	r.mu.Lock()
	for _, k := range b.ExpandedKeys() {
		if m[k] == reg.entry {
			delete(m, k)
		}
	}
	r.mu.Unlock()

	errs := r.release(reg)
	r.log.Debug("binding removed", "binding", b.String())
	return errors.Join(errs...)
}

// Regrab resolves every binding's keysym again and moves the grabs of those
// whose keycode changed. Call it after the keyboard mapping changes. A
// binding whose keysym is no longer on the keyboard stays stored but grabs
// nothing until a later Regrab finds its keysym again.
func (r *Registry) Regrab() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	type move struct {
		reg     *registration
		keycode Keycode
	}
	var moves []move
	var errs []error
	for b, reg := range r.regs {
		keycode, err := r.grabber.Keycode(b.keysym)
		if err != nil {
			errs = append(errs, fmt.Errorf("keys: regrab %s: %w", b, err))
			keycode = noKeycode
		}
		if keycode != reg.keycode {
			moves = append(moves, move{reg, keycode})
		}
	}
	// Release everything first, so that a key two bindings swap is not
	// ungrabbed after it was grabbed again.
	for _, mv := range moves {
		errs = append(errs, r.release(mv.reg)...)
	}
	for _, mv := range moves {
		if mv.keycode == noKeycode {
			mv.reg.keycode = noKeycode
			continue
		}
		errs = append(errs, r.grab(mv.reg, mv.keycode)...)
	}
	r.log.Debug("bindings regrabbed", "moved", len(moves), "failed", len(errs))
	return errors.Join(errs...)
}

// noKeycode marks a registration whose keysym is not on the keyboard. X
// keycodes start at 8.
const noKeycode Keycode = 0

// grab grabs the expanded masks of reg's binding on keycode, sharing the
// grabs other bindings already hold. Masks that could not be grabbed are
// returned as *GrabError values and left out of reg.grabbed.
func (r *Registry) grab(reg *registration, keycode Keycode) []error {
	b := reg.entry.binding
	reg.keycode = keycode
	reg.grabbed = nil
	var errs []error
	for _, mask := range Expand(b.mods) {
		gk := grabKey{keycode, mask}
		if r.grabs[gk] == 0 {
			if err := r.grabber.GrabKey(keycode, mask); err != nil {
				errs = append(errs, &GrabError{
					Keysym:  b.keysym,
					Keycode: keycode,
					Mask:    mask,
					Err:     err,
				})
				continue
			}
		}
		r.grabs[gk]++
		reg.grabbed = append(reg.grabbed, mask)
	}
	return errs
}

// release drops reg's share of its grabs and ungrabs those that no other
// binding holds.
func (r *Registry) release(reg *registration) []error {
	b := reg.entry.binding
	var errs []error
	for _, mask := range reg.grabbed {
		gk := grabKey{reg.keycode, mask}
		if r.grabs[gk]--; r.grabs[gk] > 0 {
			continue
		}
		delete(r.grabs, gk)
		if err := r.grabber.UngrabKey(reg.keycode, mask); err != nil {
			errs = append(errs, fmt.Errorf("keys: ungrab %s mask %#04x: %w", b, mask, err))
		}
	}
	reg.grabbed = nil
	return errs
}

// Lookup returns the action bound to keysym with the raw modifier state for
// trigger. A state that no binding has is not an error: ok is false.
func (r *Registry) Lookup(t Trigger, keysym Keysym, state uint16) (action Action, ok bool) {
	e := r.lookup(t, keysym, state)
	if e == nil {
		return nil, false
	}
	return e.binding.action, true
}

func (r *Registry) lookup(t Trigger, keysym Keysym, state uint16) *entry {
	if t < 0 || t >= nTriggers {
		return nil
	}
	state &= keyboardModMask
	m := r.entries[t]
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e := m[ExpandedKey{keysym, state}]; e != nil {
		return e
	}
	// The X server never reports AnyModifier in an event's state, so
	// bindings with no modifiers are found under the lock bits alone.
	return m[ExpandedKey{keysym, AnyModifier | state&IgnoredMask}]
}

// Len returns the number of expanded keys stored for t.
func (r *Registry) Len(t Trigger) int {
	if t < 0 || t >= nTriggers {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[t])
}

// Bindings returns the added bindings, sorted by chord and then trigger.
func (r *Registry) Bindings() []*Binding {
	r.writeMu.Lock()
	out := make([]*Binding, 0, len(r.regs))
	for b := range r.regs {
		out = append(out, b)
	}
	r.writeMu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if ci, cj := out[i].Chord(), out[j].Chord(); ci != cj {
			return ci < cj
		}
		return out[i].trigger < out[j].trigger
	})
	return out
}
