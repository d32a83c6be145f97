package keys

// Grabber is the part of the X connection that registers interest in keys.
type Grabber interface {
	// Keycode returns a keycode for which EventSource.Keysym gives keysym,
	// or an error wrapping ErrUnknownKeysym. The answer changes when the
	// keyboard mapping does.
	Keycode(keysym Keysym) (Keycode, error)
	// GrabKey grabs keycode with the exact raw modifier mask on the root
	// window. An error wrapping ErrGrabConflict means another client owns
	// that grab.
	GrabKey(keycode Keycode, mask uint16) error
	UngrabKey(keycode Keycode, mask uint16) error
}

// EventKind classifies a raw event.
type EventKind int

const (
	KindOther EventKind = iota
	KindPress
	KindRelease
	// KindMapping means the keyboard mapping changed. Keycodes resolved
	// before it may now produce other keysyms.
	KindMapping
)

// RawEvent is one event read from the X connection.
type RawEvent struct {
	Kind    EventKind
	Keycode Keycode
	State   uint16
}

// EventSource is the part of the X connection that delivers events. Only one
// goroutine may call NextEvent.
type EventSource interface {
	// NextEvent blocks until the next event. An error is fatal.
	NextEvent() (RawEvent, error)
	// Keysym returns the keysym of keycode in the first column of keyboard
	// group 0.
	Keysym(keycode Keycode) Keysym
	// Close releases the connection. A blocked NextEvent then returns an
	// error.
	Close() error
}

// Backend is a whole X connection.
type Backend interface {
	Grabber
	EventSource
}
