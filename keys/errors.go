package keys

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionClosed means the X connection went away. No further
	// events can be read.
	ErrConnectionClosed = errors.New("keys: connection closed")

	// ErrGrabConflict means another client already grabs the key and
	// modifier combination.
	ErrGrabConflict = errors.New("keys: key already grabbed by another client")

	// ErrUnknownKeysym means no key on the current keyboard mapping produces
	// the keysym.
	ErrUnknownKeysym = errors.New("keys: keysym not on keyboard")

	// ErrBusy means an invocation was dropped because the runner was at its
	// concurrency limit, or the binding's previous invocation was still
	// running.
	ErrBusy = errors.New("keys: action dropped, runner busy")

	ErrBadChord        = errors.New("keys: bad chord")
	ErrUnknownModifier = errors.New("keys: unknown modifier")
)

// ConnectionError is a fatal failure to open or read from the X connection.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("keys: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// GrabError is a failure to grab one keycode and raw modifier mask. It does
// not stop the rest of a binding from being registered.
type GrabError struct {
	Keysym  Keysym
	Keycode Keycode
	Mask    uint16
	Err     error
}

func (e *GrabError) Error() string {
	return fmt.Sprintf("keys: grab %s (keycode %d) mask %#04x: %v",
		KeysymName(e.Keysym), e.Keycode, e.Mask, e.Err)
}

func (e *GrabError) Unwrap() error { return e.Err }

// CallbackError is an action that returned an error or panicked.
type CallbackError struct {
	Binding *Binding
	Err     error
	Panic   any
	Stack   []byte
}

func (e *CallbackError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("keys: action for %s panicked: %v", e.Binding, e.Panic)
	}
	return fmt.Sprintf("keys: action for %s: %v", e.Binding, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
