package keys

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// keysymBase is added to a keycode to give its keysym in fakeBackend.
const keysymBase = 0x10000

type grab struct {
	keycode Keycode
	mask    uint16
}

// fakeBackend is an X connection whose keycode c produces keysym
// keysymBase+c, plus 'a' on keycode 38. Events are fed through events.
type fakeBackend struct {
	mu       sync.Mutex
	moved    map[Keysym]Keycode
	grabbed  map[grab]int
	ungrabs  []grab
	conflict map[grab]bool

	events    chan RawEvent
	readErr   chan error
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		moved:    map[Keysym]Keycode{},
		grabbed:  map[grab]int{},
		conflict: map[grab]bool{},
		events:   make(chan RawEvent),
		readErr:  make(chan error, 1),
		closed:   make(chan struct{}),
	}
}

func (f *fakeBackend) Keycode(keysym Keysym) (Keycode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if keycode, ok := f.moved[keysym]; ok {
		if keycode == 0 {
			return 0, fmt.Errorf("%w: %#x", ErrUnknownKeysym, uint32(keysym))
		}
		return keycode, nil
	}
	if keysym == 'a' {
		return 38, nil
	}
	if keysym >= keysymBase+8 && keysym <= keysymBase+255 {
		return Keycode(keysym - keysymBase), nil
	}
	return 0, fmt.Errorf("%w: %#x", ErrUnknownKeysym, uint32(keysym))
}

func (f *fakeBackend) Keysym(keycode Keycode) Keysym {
	f.mu.Lock()
	defer f.mu.Unlock()
	for keysym, kc := range f.moved {
		if kc == keycode {
			return keysym
		}
	}
	if keycode == 38 {
		return 'a'
	}
	return keysymBase + Keysym(keycode)
}

// remap puts keysym on keycode, as a keyboard mapping change does. Keycode
// 0 takes keysym off the keyboard.
func (f *fakeBackend) remap(keysym Keysym, keycode Keycode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moved[keysym] = keycode
}

func (f *fakeBackend) GrabKey(keycode Keycode, mask uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := grab{keycode, mask}
	if f.conflict[g] {
		return fmt.Errorf("%w: fake", ErrGrabConflict)
	}
	f.grabbed[g]++
	return nil
}

func (f *fakeBackend) UngrabKey(keycode Keycode, mask uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := grab{keycode, mask}
	delete(f.grabbed, g)
	f.ungrabs = append(f.ungrabs, g)
	return nil
}

func (f *fakeBackend) NextEvent() (RawEvent, error) {
	select {
	case e := <-f.events:
		return e, nil
	case err := <-f.readErr:
		return RawEvent{}, err
	case <-f.closed:
		return RawEvent{}, &ConnectionError{Op: "wait for event", Err: ErrConnectionClosed}
	}
}

func (f *fakeBackend) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeBackend) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func (f *fakeBackend) grabCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.grabbed)
}

func (f *fakeBackend) isGrabbed(keycode Keycode, mask uint16) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grabbed[grab{keycode, mask}] > 0
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
