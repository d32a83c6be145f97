// Package xconn is the X11 connection that package keys grabs keys on and
// reads key events from. It speaks the X protocol through
// github.com/BurntSushi/xgb.
package xconn

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/taokeys/keys"
)

// Conn is a connection to an X server, grabbing keys on the default
// screen's root window. It implements keys.Backend.
type Conn struct {
	xConn    *xgb.Conn
	rootXWin xp.Window
	log      *slog.Logger

	minKeycode xp.Keycode
	maxKeycode xp.Keycode

	mu      sync.RWMutex
	keysyms keysymTable

	closeOnce sync.Once
}

var _ keys.Backend = (*Conn)(nil)

// Open connects to display, such as ":0". An empty display means $DISPLAY.
// A nil logger means slog.Default().
func Open(display string, logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	xConn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, &keys.ConnectionError{Op: "open display", Err: err}
	}
	xSetup := xp.Setup(xConn)
	if len(xSetup.Roots) == 0 {
		xConn.Close()
		return nil, &keys.ConnectionError{Op: "open display", Err: fmt.Errorf("X setup has no roots")}
	}
	c := &Conn{
		xConn:      xConn,
		rootXWin:   xSetup.DefaultScreen(xConn).Root,
		log:        logger,
		minKeycode: xSetup.MinKeycode,
		maxKeycode: xSetup.MaxKeycode,
	}
	if err := c.loadKeyboardMapping(); err != nil {
		xConn.Close()
		return nil, &keys.ConnectionError{Op: "keyboard mapping", Err: err}
	}
	logger.Debug("connected to X server", "display", display, "root", c.rootXWin,
		"keycodes", fmt.Sprintf("%d-%d", c.minKeycode, c.maxKeycode))
	return c, nil
}

// Root returns the window that keys are grabbed on.
func (c *Conn) Root() xp.Window {
	return c.rootXWin
}

func (c *Conn) loadKeyboardMapping() error {
	lo, hi := c.minKeycode, c.maxKeycode
	km, err := xp.GetKeyboardMapping(c.xConn, lo, byte(hi-lo+1)).Reply()
	if err != nil {
		return err
	}
	t, err := newKeysymTable(lo, hi, int(km.KeysymsPerKeycode), km.Keysyms)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.keysyms = t
	c.mu.Unlock()
	return nil
}

// Keycode returns a keycode whose unshifted keysym is keysym.
func (c *Conn) Keycode(keysym keys.Keysym) (keys.Keycode, error) {
	c.mu.RLock()
	keycode, ok := c.keysyms.keycode(keysym)
	c.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", keys.ErrUnknownKeysym, keys.KeysymName(keysym))
	}
	return keycode, nil
}

// Keysym returns the unshifted keysym of keycode.
func (c *Conn) Keysym(keycode keys.Keycode) keys.Keysym {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keysyms.keysym(keycode)
}

// GrabKey grabs keycode with mask on the root window, with asynchronous
// pointer and keyboard modes. It waits for the server's reply, so a grab
// owned by another client fails here rather than as a later X error.
func (c *Conn) GrabKey(keycode keys.Keycode, mask uint16) error {
	err := xp.GrabKeyChecked(c.xConn, true, c.rootXWin, mask, keycode,
		xp.GrabModeAsync, xp.GrabModeAsync).Check()
	if err == nil {
		return nil
	}
	if _, ok := err.(xp.AccessError); ok {
		return fmt.Errorf("%w: %v", keys.ErrGrabConflict, err)
	}
	return err
}

func (c *Conn) UngrabKey(keycode keys.Keycode, mask uint16) error {
	return xp.UngrabKeyChecked(c.xConn, keycode, c.rootXWin, mask).Check()
}

// NextEvent blocks until the next event. X errors, such as ones from
// unchecked requests, are logged and skipped. A keyboard MappingNotify event
// reloads the keyboard mapping and is returned as keys.KindMapping, so that
// the keys can be grabbed again under their new keycodes.
func (c *Conn) NextEvent() (keys.RawEvent, error) {
	for {
		ev, xErr := c.xConn.WaitForEvent()
		if ev == nil && xErr == nil {
			return keys.RawEvent{}, &keys.ConnectionError{Op: "wait for event", Err: keys.ErrConnectionClosed}
		}
		if xErr != nil {
			c.log.Warn("X error", "err", xErr)
			continue
		}
		switch e := ev.(type) {
		case xp.KeyPressEvent:
			return keys.RawEvent{Kind: keys.KindPress, Keycode: e.Detail, State: e.State}, nil
		case xp.KeyReleaseEvent:
			return keys.RawEvent{Kind: keys.KindRelease, Keycode: e.Detail, State: e.State}, nil
		case xp.MappingNotifyEvent:
			if e.Request == xp.MappingKeyboard {
				if err := c.loadKeyboardMapping(); err != nil {
					c.log.Warn("could not reload keyboard mapping", "err", err)
					continue
				}
				c.log.Info("keyboard mapping reloaded")
				return keys.RawEvent{Kind: keys.KindMapping}, nil
			}
		}
		return keys.RawEvent{Kind: keys.KindOther}, nil
	}
}

// Close closes the connection. A NextEvent blocked in another goroutine
// then returns keys.ErrConnectionClosed.
func (c *Conn) Close() error {
	c.closeOnce.Do(c.xConn.Close)
	return nil
}
