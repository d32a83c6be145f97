package keys

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

var errRunning = errors.New("keys: dispatcher already running")

// Dispatcher reads key events and starts the matching bindings' actions.
type Dispatcher struct {
	src     EventSource
	reg     *Registry
	log     *slog.Logger
	run     *runner
	running atomic.Bool
}

// NewDispatcher returns a dispatcher for the events of src, matched against
// reg. The dispatcher owns src: Run closes it on return.
func NewDispatcher(src EventSource, reg *Registry, opts ...Option) *Dispatcher {
	o := buildOptions(opts)
	return &Dispatcher{
		src: src,
		reg: reg,
		log: o.logger,
		run: newRunner(o),
	}
}

type eventOrError struct {
	event RawEvent
	err   error
}

// Run reads and dispatches events until ctx is done or reading fails. It
// returns ctx.Err() in the first case and a *ConnectionError in the second.
// Actions run on their own goroutines; Run never waits for them.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return errRunning
	}
	defer func() {
		if err := d.src.Close(); err != nil {
			d.log.Debug("closing event source", "err", err)
		}
	}()

	// NextEvent blocks, so it gets its own goroutine. Closing the source
	// unblocks it.
	done := make(chan struct{})
	defer close(done)
	eeChan := make(chan eventOrError)
	go func() {
		for {
			e, err := d.src.NextEvent()
			select {
			case eeChan <- eventOrError{e, err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	d.log.Info("dispatching key events",
		"pressed", d.reg.Len(Pressed), "released", d.reg.Len(Released))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ee := <-eeChan:
			if ee.err != nil {
				var ce *ConnectionError
				if errors.As(ee.err, &ce) {
					return ee.err
				}
				return &ConnectionError{Op: "read event", Err: ee.err}
			}
			d.dispatch(ee.event)
		}
	}
}

func (d *Dispatcher) dispatch(e RawEvent) {
	var t Trigger
	switch e.Kind {
	case KindPress:
		t = Pressed
	case KindRelease:
		t = Released
	case KindMapping:
		if err := d.reg.Regrab(); err != nil {
			d.log.Warn("could not grab every key after a keyboard mapping change", "err", err)
		}
		return
	default:
		return
	}
	keysym := d.src.Keysym(e.Keycode)
	ent := d.reg.lookup(t, keysym, e.State)
	if ent == nil {
		return
	}
	d.log.Debug("key matched", "binding", ent.binding.String(), "state", e.State)
	d.run.start(ent)
}

// Wait blocks until every action started so far has returned.
func (d *Dispatcher) Wait() {
	d.run.wait()
}
