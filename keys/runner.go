package keys

import (
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"
)

// runner starts each matched action on its own goroutine.
type runner struct {
	sem          *semaphore.Weighted
	singleFlight bool
	onError      func(*Binding, error)
	wg           sync.WaitGroup
}

func newRunner(o options) *runner {
	r := &runner{
		singleFlight: o.singleFlight,
		onError:      o.onError,
	}
	if o.maxConcurrent > 0 {
		r.sem = semaphore.NewWeighted(int64(o.maxConcurrent))
	}
	return r
}

// start never blocks. A match that cannot run now is dropped.
func (r *runner) start(e *entry) {
	if r.singleFlight && !e.running.CompareAndSwap(false, true) {
		r.onError(e.binding, ErrBusy)
		return
	}
	if r.sem != nil && !r.sem.TryAcquire(1) {
		if r.singleFlight {
			e.running.Store(false)
		}
		r.onError(e.binding, ErrBusy)
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if r.sem != nil {
			defer r.sem.Release(1)
		}
		if r.singleFlight {
			defer e.running.Store(false)
		}
		r.invoke(e.binding)
	}()
}

func (r *runner) invoke(b *Binding) {
	defer func() {
		if p := recover(); p != nil {
			r.onError(b, &CallbackError{Binding: b, Panic: p, Stack: debug.Stack()})
		}
	}()
	if err := b.action.Run(); err != nil {
		r.onError(b, &CallbackError{Binding: b, Err: err})
	}
}

func (r *runner) wait() {
	r.wg.Wait()
}
