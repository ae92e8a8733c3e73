// Package engine provides the UI-owning execution context.
//
// A Looper is a single goroutine that drains a queue of callbacks. While it
// runs, its goroutine is bound as the platform UI thread, so widget state and
// binding listeners may only be touched from callbacks posted to it.
//
//	l := engine.NewLooper()
//	l.Install()
//	go l.Run(ctx)
//	l.Sync(func() { sub = bind.Changes(view).Subscribe(handle) })
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-drift/bind/pkg/errors"
	"github.com/go-drift/bind/pkg/platform"
)

// Looper serializes callbacks onto one goroutine.
type Looper struct {
	dispatchMu    sync.Mutex
	dispatchQueue []func()
	wake          chan struct{}
	stop          chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
	started       atomic.Bool
	stopped       atomic.Bool
}

// NewLooper creates a looper. Call Run to start it.
func NewLooper() *Looper {
	return &Looper{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Install registers the looper as the platform dispatch function.
func (l *Looper) Install() {
	platform.RegisterDispatch(l.Post)
}

// Post queues callback to run on the looper goroutine. It returns false if
// the looper has stopped or callback is nil. Callbacks run in post order.
func (l *Looper) Post(callback func()) bool {
	if callback == nil || l.stopped.Load() {
		return false
	}
	l.dispatchMu.Lock()
	l.dispatchQueue = append(l.dispatchQueue, callback)
	l.dispatchMu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Sync runs callback on the looper goroutine and waits for it to finish.
// On the looper goroutine itself the callback runs inline. It returns false
// if the looper stopped before the callback ran.
func (l *Looper) Sync(callback func()) bool {
	if callback == nil {
		return false
	}
	if platform.IsUIThread() && l.started.Load() && !l.stopped.Load() {
		l.invoke(callback)
		return true
	}
	ran := make(chan struct{})
	if !l.Post(func() {
		defer close(ran)
		callback()
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Run binds the calling goroutine as the UI thread and processes callbacks
// until ctx is done or Stop is called. Callbacks still queued at that point
// are dropped. Run returns ctx.Err() when the context ends the loop.
func (l *Looper) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLooperStarted
	}
	platform.BindUIThread()
	defer func() {
		l.stopped.Store(true)
		platform.UnbindUIThread()
		close(l.done)
	}()

	for {
		for _, callback := range l.drainDispatchQueue() {
			l.invoke(callback)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.wake:
		}
	}
}

// Stop ends the loop after the callback currently running, if any.
func (l *Looper) Stop() {
	l.stopOnce.Do(func() {
		l.stopped.Store(true)
		close(l.stop)
	})
}

// Done is closed once Run has returned.
func (l *Looper) Done() <-chan struct{} {
	return l.done
}

func (l *Looper) drainDispatchQueue() []func() {
	l.dispatchMu.Lock()
	callbacks := l.dispatchQueue
	l.dispatchQueue = nil
	l.dispatchMu.Unlock()
	return callbacks
}

// invoke runs one callback. Panics are reported and swallowed, except
// thread affinity violations, which terminate the loop.
func (l *Looper) invoke(callback func()) {
	defer errors.Recover("engine.Looper")
	callback()
}
