package platform

import (
	"sync"

	"github.com/go-drift/bind/pkg/errors"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func()) bool
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// fn reports whether the callback was accepted; a stopped UI loop returns false.
// This should be called once by the engine during initialization.
func RegisterDispatch(fn func(callback func()) bool) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered, the dispatch function rejected it, or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	return fn(callback)
}

// RunOnUIThread runs callback inline when called on the UI thread and
// dispatches it otherwise. It does not wait for a dispatched callback.
// If the callback cannot be scheduled it is dropped and reported.
func RunOnUIThread(op string, callback func()) {
	if callback == nil {
		return
	}
	if IsUIThread() {
		callback()
		return
	}

	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()

	var err error
	switch {
	case fn == nil:
		err = ErrNoDispatcher
	case !fn(callback):
		err = ErrDispatchRejected
	default:
		return
	}
	errors.Report(&errors.BindError{
		Op:   op,
		Kind: errors.KindContext,
		Err:  err,
	})
}
