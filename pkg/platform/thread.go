package platform

import (
	"runtime"
	"sync/atomic"

	"github.com/go-drift/bind/pkg/errors"
)

// uiGoroutine holds the id of the goroutine that owns widget state.
// Zero means no UI thread is bound.
var uiGoroutine atomic.Uint64

// BindUIThread marks the calling goroutine as the UI thread.
// The engine's looper calls this from its run loop; tests call it through
// SetupTestBridge. Binding replaces any previous UI thread.
func BindUIThread() {
	uiGoroutine.Store(goroutineID())
}

// UnbindUIThread clears the UI thread binding if the calling goroutine owns it.
func UnbindUIThread() {
	uiGoroutine.CompareAndSwap(goroutineID(), 0)
}

// IsUIThread reports whether the calling goroutine is the bound UI thread.
func IsUIThread() bool {
	id := uiGoroutine.Load()
	return id != 0 && id == goroutineID()
}

// AssertUIThread panics with a *errors.WrongContextError when the calling
// goroutine is not the UI thread. The panic is not meant to be recovered.
func AssertUIThread(op string) {
	gid := goroutineID()
	ui := uiGoroutine.Load()
	if ui != 0 && ui == gid {
		return
	}
	panic(&errors.WrongContextError{
		Op:          op,
		Goroutine:   gid,
		UIGoroutine: ui,
	})
}

// goroutineID returns the id of the calling goroutine, parsed from the
// header line of its stack trace ("goroutine <id> [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
