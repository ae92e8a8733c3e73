package platform

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/go-drift/bind/pkg/errors"
)

func TestGoroutineIDDistinct(t *testing.T) {
	here := goroutineID()
	if here == 0 {
		t.Fatal("goroutineID() = 0")
	}

	var there uint64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		there = goroutineID()
	}()
	wg.Wait()

	if there == here {
		t.Errorf("goroutineID() returned %d on two goroutines", here)
	}
}

func TestIsUIThread(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	if !IsUIThread() {
		t.Fatal("IsUIThread() = false on bound goroutine")
	}

	var other bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		other = IsUIThread()
	}()
	wg.Wait()

	if other {
		t.Error("IsUIThread() = true on a different goroutine")
	}
}

func TestUnbindUIThread(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	UnbindUIThread()
	if IsUIThread() {
		t.Error("IsUIThread() = true after UnbindUIThread")
	}
}

func TestAssertUIThread(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	AssertUIThread("test.onUI")

	var recovered any
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { recovered = recover() }()
		AssertUIThread("test.offUI")
	}()
	wg.Wait()

	wc, ok := recovered.(*errors.WrongContextError)
	if !ok {
		t.Fatalf("recovered %T, want *errors.WrongContextError", recovered)
	}
	if wc.Op != "test.offUI" {
		t.Errorf("Op = %q, want %q", wc.Op, "test.offUI")
	}
	if wc.UIGoroutine != goroutineID() {
		t.Errorf("UIGoroutine = %d, want %d", wc.UIGoroutine, goroutineID())
	}
	if !stderrors.Is(wc, errors.ErrWrongContext) {
		t.Error("errors.Is(err, ErrWrongContext) = false")
	}
}

func TestAssertUIThreadUnbound(t *testing.T) {
	defer ResetForTest()
	uiGoroutine.Store(0)

	defer func() {
		r := recover()
		wc, ok := r.(*errors.WrongContextError)
		if !ok {
			t.Fatalf("recovered %T, want *errors.WrongContextError", r)
		}
		if wc.UIGoroutine != 0 {
			t.Errorf("UIGoroutine = %d, want 0", wc.UIGoroutine)
		}
	}()
	AssertUIThread("test.unbound")
}

func TestRunOnUIThread(t *testing.T) {
	t.Run("inline on UI thread", func(t *testing.T) {
		SetupTestBridge(t.Cleanup)
		dispatched := false
		RegisterDispatch(func(cb func()) bool { dispatched = true; cb(); return true })

		ran := false
		RunOnUIThread("test.inline", func() { ran = true })

		if !ran || dispatched {
			t.Errorf("ran=%v dispatched=%v, want ran inline", ran, dispatched)
		}
	})

	t.Run("dispatched off UI thread", func(t *testing.T) {
		SetupTestBridge(t.Cleanup)
		var queued []func()
		RegisterDispatch(func(cb func()) bool { queued = append(queued, cb); return true })

		ran := false
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			RunOnUIThread("test.hop", func() { ran = true })
		}()
		wg.Wait()

		if ran {
			t.Fatal("callback ran on the calling goroutine")
		}
		if len(queued) != 1 {
			t.Fatalf("queued %d callbacks, want 1", len(queued))
		}
		queued[0]()
		if !ran {
			t.Error("queued callback did not run")
		}
	})

	t.Run("no dispatcher reports", func(t *testing.T) {
		SetupTestBridge(t.Cleanup)
		RegisterDispatch(nil)
		reported := captureErrors(t)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			RunOnUIThread("test.dropped", func() {})
		}()
		wg.Wait()

		if len(*reported) != 1 {
			t.Fatalf("reported %d errors, want 1", len(*reported))
		}
		if got := (*reported)[0]; got.Kind != errors.KindContext || got.Err != ErrNoDispatcher {
			t.Errorf("reported %v, want KindContext ErrNoDispatcher", got)
		}
	})
}

func TestRunOnUIThread_RejectedDispatchReports(t *testing.T) {
	SetupTestBridge(t.Cleanup)
	RegisterDispatch(func(func()) bool { return false })
	reported := captureErrors(t)

	ran := false
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		RunOnUIThread("test.rejected", func() { ran = true })
	}()
	wg.Wait()

	if ran {
		t.Error("rejected callback ran")
	}
	if len(*reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(*reported))
	}
	if got := (*reported)[0]; got.Op != "test.rejected" || got.Kind != errors.KindContext || got.Err != ErrDispatchRejected {
		t.Errorf("reported %v, want KindContext ErrDispatchRejected", got)
	}
}

func TestDispatch(t *testing.T) {
	defer ResetForTest()

	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch() = true with no dispatcher")
	}

	ran := false
	RegisterDispatch(func(cb func()) bool { cb(); return true })
	if !Dispatch(func() { ran = true }) || !ran {
		t.Error("Dispatch() did not run callback through the dispatcher")
	}
	if Dispatch(nil) {
		t.Error("Dispatch(nil) = true")
	}

	RegisterDispatch(func(func()) bool { return false })
	if Dispatch(func() {}) {
		t.Error("Dispatch() = true when the dispatcher rejected the callback")
	}
}
