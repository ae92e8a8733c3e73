// Package errors provides structured error handling for widget bindings.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a platform channel or native bridge error.
	KindPlatform
	// KindParsing indicates a native callback payload could not be parsed.
	KindParsing
	// KindContext indicates work was attempted off the UI thread or could
	// not be marshaled onto it.
	KindContext
	// KindDelivery indicates a subscriber failed while receiving an event.
	KindDelivery
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindParsing:
		return "parsing"
	case KindContext:
		return "context"
	case KindDelivery:
		return "delivery"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BindError represents a structured error raised while binding to a widget.
type BindError struct {
	// Op is the operation that failed (e.g., "platform.handleSeekBarCall").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// View is the platform view ID, if applicable.
	View int64
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindError) Error() string {
	if e.View != 0 {
		return fmt.Sprintf("%s [%s] view=%d: %v", e.Op, e.Kind, e.View, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// ErrWrongContext matches any *WrongContextError via errors.Is.
var ErrWrongContext = errors.New("not on the UI thread")

// WrongContextError is raised when widget or listener state is touched from a
// goroutine other than the UI thread. It is fatal to the offending call.
type WrongContextError struct {
	// Op is the operation that was attempted.
	Op string
	// Goroutine is the id of the calling goroutine.
	Goroutine uint64
	// UIGoroutine is the id of the bound UI goroutine, or zero if none is bound.
	UIGoroutine uint64
}

func (e *WrongContextError) Error() string {
	if e.UIGoroutine == 0 {
		return fmt.Sprintf("%s: %v (goroutine %d, no UI thread bound)", e.Op, ErrWrongContext, e.Goroutine)
	}
	return fmt.Sprintf("%s: %v (goroutine %d, UI thread is goroutine %d)", e.Op, ErrWrongContext, e.Goroutine, e.UIGoroutine)
}

// Is reports whether target is ErrWrongContext.
func (e *WrongContextError) Is(target error) bool {
	return target == ErrWrongContext
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Looper").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse native callback data.
type ParseError struct {
	// Method is the native method whose arguments failed to parse.
	Method string
	// Field is the argument that was missing or malformed.
	Field string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s of %s: got %T", e.Field, e.Method, e.Got)
}

// ErrorHandler receives errors reported by the binding layer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BindError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
