package platform

import "errors"

// Sentinel errors for platform operations.
var (
	// ErrNoDispatcher is reported when work must hop to the UI thread but no
	// dispatch function is registered.
	ErrNoDispatcher = errors.New("platform: no UI dispatcher registered")

	// ErrDispatchRejected is reported when the UI dispatcher refuses work,
	// typically because the UI loop has stopped.
	ErrDispatchRejected = errors.New("platform: UI dispatcher rejected callback")

	// ErrViewNotFound indicates a native callback named an unknown view.
	ErrViewNotFound = errors.New("platform: view not found")
)
