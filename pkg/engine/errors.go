package engine

import "errors"

// ErrLooperStarted is returned by Run when the looper is already running or has run.
var ErrLooperStarted = errors.New("engine: looper already started")
