package main

import (
	"log/slog"

	"github.com/go-drift/bind/pkg/platform"
)

// loopbackBridge stands in for the native side. Calls from Go are logged
// and acknowledged; user gestures are fed back through platform.HandleMethodCall.
type loopbackBridge struct {
	logger *slog.Logger
}

func (b loopbackBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	b.logger.Debug("native call", slog.String("channel", channel), slog.String("method", method), slog.String("args", string(args)))
	return platform.DefaultCodec.Encode(nil)
}
