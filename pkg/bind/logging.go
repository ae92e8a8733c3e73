package bind

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger sets the logger for listener lifecycle records (debug level).
// Pass nil to discard them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}
