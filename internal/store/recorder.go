package store

import "log/slog"

// Recorder receives diagnostic detail for failed operations.
type Recorder interface {
	Record(op string, err error)
}

// LogRecorder writes diagnostics to a slog.Logger. A nil Logger uses slog.Default().
type LogRecorder struct {
	Logger *slog.Logger
}

// Record logs err at warn level.
func (r LogRecorder) Record(op string, err error) {
	l := r.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Warn("context store operation failed", "op", op, "err", err)
}
