// Package telemetry wraps zap for the runtime's node-lifecycle tracing.
//
// The teacher (higact.LocalRouter.handleOutboxMessages) traces every
// inter-actor message with a raw fmt.Printf. loom replaces that ad-hoc
// trace with structured, leveled logging using the logging library the
// rest of the retrieval pack reaches for (go.uber.org/zap, used
// throughout jinterlante1206-AleutianLocal's cmd/aleutian package), so a
// Client Program can filter, sample, or ship the trace instead of always
// paying for a Println.
package telemetry

import "go.uber.org/zap"

// Logger is the runtime's lifecycle tracer. The zero value is not usable;
// construct one with New or Noop.
type Logger struct {
	z *zap.SugaredLogger
}

// New returns a Logger backed by a development zap logger (human-readable,
// colorized level names) when verbose is true, or a no-op logger
// otherwise.
func New(verbose bool) *Logger {
	if !verbose {
		return Noop()
	}
	z, err := zap.NewDevelopment()
	if err != nil {
		return Noop()
	}
	return &Logger{z: z.Sugar()}
}

// Noop returns a Logger that discards everything, at negligible cost per
// call. This is the Engine's default so library consumers never pay for
// tracing they didn't ask for.
func Noop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

// Event logs a single node-lifecycle transition with structured fields.
func (l *Logger) Event(event string, fields ...any) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debugw(event, fields...)
}

// Sync flushes any buffered log entries. Callers should defer this in
// cmd/loomdemo; ignoring its error mirrors zap's own documented advice
// that Sync on a terminal-backed logger commonly returns a harmless error.
func (l *Logger) Sync() {
	if l == nil || l.z == nil {
		return
	}
	_ = l.z.Sync()
}
