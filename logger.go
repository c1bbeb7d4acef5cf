package hxup

// SLogger abstracts the [*slog.Logger] behavior.
//
// The engine logs rule registration and follow dispatch at Debug, and every
// error reported by the default OnError handler at Error.
//
// The [*slog.Logger] type satisfies this interface.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultSLogger returns a no-op [SLogger] that discards all output.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

func (discardSLogger) Debug(msg string, args ...any) {}
func (discardSLogger) Info(msg string, args ...any)  {}
func (discardSLogger) Warn(msg string, args ...any)  {}
func (discardSLogger) Error(msg string, args ...any) {}
