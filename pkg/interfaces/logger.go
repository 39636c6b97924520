package interfaces

import "context"

// Logger is the leveled logger accepted by Module and the command handlers.
// Its method set matches github.com/goliatone/go-logger, so a glog logger can
// be passed in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider returns the logger for a dotted module name such as
// "mdscope.engine" or "mdscope.commands.scope".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fields on every
// entry. Loggers without it still work; their entries just lack the scope,
// operation and module tags.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
