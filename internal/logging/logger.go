package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// Module names requested from a LoggerProvider. Providers with focus support
// filter on these prefixes.
const (
	RootModule     = "mdscope"
	EngineModule   = RootModule + ".engine"
	CommandsModule = RootModule + ".commands"
	CLIModule      = RootModule + ".cli"
)

const (
	fieldModule    = "module"
	fieldScope     = "scope"
	fieldOperation = "operation"
	fieldSource    = "source"
)

// SubModule nests name under parent ("mdscope.commands" + "scope"). A blank
// name returns parent.
func SubModule(parent, name string) string {
	name = strings.Trim(strings.TrimSpace(name), ".")
	if name == "" {
		return parent
	}
	return parent + "." + name
}

// ModuleLogger requests the logger for module from provider and tags it with
// a module field. A nil provider, or one that returns nil, yields NoOp. An
// empty module means RootModule.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	return WithFields(OrNoOp(logger), map[string]any{fieldModule: module})
}

// EngineLogger is used by the Module facade around isolation and
// interpolation calls.
func EngineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, EngineModule)
}

// CommandsLogger is the root of the command handler namespace.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, CommandsModule)
}

// CLILogger is used by the mdscope binary.
func CLILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, CLIModule)
}

// WithFields returns logger with a copy of fields attached. Loggers without
// FieldsLogger support are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}

// WithScopeContext tags logger with the scope, operation and document source
// (file path or "stdin"). Blank values are skipped.
func WithScopeContext(logger interfaces.Logger, scope, operation, source string) interfaces.Logger {
	fields := make(map[string]any, 3)
	for key, value := range map[string]string{
		fieldScope:     scope,
		fieldOperation: operation,
		fieldSource:    source,
	} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// OrNoOp returns logger, or NoOp when it is nil.
func OrNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
