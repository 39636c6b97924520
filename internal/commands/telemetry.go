package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	TelemetryStatusFailed  TelemetryStatus = "failed"
	// TelemetryStatusContextError covers cancellation and deadline expiry,
	// whether observed before or after the wrapped function ran.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one execution. Logger already carries the command
// and message fields.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution in place of the built-in outcome
// entry.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry writes the outcome entry to logger instead of the
// handler's own logger, re-attaching the message fields.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.OrNoOp(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		info.Logger = logging.WithFields(logger, info.Fields)
		logOutcome(info.Logger, info)
	}
}

var outcomeMessages = map[TelemetryStatus]string{
	TelemetryStatusSuccess:      "command.execute.success",
	TelemetryStatusFailed:       "command.execute.failed",
	TelemetryStatusContextError: "command.execute.context_error",
}

func logOutcome(logger interfaces.Logger, info TelemetryInfo) {
	msg, ok := outcomeMessages[info.Status]
	if !ok {
		msg = outcomeMessages[TelemetryStatusFailed]
	}
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	if info.Status == TelemetryStatusSuccess {
		logger.Info(msg, args...)
		return
	}
	args = append(args, "error", info.Error)
	if code := TextCode(info.Error); code != "" {
		args = append(args, "text_code", code)
	}
	logger.Error(msg, args...)
}
