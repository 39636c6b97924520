package scopecmd

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-mdscope/internal/commands"
	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

const (
	isolateOperation     = "scope.isolate"
	interpolateOperation = "scope.interpolate"
	listScopesOperation  = "scope.list"
)

var (
	_ command.Commander[IsolateCommand]     = (*IsolateHandler)(nil)
	_ command.Commander[InterpolateCommand] = (*InterpolateHandler)(nil)
	_ command.Commander[ListScopesCommand]  = (*ListScopesHandler)(nil)
)

// IsolateSink receives the response of a successful isolate command.
type IsolateSink func(ctx context.Context, resp *interfaces.IsolateResponse) error

// InterpolateSink receives the response of a successful interpolate command.
type InterpolateSink func(ctx context.Context, resp *interfaces.InterpolateResponse) error

// ScopesSink receives the scope catalogue.
type ScopesSink func(ctx context.Context, scopes []interfaces.ScopeInfo) error

// IsolateHandler runs IsolateCommand through the shared command handler.
type IsolateHandler struct {
	inner *commands.Handler[IsolateCommand]
}

// NewIsolateHandler creates a handler bound to service. A nil sink discards
// the response.
func NewIsolateHandler(service interfaces.ScopeService, logger interfaces.Logger, sink IsolateSink, opts ...commands.HandlerOption[IsolateCommand]) *IsolateHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg IsolateCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		resp, err := service.IsolateDocument(ctx, interfaces.IsolateRequest{
			Document:    msg.Document,
			Scope:       msg.Scope,
			Concatenate: msg.Concatenate,
			Delimiter:   msg.Delimiter,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"scope":        resp.Scope,
			"pieces":       len(resp.Items),
			"concatenated": resp.Concatenated,
		}).Info("scope.command.isolate.completed")

		if sink == nil {
			return nil
		}
		return sink(ctx, resp)
	}

	handlerOpts := []commands.HandlerOption[IsolateCommand]{
		commands.WithLogger[IsolateCommand](baseLogger),
		commands.WithOperation[IsolateCommand](isolateOperation),
		commands.WithMessageFields(func(msg IsolateCommand) map[string]any {
			fields := map[string]any{
				"scope":          msg.Scope,
				"document_bytes": len(msg.Document),
			}
			if msg.Concatenate {
				fields["concatenate"] = true
			}
			if msg.Delimiter != nil {
				fields["delimiter"] = *msg.Delimiter
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[IsolateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &IsolateHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[IsolateCommand].
func (h *IsolateHandler) Execute(ctx context.Context, msg IsolateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InterpolateHandler runs InterpolateCommand through the shared command handler.
type InterpolateHandler struct {
	inner *commands.Handler[InterpolateCommand]
}

// NewInterpolateHandler creates a handler bound to service. A nil sink
// discards the response.
func NewInterpolateHandler(service interfaces.ScopeService, logger interfaces.Logger, sink InterpolateSink, opts ...commands.HandlerOption[InterpolateCommand]) *InterpolateHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg InterpolateCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		resp, err := service.InterpolateDocument(ctx, interfaces.InterpolateRequest{
			Document: msg.Document,
			Scope:    msg.Scope,
			Find:     msg.Find,
			Replace:  msg.Replace,
			Regex:    msg.Regex,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"scope":        resp.Scope,
			"replacements": resp.Replaced,
			"changed":      resp.Changed(),
		}).Info("scope.command.interpolate.completed")

		if sink == nil {
			return nil
		}
		return sink(ctx, resp)
	}

	handlerOpts := []commands.HandlerOption[InterpolateCommand]{
		commands.WithLogger[InterpolateCommand](baseLogger),
		commands.WithOperation[InterpolateCommand](interpolateOperation),
		commands.WithMessageFields(func(msg InterpolateCommand) map[string]any {
			fields := map[string]any{
				"scope":          msg.Scope,
				"document_bytes": len(msg.Document),
			}
			if msg.Regex {
				fields["regex"] = true
				fields["pattern"] = msg.Find
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[InterpolateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InterpolateHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InterpolateCommand].
func (h *InterpolateHandler) Execute(ctx context.Context, msg InterpolateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListScopesHandler reports the supported scopes.
type ListScopesHandler struct {
	inner *commands.Handler[ListScopesCommand]
}

// NewListScopesHandler creates a handler bound to service.
func NewListScopesHandler(service interfaces.ScopeService, logger interfaces.Logger, sink ScopesSink, opts ...commands.HandlerOption[ListScopesCommand]) *ListScopesHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, _ ListScopesCommand) error {
		if sink == nil {
			return nil
		}
		return sink(ctx, service.Scopes())
	}

	handlerOpts := []commands.HandlerOption[ListScopesCommand]{
		commands.WithLogger[ListScopesCommand](baseLogger),
		commands.WithOperation[ListScopesCommand](listScopesOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListScopesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ListScopesCommand].
func (h *ListScopesHandler) Execute(ctx context.Context, msg ListScopesCommand) error {
	return h.inner.Execute(ctx, msg)
}
