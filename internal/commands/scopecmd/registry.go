package scopecmd

import (
	"errors"

	"github.com/goliatone/go-mdscope/internal/commands"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Sinks routes handler responses back to the caller.
type Sinks struct {
	Isolate     IsolateSink
	Interpolate InterpolateSink
	Scopes      ScopesSink
}

// HandlerSet groups the scope command handlers produced by RegisterScopeCommands.
type HandlerSet struct {
	Isolate     *IsolateHandler
	Interpolate *InterpolateHandler
	Scopes      *ListScopesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	isolateHandlerOpts     []commands.HandlerOption[IsolateCommand]
	interpolateHandlerOpts []commands.HandlerOption[InterpolateCommand]
	scopesHandlerOpts      []commands.HandlerOption[ListScopesCommand]
}

// WithIsolateHandlerOptions forwards options to the IsolateHandler constructor.
func WithIsolateHandlerOptions(opts ...commands.HandlerOption[IsolateCommand]) Option {
	return func(cfg *options) {
		cfg.isolateHandlerOpts = append(cfg.isolateHandlerOpts, opts...)
	}
}

// WithInterpolateHandlerOptions forwards options to the InterpolateHandler constructor.
func WithInterpolateHandlerOptions(opts ...commands.HandlerOption[InterpolateCommand]) Option {
	return func(cfg *options) {
		cfg.interpolateHandlerOpts = append(cfg.interpolateHandlerOpts, opts...)
	}
}

// WithScopesHandlerOptions forwards options to the ListScopesHandler constructor.
func WithScopesHandlerOptions(opts ...commands.HandlerOption[ListScopesCommand]) Option {
	return func(cfg *options) {
		cfg.scopesHandlerOpts = append(cfg.scopesHandlerOpts, opts...)
	}
}

// RegisterScopeCommands builds the scope command handlers and registers them
// with reg when it is non-nil. The handler set is returned so callers can
// subscribe the handlers to a dispatcher.
func RegisterScopeCommands(reg CommandRegistry, service interfaces.ScopeService, provider interfaces.LoggerProvider, sinks Sinks, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("scope command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "scope")

	set := &HandlerSet{
		Isolate:     NewIsolateHandler(service, logger, sinks.Isolate, cfg.isolateHandlerOpts...),
		Interpolate: NewInterpolateHandler(service, logger, sinks.Interpolate, cfg.interpolateHandlerOpts...),
		Scopes:      NewListScopesHandler(service, logger, sinks.Scopes, cfg.scopesHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Isolate, set.Interpolate, set.Scopes} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}
