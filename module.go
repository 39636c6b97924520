package mdscope

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/internal/logging/console"
	"github.com/goliatone/go-mdscope/internal/logging/gologger"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

var _ interfaces.ScopeService = (*Module)(nil)

// Option customises Module construction.
type Option func(*Module)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// Module is the configured runtime façade. It runs the package level
// operations with context checks, config defaults and structured logging.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
}

// New validates cfg and constructs a Module. When no provider is supplied and
// Features.Logger is set, the provider named by cfg.Logging is built.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil && cfg.LoggerEnabled() {
		provider, err := NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	m.logger = logging.EngineLogger(m.provider)
	return m, nil
}

// NewLoggerProvider builds the console or go-logger provider described by cfg.
func NewLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Level)
		}
		return console.NewProvider(console.Options{MinLevel: &level, Focus: cfg.Focus}), nil
	case "gologger":
		provider, err := gologger.NewProvider(cfg)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider returns the provider used for module and command logs. It
// may be nil when logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Isolate runs the package level Isolate after checking ctx.
func (m *Module) Isolate(ctx context.Context, document string, s Scope, action Action) (Result, error) {
	logger := m.scopedLogger(ctx, s, "isolate")
	if err := contextError(ctx); err != nil {
		return Result{}, err
	}

	result, err := Isolate(document, s, action)
	if err != nil {
		logger.Error("mdscope.isolate.failed", "error", err)
		return Result{}, err
	}

	logging.WithFields(logger, map[string]any{
		"pieces": result.Len(),
		"action": action.String(),
	}).Info("mdscope.isolate.completed")
	return result, nil
}

// InterpolateLiteral runs the package level InterpolateLiteral after checking ctx.
func (m *Module) InterpolateLiteral(ctx context.Context, document string, s Scope, find, replace string) (Rewrite, error) {
	logger := m.scopedLogger(ctx, s, "interpolate")
	if err := contextError(ctx); err != nil {
		return Rewrite{}, err
	}

	rewrite, err := InterpolateLiteral(document, s, find, replace)
	return m.finishInterpolate(logger, rewrite, err)
}

// InterpolateRegex runs the package level InterpolateRegex after checking ctx.
func (m *Module) InterpolateRegex(ctx context.Context, document string, s Scope, pattern, template string) (Rewrite, error) {
	logger := logging.WithFields(m.scopedLogger(ctx, s, "interpolate"), map[string]any{
		"pattern": pattern,
	})
	if err := contextError(ctx); err != nil {
		return Rewrite{}, err
	}

	rewrite, err := InterpolateRegex(document, s, pattern, template)
	return m.finishInterpolate(logger, rewrite, err)
}

// scopedLogger binds ctx so fields attached with logging.ContextWithFields
// reach every entry of the call.
func (m *Module) scopedLogger(ctx context.Context, s Scope, operation string) interfaces.Logger {
	logger := m.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logging.WithScopeContext(logger, s.Name(), operation, "")
}

func (m *Module) finishInterpolate(logger interfaces.Logger, rewrite Rewrite, err error) (Rewrite, error) {
	if err != nil {
		logger.Error("mdscope.interpolate.failed", "error", err)
		return Rewrite{}, err
	}
	logging.WithFields(logger, map[string]any{
		"replacements": rewrite.Replaced,
	}).Info("mdscope.interpolate.completed")
	return rewrite, nil
}

// IsolateDocument satisfies interfaces.ScopeService. An empty scope falls
// back to Defaults.Scope; a concatenation without a delimiter uses
// Defaults.Delimiter.
func (m *Module) IsolateDocument(ctx context.Context, req interfaces.IsolateRequest) (*interfaces.IsolateResponse, error) {
	s, err := m.resolveScope(req.Scope)
	if err != nil {
		return nil, err
	}

	action := LeaveAsVector()
	if req.Concatenate {
		delimiter := m.cfg.Defaults.Delimiter
		if req.Delimiter != nil {
			delimiter = *req.Delimiter
		}
		action = ConcatenateWith(delimiter)
	}

	result, err := m.Isolate(ctx, req.Document, s, action)
	if err != nil {
		return nil, err
	}
	return &interfaces.IsolateResponse{
		Scope:        s.Name(),
		Items:        result.Items(),
		Text:         result.Text(),
		Concatenated: result.IsConcatenated(),
	}, nil
}

// InterpolateDocument satisfies interfaces.ScopeService.
func (m *Module) InterpolateDocument(ctx context.Context, req interfaces.InterpolateRequest) (*interfaces.InterpolateResponse, error) {
	s, err := m.resolveScope(req.Scope)
	if err != nil {
		return nil, err
	}

	var rewrite Rewrite
	if req.Regex {
		rewrite, err = m.InterpolateRegex(ctx, req.Document, s, req.Find, req.Replace)
	} else {
		rewrite, err = m.InterpolateLiteral(ctx, req.Document, s, req.Find, req.Replace)
	}
	if err != nil {
		return nil, err
	}
	return &interfaces.InterpolateResponse{
		Scope:    s.Name(),
		Text:     rewrite.Text,
		Replaced: rewrite.Replaced,
	}, nil
}

// Scopes satisfies interfaces.ScopeService.
func (m *Module) Scopes() []interfaces.ScopeInfo {
	all := AllScopes()
	out := make([]interfaces.ScopeInfo, 0, len(all))
	for _, s := range all {
		out = append(out, interfaces.ScopeInfo{
			Key:         s.Key(),
			Name:        s.Name(),
			Description: s.Description(),
		})
	}
	return out
}

func (m *Module) resolveScope(value string) (Scope, error) {
	if strings.TrimSpace(value) == "" {
		return m.cfg.Defaults.Scope, nil
	}
	return ParseScope(value)
}

func contextError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
