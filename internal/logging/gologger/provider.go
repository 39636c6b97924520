package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/internal/runtimeconfig"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// namespace qualifies bare focus entries such as "engine".
const namespace = "mdscope"

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out go-logger child loggers adapted to interfaces.Logger.
// Loggers are cached per name.
type Provider struct {
	root *glog.BaseLogger

	mu      sync.Mutex
	loggers map[string]interfaces.Logger
}

// NewProvider builds a go-logger root from the logging section of the
// runtime config. Unknown levels and formats are rejected with the matching
// runtimeconfig sentinel.
func NewProvider(cfg runtimeconfig.LoggingConfig) (*Provider, error) {
	options, err := rootOptions(cfg)
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(options...)
	if focus := qualifyFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root, loggers: map[string]interfaces.Logger{}}, nil
}

func rootOptions(cfg runtimeconfig.LoggingConfig) ([]glog.Option, error) {
	var options []glog.Option

	if name := strings.ToLower(strings.TrimSpace(cfg.Level)); name != "" {
		level, ok := levels[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingFormatInvalid, cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return options, nil
}

// qualifyFocus trims entries and prefixes bare module names with the
// mdscope namespace, so "commands" focuses "mdscope.commands".
func qualifyFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			continue
		case name == namespace || strings.HasPrefix(name, namespace+"."):
			out = append(out, name)
		default:
			out = append(out, namespace+"."+name)
		}
	}
	return out
}

// GetLogger satisfies interfaces.LoggerProvider. An empty name returns the
// root logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	if logger, ok := p.loggers[name]; ok {
		return logger
	}

	var inner glog.Logger = p.root
	if name != "" {
		inner = p.root.GetLogger(name)
	}
	logger := adapt(inner)
	p.loggers[name] = logger
	return logger
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

// adapter forwards to go-logger. When the wrapped logger cannot carry fields
// itself, they are kept in extra and appended to every call.
type adapter struct {
	inner glog.Logger
	extra []any
}

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, a.args(args)...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, a.args(args)...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, a.args(args)...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, a.args(args)...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, a.args(args)...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, a.args(args)...) }

func (a *adapter) args(args []any) []any {
	if len(a.extra) == 0 {
		return args
	}
	out := make([]any, 0, len(a.extra)+len(args))
	out = append(out, a.extra...)
	return append(out, args...)
}

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}

	if with, ok := a.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		inner := with.WithFields(copied)
		if inner == nil {
			return a
		}
		return &adapter{inner: inner, extra: a.extra}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	extra := make([]any, 0, len(a.extra)+len(keys)*2)
	extra = append(extra, a.extra...)
	for _, k := range keys {
		extra = append(extra, k, fields[k])
	}
	return &adapter{inner: a.inner, extra: extra}
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	inner := a.inner.WithContext(ctx)
	if inner == nil {
		return a
	}
	return &adapter{inner: inner, extra: a.extra}
}
