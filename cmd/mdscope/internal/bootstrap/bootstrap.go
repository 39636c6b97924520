package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-mdscope"
	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// Options captures the CLI inputs that shape the module configuration.
type Options struct {
	// ConfigPath points at a JSON-with-comments config file. Empty uses defaults.
	ConfigPath string
	// LogLevel enables logging at the given level when non-empty.
	LogLevel string
	// LogFormat selects the go-logger provider with the given format when non-empty.
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the mdscope module together with the service and logger the
// CLI commands use.
type Module struct {
	Module  *mdscope.Module
	Service interfaces.ScopeService
	Logger  interfaces.Logger
	Config  mdscope.Config
}

// BuildModule loads configuration, applies CLI overrides and constructs the module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = format
	}

	moduleOpts := []mdscope.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, mdscope.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := mdscope.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise mdscope module: %w", err)
	}

	return &Module{
		Module:  module,
		Service: module,
		Logger:  logging.CLILogger(module.LoggerProvider()),
		Config:  cfg,
	}, nil
}

func loadConfig(path string) (mdscope.Config, error) {
	if strings.TrimSpace(path) == "" {
		return mdscope.DefaultConfig(), nil
	}
	cfg, err := mdscope.LoadConfig(path)
	if err != nil {
		return mdscope.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
