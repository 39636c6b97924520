package runtimeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-mdscope/internal/scope"
	"github.com/tailscale/hujson"
)

var ErrLoggingProviderRequired = errors.New("mdscope config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("mdscope config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdscope config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdscope config: logging format is invalid")

// ErrDefaultScopeInvalid rejects a default scope outside the known set.
var ErrDefaultScopeInvalid = errors.New("mdscope config: default scope is invalid")

// ErrConfigFileRead wraps I/O failures while loading a config file.
var ErrConfigFileRead = errors.New("mdscope config: cannot read config file")

// ErrConfigFileInvalid wraps JSONC or JSON decoding failures.
var ErrConfigFileInvalid = errors.New("mdscope config: invalid config file")

// Config aggregates the knobs shared by the library module and the CLI host.
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Defaults DefaultsConfig `json:"defaults"`
	Features Features       `json:"features"`
}

// LoggingConfig selects and tunes the logging provider.
type LoggingConfig struct {
	Provider  string   `json:"provider"`
	Level     string   `json:"level"`
	Format    string   `json:"format,omitempty"`
	AddSource bool     `json:"add_source,omitempty"` //nolint:tagliatelle
	Focus     []string `json:"focus,omitempty"`
}

// DefaultsConfig holds the values used when a caller leaves a field unset.
type DefaultsConfig struct {
	Scope     scope.Scope `json:"scope"`
	Delimiter string      `json:"delimiter,omitempty"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool `json:"logger"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Defaults: DefaultsConfig{
			Scope: scope.Prose,
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !cfg.Defaults.Scope.Valid() {
		return fmt.Errorf("%w: %d", ErrDefaultScopeInvalid, uint8(cfg.Defaults.Scope))
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// Load reads a JSON-with-comments file and overlays it onto DefaultConfig.
// Keys missing from the file keep their default values. The merged result
// is validated before it is returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes JSONC bytes onto DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFileInvalid, err)
	}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFileInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoggerEnabled reports whether a provider should be constructed.
func (cfg Config) LoggerEnabled() bool {
	return cfg.Features.Logger && normalizeProvider(cfg.Logging.Provider) != ""
}

// ProviderName returns the normalised provider identifier.
func (cfg Config) ProviderName() string {
	return normalizeProvider(cfg.Logging.Provider)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
