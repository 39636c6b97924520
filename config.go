package mdscope

import "github.com/goliatone/go-mdscope/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrDefaultScopeInvalid     = runtimeconfig.ErrDefaultScopeInvalid
	ErrConfigFileRead          = runtimeconfig.ErrConfigFileRead
	ErrConfigFileInvalid       = runtimeconfig.ErrConfigFileInvalid
)

type (
	Config         = runtimeconfig.Config
	LoggingConfig  = runtimeconfig.LoggingConfig
	DefaultsConfig = runtimeconfig.DefaultsConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a JSON-with-comments config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
