package commands

import (
	"strings"

	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// CommandLogger returns a logger for one command module (for example
// "scope"), nested under the mdscope.commands namespace. An empty module
// yields the namespace root.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
			"component": "command",
		})
	}
	logger := logging.ModuleLogger(provider, logging.SubModule(logging.CommandsModule, name))
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
