package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-mdscope"
)

func TestBuildModuleDefaults(t *testing.T) {
	module, err := BuildModule(Options{})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Service == nil || module.Logger == nil {
		t.Fatalf("expected service and logger, got %+v", module)
	}
	if module.Config.Features.Logger {
		t.Fatal("expected logging disabled without flags")
	}
	if module.Module.LoggerProvider() != nil {
		t.Fatal("expected no provider without flags")
	}
}

func TestBuildModuleLoggingOverrides(t *testing.T) {
	module, err := BuildModule(Options{LogLevel: "debug"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if !module.Config.Features.Logger || module.Config.Logging.Provider != "console" || module.Config.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", module.Config.Logging)
	}

	module, err = BuildModule(Options{LogFormat: "pretty"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Config.Logging.Provider != "gologger" || module.Config.Logging.Format != "pretty" {
		t.Fatalf("unexpected logging config %+v", module.Config.Logging)
	}

	if _, err := BuildModule(Options{LogLevel: "shout"}); !errors.Is(err, mdscope.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestBuildModuleLoadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdscope.jsonc")
	if err := os.WriteFile(path, []byte(`{"defaults": {"scope": "tables", "delimiter": " | "}}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	module, err := BuildModule(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Config.Defaults.Scope != mdscope.Tables || module.Config.Defaults.Delimiter != " | " {
		t.Fatalf("unexpected defaults %+v", module.Config.Defaults)
	}

	if _, err := BuildModule(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.jsonc")}); !errors.Is(err, mdscope.ErrConfigFileRead) {
		t.Fatalf("expected ErrConfigFileRead, got %v", err)
	}
}
