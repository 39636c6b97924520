package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/internal/logging/console"
	"github.com/goliatone/go-mdscope/internal/scope"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)
}

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: fixedClock,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("mdscope.engine")
	logger = logging.WithFields(logger, map[string]any{"module": "mdscope.engine", "operation": "isolate"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"source": "README.md",
	})
	logger = logger.WithContext(ctx)

	logger.Info("mdscope.isolate.completed",
		"scope", scope.CodeBlock,
		"pieces", 3,
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z INFO [mdscope.engine] mdscope.isolate.completed operation=isolate pieces=3 scope="Code Block" source=README.md`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_ArgumentsOverrideContextAndFields(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"source": "ctx"})
	logger := logging.WithFields(provider.GetLogger("mdscope.cli"), map[string]any{"source": "fields"}).
		WithContext(ctx)

	logger.Warn("cli.read", "source", "args", "dangling")

	got := strings.TrimSpace(buf.String())
	if !strings.Contains(got, "source=args") {
		t.Fatalf("expected call arguments to win, got %s", got)
	}
	if !strings.Contains(got, "extra=dangling") {
		t.Fatalf("expected unpaired argument to be kept, got %s", got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("mdscope.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_FocusFiltersByModulePrefix(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: fixedClock,
		Focus:    []string{" mdscope.commands "},
	})

	provider.GetLogger("mdscope.engine").Info("engine.entry")
	provider.GetLogger("mdscope.commands").Info("root.entry")
	provider.GetLogger("mdscope.commands.scope").Info("child.entry")
	provider.GetLogger("mdscope.commandsx").Info("sibling.entry")

	out := buf.String()
	for _, want := range []string{"root.entry", "child.entry"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"engine.entry", "sibling.entry"} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("unexpected %s in output:\n%s", unwanted, out)
		}
	}
}

func TestConsoleLogger_FormatsValues(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})

	provider.GetLogger("").Error("failed",
		"error", errors.New("bad pattern"),
		"duration", 1500*time.Millisecond,
		"empty", "",
		"ok", false,
		"focus", []string{"a", "b"},
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z ERROR failed duration=1.5s empty="" error="bad pattern" focus=a,b ok=false`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"":        console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", input, got, ok)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}
