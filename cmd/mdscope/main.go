package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mdscope/cmd/mdscope/internal/bootstrap"
	"github.com/goliatone/go-mdscope/internal/commands/scopecmd"
	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

const usageText = `Usage: mdscope <command> [flags] [file]

Commands:
  isolate       Print the content of one markdown scope
  interpolate   Find and replace inside one markdown scope
  scopes        List the supported scopes

The document is read from file, or from stdin when file is omitted or "-".
Run "mdscope <command> --help" for command flags.
`

var moduleBuilder = bootstrap.BuildModule

var errUsage = errors.New("usage error")

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code: 0 on
// success, 1 when the command fails, 2 on usage errors.
func run(ctx context.Context, args []string, s streams) int {
	if len(args) == 0 {
		fmt.Fprint(s.err, usageText)
		return 2
	}

	var err error
	switch name := args[0]; name {
	case "isolate":
		err = runIsolate(ctx, args[1:], s)
	case "interpolate":
		err = runInterpolate(ctx, args[1:], s)
	case "scopes":
		err = runScopes(ctx, args[1:], s)
	case "help", "-h", "--help":
		fmt.Fprint(s.out, usageText)
		return 0
	default:
		fmt.Fprintf(s.err, "mdscope: unknown command %q\n\n%s", name, usageText)
		return 2
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(s.err, "mdscope %s: %v\n", args[0], err)
		return 2
	default:
		fmt.Fprintf(s.err, "mdscope %s: %s\n", args[0], describeError(err))
		return 1
	}
}

// describeError renders the innermost go-errors value of err as
// "message: cause (TEXT_CODE)". Other errors print unchanged.
func describeError(err error) string {
	e := innermostError(err)
	if e == nil {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(e.Message)
	switch {
	case len(e.ValidationErrors) > 0:
		b.WriteString(": ")
		b.WriteString(e.ValidationErrors.Error())
	case e.Source != nil:
		b.WriteString(": ")
		b.WriteString(e.Source.Error())
	}
	if e.TextCode != "" {
		fmt.Fprintf(&b, " (%s)", e.TextCode)
	}
	return b.String()
}

// innermostError follows err through wrapped and joined errors and returns
// the deepest *goerrors.Error found on the first branch.
func innermostError(err error) *goerrors.Error {
	var found *goerrors.Error
	for err != nil {
		if e, ok := err.(*goerrors.Error); ok {
			found = e
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 {
				return found
			}
			err = errs[0]
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			err = nil
		}
	}
	return found
}

type commonFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newFlagSet(name string, s streams) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.err)
	common := &commonFlags{}
	fs.StringVar(&common.configPath, "config", "", "path to a JSON-with-comments config file")
	fs.StringVar(&common.logLevel, "log-level", "", "enable logging to stderr at this level (trace, debug, info, warn, error)")
	fs.StringVar(&common.logFormat, "log-format", "", "log through go-logger with this format (json, console, pretty)")
	return fs, common
}

func (c *commonFlags) options() bootstrap.Options {
	return bootstrap.Options{
		ConfigPath: c.configPath,
		LogLevel:   c.logLevel,
		LogFormat:  c.logFormat,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func runIsolate(ctx context.Context, args []string, s streams) error {
	fs, common := newFlagSet("isolate", s)
	scopeName := fs.StringP("scope", "s", "", "scope key, name or identifier (defaults to the configured scope)")
	concatenate := fs.BoolP("concatenate", "c", false, "join the pieces into one string")
	delimiter := fs.StringP("delimiter", "d", "", "text placed between joined pieces (implies --concatenate)")
	asJSON := fs.Bool("json", false, "print the response as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	document, source, err := readDocument(fs.Args(), s.in)
	if err != nil {
		return err
	}
	module, err := moduleBuilder(common.options())
	if err != nil {
		return err
	}

	msg := scopecmd.IsolateCommand{
		Document:    document,
		Scope:       resolveScopeFlag(*scopeName, module),
		Concatenate: *concatenate,
	}
	if fs.Changed("delimiter") {
		d := *delimiter
		msg.Delimiter = &d
		msg.Concatenate = true
	}

	ctx = logging.ContextWithFields(ctx, map[string]any{"source": source})
	logging.WithScopeContext(module.Logger, msg.Scope, "isolate", source).Debug("mdscope.cli.command.start")

	set, err := scopecmd.RegisterScopeCommands(nil, module.Service, module.Module.LoggerProvider(), scopecmd.Sinks{
		Isolate: func(_ context.Context, resp *interfaces.IsolateResponse) error {
			return writeIsolate(s.out, resp, *asJSON)
		},
	})
	if err != nil {
		return err
	}
	return dispatch(ctx, module.Logger, set.Isolate, msg)
}

func runInterpolate(ctx context.Context, args []string, s streams) error {
	fs, common := newFlagSet("interpolate", s)
	scopeName := fs.StringP("scope", "s", "", "scope key, name or identifier (defaults to the configured scope)")
	find := fs.StringP("find", "f", "", "text to find, or an RE2 pattern with --regex")
	replace := fs.StringP("replace", "r", "", "replacement text; $1 and ${name} expand with --regex")
	regex := fs.BoolP("regex", "e", false, "treat --find as a regular expression")
	write := fs.BoolP("write", "w", false, "rewrite the file in place instead of printing it")
	asJSON := fs.Bool("json", false, "print the response as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	document, source, err := readDocument(fs.Args(), s.in)
	if err != nil {
		return err
	}
	if *write && source == stdinSource {
		return fmt.Errorf("%w: --write needs a file argument", errUsage)
	}
	module, err := moduleBuilder(common.options())
	if err != nil {
		return err
	}

	msg := scopecmd.InterpolateCommand{
		Document: document,
		Scope:    resolveScopeFlag(*scopeName, module),
		Find:     *find,
		Replace:  *replace,
		Regex:    *regex,
	}

	ctx = logging.ContextWithFields(ctx, map[string]any{"source": source})
	logging.WithScopeContext(module.Logger, msg.Scope, "interpolate", source).Debug("mdscope.cli.command.start")

	set, err := scopecmd.RegisterScopeCommands(nil, module.Service, module.Module.LoggerProvider(), scopecmd.Sinks{
		Interpolate: func(_ context.Context, resp *interfaces.InterpolateResponse) error {
			if *write {
				return writeBack(s.out, source, resp)
			}
			if *asJSON {
				return writeJSON(s.out, resp)
			}
			_, err := io.WriteString(s.out, resp.Text)
			return err
		},
	})
	if err != nil {
		return err
	}
	return dispatch(ctx, module.Logger, set.Interpolate, msg)
}

func runScopes(ctx context.Context, args []string, s streams) error {
	fs, common := newFlagSet("scopes", s)
	asJSON := fs.Bool("json", false, "print the scopes as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: scopes takes no arguments", errUsage)
	}

	module, err := moduleBuilder(common.options())
	if err != nil {
		return err
	}

	set, err := scopecmd.RegisterScopeCommands(nil, module.Service, module.Module.LoggerProvider(), scopecmd.Sinks{
		Scopes: func(_ context.Context, scopes []interfaces.ScopeInfo) error {
			if *asJSON {
				return writeJSON(s.out, scopes)
			}
			for _, info := range scopes {
				if _, err := fmt.Fprintf(s.out, "%-22s %s\n", info.Key, info.Description); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	return dispatch(ctx, module.Logger, set.Scopes, scopecmd.ListScopesCommand{})
}

// dispatch routes msg through the go-command dispatcher for the lifetime of
// one invocation. When the handler itself fails, its error is returned
// instead of the dispatcher's wrapper, which replaces the text code.
func dispatch[T command.Message](ctx context.Context, logger interfaces.Logger, handler command.Commander[T], msg T) error {
	var cause error
	tracked := command.CommandFunc[T](func(ctx context.Context, msg T) error {
		cause = handler.Execute(ctx, msg)
		return cause
	})

	sub := dispatcher.SubscribeCommand(tracked,
		runner.WithMaxRetries(0),
		runner.WithLogger(runnerLogger{logger: logging.OrNoOp(logger)}),
		runner.WithErrorHandler(func(error) {}),
	)
	defer sub.Unsubscribe()

	if err := dispatcher.Dispatch(ctx, msg); err != nil {
		if cause != nil {
			return cause
		}
		return err
	}
	return nil
}

// runnerLogger sends go-command runner diagnostics to the CLI logger at
// debug level. run reports the failure on stderr once.
type runnerLogger struct {
	logger interfaces.Logger
}

func (l runnerLogger) Info(format string, args ...any) {
	l.logger.Debug("mdscope.cli.dispatch.info", "detail", fmt.Sprintf(format, args...))
}

func (l runnerLogger) Error(format string, args ...any) {
	l.logger.Debug("mdscope.cli.dispatch.failed", "detail", fmt.Sprintf(format, args...))
}

func resolveScopeFlag(value string, module *bootstrap.Module) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return module.Config.Defaults.Scope.Key()
}

const stdinSource = "stdin"

func readDocument(args []string, stdin io.Reader) (document, source string, err error) {
	switch {
	case len(args) > 1:
		return "", "", fmt.Errorf("%w: expected at most one file, got %d", errUsage, len(args))
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), stdinSource, nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read document: %w", err)
		}
		return string(data), args[0], nil
	}
}

func writeIsolate(out io.Writer, resp *interfaces.IsolateResponse, asJSON bool) error {
	if asJSON {
		return writeJSON(out, resp)
	}
	if resp.Concatenated {
		_, err := fmt.Fprintln(out, resp.Text)
		return err
	}
	for _, item := range resp.Items {
		if _, err := fmt.Fprintln(out, item); err != nil {
			return err
		}
	}
	return nil
}

func writeBack(out io.Writer, path string, resp *interfaces.InterpolateResponse) error {
	if !resp.Changed() {
		_, err := fmt.Fprintf(out, "%s: unchanged\n", path)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(resp.Text)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(out, "%s: %d replacement(s)\n", path, resp.Replaced)
	return err
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
