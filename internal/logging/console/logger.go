package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-mdscope/internal/logging"
	"github.com/goliatone/go-mdscope/pkg/interfaces"
)

// Level represents the severity attached to a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelLabels = [...]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

var levelsByName = map[string]Level{
	"trace":   LevelTrace,
	"debug":   LevelDebug,
	"":        LevelInfo,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"fatal":   LevelFatal,
}

// String renders the severity label used in console output.
func (l Level) String() string {
	if int(l) < len(levelLabels) {
		return levelLabels[l]
	}
	return "INFO"
}

// ParseLevel maps a configuration level name onto a Level. An empty name
// means info; unknown names report false.
func ParseLevel(name string) (Level, bool) {
	level, ok := levelsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LevelInfo, false
	}
	return level, true
}

// Options configures the console logger provider.
type Options struct {
	// Writer receives one line per entry. Defaults to stderr so log lines
	// never mix with isolated or rewritten documents on stdout.
	Writer io.Writer
	// TimeFunc stamps entries. Defaults to time.Now.
	TimeFunc func() time.Time
	// MinLevel drops entries below the given severity. Defaults to debug.
	MinLevel *Level
	// Focus restricts output to loggers whose name equals one of the entries
	// or sits below it ("mdscope.commands" admits "mdscope.commands.scope").
	Focus []string
}

// sink is shared by every logger handed out by one provider.
type sink struct {
	mu       sync.Mutex
	out      io.Writer
	now      func() time.Time
	minLevel Level
	focus    []string
}

func (s *sink) admits(name string, level Level) bool {
	if level < s.minLevel {
		return false
	}
	if len(s.focus) == 0 {
		return true
	}
	for _, prefix := range s.focus {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			return true
		}
	}
	return false
}

func (s *sink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// best-effort: write errors are dropped
	_, _ = io.WriteString(s.out, line)
}

type provider struct {
	sink *sink
}

// NewProvider constructs a console-backed provider. Entries render as
//
//	<RFC3339 time> <LEVEL> [<logger>] <message> key=value ...
//
// with keys sorted.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{
		out:      opts.Writer,
		now:      opts.TimeFunc,
		minLevel: LevelDebug,
	}
	if s.out == nil {
		s.out = os.Stderr
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.MinLevel != nil {
		s.minLevel = *opts.MinLevel
	}
	for _, name := range opts.Focus {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.focus = append(s.focus, trimmed)
		}
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{sink: p.sink, name: strings.TrimSpace(name)}
}

type entryLogger struct {
	sink   *sink
	name   string
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	child := *l
	child.fields = merge(l.fields, fields)
	return &child
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	child := *l
	child.ctx = ctx
	return &child
}

// emit layers logger fields, then context fields, then call arguments, so
// the most specific value wins on key collisions.
func (l *entryLogger) emit(level Level, msg string, args []any) {
	if l.sink == nil || !l.sink.admits(l.name, level) {
		return
	}

	fields := merge(merge(nil, l.fields), logging.ContextFields(l.ctx))
	fields = merge(fields, pairs(args))
	// the module is already printed in brackets
	if name, ok := fields["module"].(string); ok && name == l.name {
		delete(fields, "module")
	}

	l.sink.write(render(l.sink.now().UTC(), level, l.name, msg, fields))
}

func merge(base, overlay map[string]any) map[string]any {
	if len(overlay) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

// pairs reads args as alternating keys and values. A key that is not a
// string is rendered with fmt; a trailing value without a key is kept under
// "extra".
func pairs(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			out["extra"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if key == "" {
			key = "extra"
		}
		out[key] = args[i+1]
	}
	return out
}

func render(ts time.Time, level Level, name, msg string, fields map[string]any) string {
	var b strings.Builder
	b.Grow(64 + len(name) + len(msg) + len(fields)*16)
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	if name != "" {
		b.WriteString(" [")
		b.WriteString(name)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Duration:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case []string:
		return quote(strings.Join(v, ","))
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

// quote wraps values containing spaces, control bytes or '=' so a line can be
// split back into key=value tokens.
func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
