// Package logging provides the leveled key/value logger used across
// targetorder. Entries render as `LEVEL: message | k=v k=v` with fields
// sorted by key, so output is stable across runs.
package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for per-step engine tracing.
	LevelDebug Level = iota
	// LevelInfo is for committed changes.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failures surfaced to the user.
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a config or flag value such as "warn" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// sink is the level and destination shared by a logger and its children.
type sink struct {
	mu     sync.RWMutex
	level  Level
	output *log.Logger
}

type field struct {
	key   string
	value interface{}
}

// Logger writes leveled entries carrying context fields. Children made with
// With or WithFields share their parent's level and output, so SetLevel on
// the root applies everywhere.
type Logger struct {
	sink   *sink
	fields []field
}

var defaultLogger = New()

// New creates a Logger writing to stderr at warn level.
func New() *Logger {
	return &Logger{sink: &sink{
		level:  LevelWarn,
		output: log.New(os.Stderr, "", log.LstdFlags),
	}}
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// SetOutput sets the output logger.
func (l *Logger) SetOutput(output *log.Logger) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = output
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return level >= l.sink.level
}

// With returns a child Logger with one more context field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return l.child([]field{{key, value}})
}

// WithFields returns a child Logger with additional context fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	extra := make([]field, 0, len(fields))
	for k, v := range fields {
		extra = append(extra, field{k, v})
	}
	return l.child(extra)
}

func (l *Logger) child(extra []field) *Logger {
	fields := make([]field, 0, len(l.fields)+len(extra))
	fields = append(fields, l.fields...)
	fields = append(fields, extra...)
	return &Logger{sink: l.sink, fields: fields}
}

// render formats one entry. Later fields override earlier ones with the
// same key; inline keyVals override context fields.
func render(level Level, msg string, fields []field, keyVals []interface{}) string {
	values := make(map[string]interface{}, len(fields)+len(keyVals)/2)
	for _, f := range fields {
		values[f.key] = f.value
	}
	for i := 0; i+1 < len(keyVals); i += 2 {
		if key, ok := keyVals[i].(string); ok {
			values[key] = keyVals[i+1]
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", level, msg)
	if len(values) == 0 {
		return sb.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString(" |")
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%s", k, formatValue(values[k]))
	}
	return sb.String()
}

func (l *Logger) log(level Level, msg string, keyVals ...interface{}) {
	l.sink.mu.RLock()
	minLevel, output := l.sink.level, l.sink.output
	l.sink.mu.RUnlock()

	if level < minLevel {
		return
	}
	output.Print(render(level, msg, l.fields, keyVals))
}

// formatValue quotes strings containing whitespace and all errors.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case []string:
		return "[" + strings.Join(val, ",") + "]"
	case error:
		return fmt.Sprintf("%q", val.Error())
	default:
		return fmt.Sprint(v)
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyVals ...interface{}) {
	l.log(LevelDebug, msg, keyVals...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyVals ...interface{}) {
	l.log(LevelInfo, msg, keyVals...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyVals ...interface{}) {
	l.log(LevelWarn, msg, keyVals...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyVals ...interface{}) {
	l.log(LevelError, msg, keyVals...)
}
