package monitoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel parses a level name such as "debug" or "WARN".
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level '%s': must be one of [debug, info, warn, error]", s)
	}
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	FormatText LogFormat = iota
	FormatJSON
)

func (f LogFormat) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseLogFormat parses "text" or "json".
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid log format '%s': must be one of [text, json]", s)
	}
}

// StructuredLogger writes leveled slog records carrying a fixed set of fields.
type StructuredLogger struct {
	logger    *slog.Logger
	level     LogLevel
	fields    map[string]any
	component string
}

// LoggerConfig configures the structured logger
type LoggerConfig struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
	Fields    map[string]any
}

// NewStructuredLogger creates a new structured logger with the given configuration
func NewStructuredLogger(config LoggerConfig) *StructuredLogger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	fields := make(map[string]any, len(config.Fields)+2)
	for k, v := range config.Fields {
		fields[k] = v
	}
	fields["service"] = "wxf"
	if config.Component != "" {
		fields["component"] = config.Component
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.slogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &StructuredLogger{
		logger:    slog.New(handler),
		level:     config.Level,
		fields:    fields,
		component: config.Component,
	}
}

// NewLoggerFromEnv builds a logger whose level and format come from
// WXF_LOG_LEVEL and WXF_LOG_FORMAT. Unknown values fall back to info/text.
func NewLoggerFromEnv(component string, output io.Writer) *StructuredLogger {
	level, _ := ParseLogLevel(os.Getenv("WXF_LOG_LEVEL"))
	format, _ := ParseLogFormat(os.Getenv("WXF_LOG_FORMAT"))

	return NewStructuredLogger(LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    output,
		Component: component,
	})
}

// NewDiscardLogger returns a logger that drops every record.
func NewDiscardLogger() *StructuredLogger {
	return NewStructuredLogger(LoggerConfig{Level: LevelError, Output: io.Discard})
}

// WithFields returns a new logger with additional fields
func (l *StructuredLogger) WithFields(fields map[string]any) *StructuredLogger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &StructuredLogger{
		logger:    l.logger,
		level:     l.level,
		fields:    merged,
		component: l.component,
	}
}

// WithRun attaches the run ID carried by ctx, if any.
func (l *StructuredLogger) WithRun(ctx context.Context) *StructuredLogger {
	if id, ok := RunIDFromContext(ctx); ok {
		return l.WithFields(map[string]any{"run_id": id})
	}
	return l
}

func (l *StructuredLogger) Debug(msg string, args ...any) {
	l.log(context.Background(), LevelDebug, msg, args...)
}

func (l *StructuredLogger) Info(msg string, args ...any) {
	l.log(context.Background(), LevelInfo, msg, args...)
}

func (l *StructuredLogger) Warn(msg string, args ...any) {
	l.log(context.Background(), LevelWarn, msg, args...)
}

func (l *StructuredLogger) Error(msg string, args ...any) {
	l.log(context.Background(), LevelError, msg, args...)
}

func (l *StructuredLogger) log(ctx context.Context, level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}

	attrs := make([]any, 0, len(l.fields)*2)
	for _, k := range sortedFieldKeys(l.fields) {
		attrs = append(attrs, k, l.fields[k])
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Log(ctx, level.slogLevel(), msg, attrs...)
}

// LogConversion logs the outcome of converting one input.
func (l *StructuredLogger) LogConversion(ctx context.Context, input string, duration time.Duration, err error, metadata map[string]any) {
	fields := map[string]any{
		"input":       input,
		"duration_ms": duration.Milliseconds(),
	}
	for k, v := range metadata {
		fields[k] = v
	}

	if err != nil {
		fields["error"] = err.Error()
		l.WithRun(ctx).WithFields(fields).Error("conversion failed")
		return
	}
	l.WithRun(ctx).WithFields(fields).Info("conversion completed")
}

// LogArtifact logs one written output.
func (l *StructuredLogger) LogArtifact(ctx context.Context, name string, format string, size int) {
	l.WithRun(ctx).WithFields(map[string]any{
		"artifact": name,
		"format":   format,
		"bytes":    size,
	}).Debug("artifact written")
}

func sortedFieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
