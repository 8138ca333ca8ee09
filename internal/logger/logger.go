// SPDX-License-Identifier: Apache-2.0

// Package logger provides leveled, structured logging on top of charm's log.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type LogLevel string

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

// Logger is the logging surface used across the module.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

type ctxKey struct{}

// LoggerCtxKey is the context key under which a Logger is stored.
var LoggerCtxKey = ctxKey{}

type loggerImpl struct {
	charmLogger *charmlog.Logger
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) { l.charmLogger.Debug(msg, keyvals...) }
func (l *loggerImpl) Info(msg string, keyvals ...any)  { l.charmLogger.Info(msg, keyvals...) }
func (l *loggerImpl) Warn(msg string, keyvals ...any)  { l.charmLogger.Warn(msg, keyvals...) }
func (l *loggerImpl) Error(msg string, keyvals ...any) { l.charmLogger.Error(msg, keyvals...) }

func (l *loggerImpl) With(keyvals ...any) Logger {
	return &loggerImpl{charmLogger: l.charmLogger.With(keyvals...)}
}

// ParseLevel maps a flag value to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DebugLevel:
		return DebugLevel
	case WarnLevel:
		return WarnLevel
	case ErrorLevel:
		return ErrorLevel
	case DisabledLevel:
		return DisabledLevel
	default:
		return InfoLevel
	}
}

func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	TimeFormat string
}

// DefaultConfig logs at info level to stderr; stdout stays free for the MCP
// stdio transport.
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		TimeFormat: "15:04:05",
	}
}

func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	charmLogger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	}
	return &loggerImpl{charmLogger: charmLogger}
}

var defaultLogger = NewLogger(nil)

// SetDefault replaces the logger returned by FromContext when none is attached.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}

func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

// FromContext returns the context's logger or the default one.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
			return l
		}
	}
	return defaultLogger
}
