package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatPretty = "pretty"
)

// Logger wraps zerolog.Logger with the owning service name.
type Logger struct {
	logger  zerolog.Logger
	service string
}

// Init initializes the global logger from config.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	l := New(&cfg, "skeletons")
	SetGlobalLogger(l)
	Reset()

	if isConsole(cfg.Format) {
		log.Logger = l.logger
	}
}

// New creates a new logger instance writing to the configured output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger writing to w instead of stdout/stderr.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if isConsole(cfg.Format) {
		zl = newConsoleLogger(cfg, serviceName, w)
	} else {
		zl = zerolog.New(w)
	}
	zl = zl.Level(level)

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{
		logger:  zl,
		service: serviceName,
	}
}

// NewDefault creates a logger with default configuration.
func NewDefault(serviceName string) *Logger {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg, serviceName)
}

// NewFromEnv creates a logger configured from LOG_LEVEL, LOG_FORMAT and
// LOG_OUTPUT.
func NewFromEnv(serviceName string) *Logger {
	cfg := &Config{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
		Output: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
	cfg.ApplyDefaults()
	return New(cfg, serviceName)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop(), service: "nop"}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		logger:  l.logger.With().Str(FieldComponent, name).Logger(),
		service: l.service,
	}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &Logger{logger: zc.Logger(), service: l.service}
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		logger:  l.logger.With().Err(err).Logger(),
		service: l.service,
	}
}

// WithContext returns a logger carrying the zerolog logger attached to ctx,
// if any, otherwise the receiver.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if zl := zerolog.Ctx(ctx); zl != nil && zl.GetLevel() != zerolog.Disabled {
		return &Logger{logger: *zl, service: l.service}
	}
	return l
}

// GetLogger returns the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

// Enabled reports whether events at level would be written.
func (l *Logger) Enabled(level zerolog.Level) bool {
	return l.logger.GetLevel() <= level && zerolog.GlobalLevel() <= level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	event := l.logger.Fatal()
	addFields(event, fields...)
	event.Msg(msg)
}

// --- Global logger ---

var globalLogger atomic.Pointer[Logger]

// SetGlobalLogger sets the global logger instance.
func SetGlobalLogger(l *Logger) { globalLogger.Store(l) }

// GetGlobalLogger returns the global logger, creating a default one if needed.
func GetGlobalLogger() *Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	globalLogger.CompareAndSwap(nil, NewDefault("skeletons"))
	return globalLogger.Load()
}

// Package-level convenience functions delegate to the global logger.

func Debug(msg string, fields ...map[string]any) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]any) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]any) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]any) {
	GetGlobalLogger().Error(msg, fields...)
}

func Fatal(msg string, fields ...map[string]any) {
	GetGlobalLogger().Fatal(msg, fields...)
}

// WithComponent returns a component-tagged logger from the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// --- internal helpers ---

func addFields(event *zerolog.Event, fields ...map[string]any) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
}

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == "console" || f == FormatPretty
}

func outputWriter(output string) *os.File {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout
	default:
		return os.Stderr
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func newConsoleLogger(cfg *Config, serviceName string, w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i any) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			tag := fmt.Sprintf("[%s]", lvl)
			switch lvl {
			case "DEBUG":
				tag = "[DBG]"
			case "INFO":
				tag = "[INF]"
			case "WARN":
				tag = "[WRN]"
			case "ERROR":
				tag = "[ERR]"
			case "FATAL":
				tag = "[FTL]"
			}
			if cfg.NoColor {
				return tag
			}
			switch lvl {
			case "DEBUG":
				return "\033[36m" + tag + "\033[0m"
			case "INFO":
				return "\033[32m" + tag + "\033[0m"
			case "WARN":
				return "\033[33m" + tag + "\033[0m"
			case "ERROR":
				return "\033[31m" + tag + "\033[0m"
			case "FATAL":
				return "\033[35m" + tag + "\033[0m"
			}
			return tag
		},
		FormatFieldName: func(i any) string {
			return fmt.Sprintf("%s:", i)
		},
	}).With().Str("service", serviceName).Logger()
}
