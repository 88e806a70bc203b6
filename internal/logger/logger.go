// Package logger builds the zap loggers used across sclkraft.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "CONSOLE"
	FormatJSON    Format = "JSON"
)

// Environment fallbacks for the root command flags.
const (
	EnvLevel  = "SCLKRAFT_LOG_LEVEL"
	EnvFormat = "SCLKRAFT_LOG_FORMAT"
)

// Component names.
const (
	ComponentValidate = "validate"
	ComponentFix      = "fix"
	ComponentMCP      = "mcp"
	ComponentCache    = "cache"
)

// ParseLevel converts a level name to a zapcore.Level. Unknown names map to WARN.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ParseFormat converts a format name, defaulting to console.
func ParseFormat(format string) Format {
	if Format(strings.ToUpper(strings.TrimSpace(format))) == FormatJSON {
		return FormatJSON
	}
	return FormatConsole
}

// FromEnv returns value when set, otherwise the environment variable.
func FromEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}

// New creates a logger writing to stderr so command output stays parseable.
func New(level string, format Format) *zap.Logger {
	return NewWithSink(level, format, zapcore.Lock(os.Stderr))
}

// NewWithSink creates a logger writing to the given syncer.
func NewWithSink(level string, format Format, sink zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
	}

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core)
}
