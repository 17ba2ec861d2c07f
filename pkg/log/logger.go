// Package log provides a structured logging system for vstor services.
package log

import (
	"log/slog"
	"os"
	"time"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Fields is a map of field names to values.
type Fields map[string]interface{}

// Entry represents a single log entry.
type Entry struct {
	Level     Level
	Message   string
	Fields    Fields
	Timestamp time.Time
	Caller    string
	Error     error
}

// Logger defines the core logging interface for vstor components.
type Logger interface {
	// Standard logging methods with structured context (Field-based API)
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// Printf-style variants
	Debugf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
	Fatalf(msg string, args ...interface{})

	// WithField returns a logger with one additional field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger with additional fields.
	WithFields(fields Fields) Logger
	// WithError returns a logger that attaches err to entries.
	WithError(err error) Logger

	// With adds multiple fields to the logger (Field-based API)
	With(fields ...Field) Logger

	// WithComponent tags logs with a component name
	WithComponent(component string) Logger

	// SetLevel sets the minimum log level
	SetLevel(level Level)

	// GetLevel returns the current minimum log level
	GetLevel() Level
}

// Formatter defines the interface for formatting log entries.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// Output defines the interface for log outputs.
type Output interface {
	Write(entry *Entry, formattedEntry []byte) error
	Close() error
}

// LoggerOption is a function that configures a logger.
type LoggerOption func(*BaseLogger)

// BaseLogger implements the Logger interface.
type BaseLogger struct {
	level            Level
	fields           Fields
	errField         error
	formatter        Formatter
	outputs          []Output
	slogLogger       *slog.Logger
	exit             func(code int)
	redactKeys       []string
	sampleInitial    int
	sampleThereafter int
}

// NewLogger creates a new logger with the given options.
func NewLogger(options ...LoggerOption) Logger {
	logger := &BaseLogger{
		level:     InfoLevel,
		fields:    Fields{},
		formatter: &JSONFormatter{},
		outputs:   []Output{},
		exit:      os.Exit,
	}

	for _, option := range options {
		option(logger)
	}

	if len(logger.outputs) == 0 {
		logger.outputs = append(logger.outputs, NewConsoleOutput())
	}

	logger.slogLogger = slog.New(logger.newHandler())

	return logger
}

// newHandler builds the bridge handler with the logger's redaction and
// sampling policy applied.
func (l *BaseLogger) newHandler() slog.Handler {
	return newBridgeHandler(l).
		withRedactions(l.redactKeys).
		withSampler(l.sampleInitial, l.sampleThereafter)
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(l *BaseLogger) {
		l.level = level
	}
}

// WithFormatter sets the log formatter.
func WithFormatter(formatter Formatter) LoggerOption {
	return func(l *BaseLogger) {
		l.formatter = formatter
	}
}

// WithOutput adds an output to the logger.
func WithOutput(output Output) LoggerOption {
	return func(l *BaseLogger) {
		l.outputs = append(l.outputs, output)
	}
}

// WithExitFunc overrides the function called after a Fatal entry is written.
// Intended for tests; the default is os.Exit.
func WithExitFunc(fn func(code int)) LoggerOption {
	return func(l *BaseLogger) {
		l.exit = fn
	}
}

// WithRedaction replaces the values of the given field keys with [REDACTED].
func WithRedaction(keys ...string) LoggerOption {
	return func(l *BaseLogger) {
		l.redactKeys = append(l.redactKeys, keys...)
	}
}

// WithSampling enables per-message sampling: the first initial occurrences
// of a message pass, then one in every thereafter. thereafter <= 0 disables
// sampling.
func WithSampling(initial, thereafter int) LoggerOption {
	return func(l *BaseLogger) {
		l.sampleInitial = initial
		l.sampleThereafter = thereafter
	}
}
