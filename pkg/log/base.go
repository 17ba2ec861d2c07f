package log

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// log is the single funnel for all leveled methods. It captures the caller PC
// two frames above (exported method -> log) and hands a slog.Record to the
// bridge handler so every entry flows through the formatter/outputs pipeline.
func (l *BaseLogger) log(level Level, msg string, attrs []slog.Attr) {
	if level < l.level {
		return
	}

	merged := attrsFromMap(l.fields)
	if l.errField != nil {
		merged = append(merged, slog.Any("error", l.errField))
	}
	merged = append(merged, attrs...)

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), toSlogLevel(level), msg, pcs[0])
	r.AddAttrs(merged...)
	_ = l.slogLogger.Handler().Handle(context.Background(), r)

	if level == FatalLevel {
		for _, out := range l.outputs {
			_ = out.Close()
		}
		l.exit(1)
	}
}

// Debug logs a message at DebugLevel.
func (l *BaseLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, attrsFromFieldSlice(fields))
}

// Info logs a message at InfoLevel.
func (l *BaseLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, attrsFromFieldSlice(fields))
}

// Warn logs a message at WarnLevel.
func (l *BaseLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, attrsFromFieldSlice(fields))
}

// Error logs a message at ErrorLevel.
func (l *BaseLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, attrsFromFieldSlice(fields))
}

// Fatal logs a message at FatalLevel, flushes outputs, and exits the process.
func (l *BaseLogger) Fatal(msg string, fields ...Field) {
	l.log(FatalLevel, msg, attrsFromFieldSlice(fields))
}

// Debugf logs a printf-formatted message at DebugLevel.
func (l *BaseLogger) Debugf(msg string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(msg, args...), nil)
}

// Infof logs a printf-formatted message at InfoLevel.
func (l *BaseLogger) Infof(msg string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(msg, args...), nil)
}

// Warnf logs a printf-formatted message at WarnLevel.
func (l *BaseLogger) Warnf(msg string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(msg, args...), nil)
}

// Errorf logs a printf-formatted message at ErrorLevel.
func (l *BaseLogger) Errorf(msg string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(msg, args...), nil)
}

// Fatalf logs a printf-formatted message at FatalLevel and exits the process.
func (l *BaseLogger) Fatalf(msg string, args ...interface{}) {
	l.log(FatalLevel, fmt.Sprintf(msg, args...), nil)
}

// clone returns a copy of the logger with its own fields map and bridge.
func (l *BaseLogger) clone() *BaseLogger {
	nl := *l
	nl.fields = make(Fields, len(l.fields))
	for k, v := range l.fields {
		nl.fields[k] = v
	}
	nl.slogLogger = slog.New(nl.newHandler())
	return &nl
}

// WithField returns a logger with one additional field.
func (l *BaseLogger) WithField(key string, value interface{}) Logger {
	nl := l.clone()
	nl.fields[key] = value
	return nl
}

// WithFields returns a logger with additional fields.
func (l *BaseLogger) WithFields(fields Fields) Logger {
	nl := l.clone()
	for k, v := range fields {
		nl.fields[k] = v
	}
	return nl
}

// WithError returns a logger that attaches err to every entry.
func (l *BaseLogger) WithError(err error) Logger {
	nl := l.clone()
	nl.errField = err
	return nl
}

// With adds multiple fields to the logger.
func (l *BaseLogger) With(fields ...Field) Logger {
	nl := l.clone()
	for _, f := range fields {
		nl.fields[f.Key] = f.Value
	}
	return nl
}

// WithComponent tags logs with a component name.
func (l *BaseLogger) WithComponent(component string) Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *BaseLogger) SetLevel(level Level) { l.level = level }

// GetLevel returns the current minimum log level.
func (l *BaseLogger) GetLevel() Level { return l.level }
