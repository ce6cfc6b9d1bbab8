package log

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu      sync.RWMutex
	defaultLogger Logger = newZerologLogger(
		zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	)
	minLevel = LevelInfo
)

// GetLogger returns the default logger instance.
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns a logger with a component name attached.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger replaces the default logger. Useful for tests and for
// applications that want to route library logs into their own sink.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = l
}

// SetLevel sets the minimum level emitted by the default logger.
func SetLevel(level Level) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	minLevel = level
}

func currentLevel() Level {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return minLevel
}

// zerologLogger implements Logger on top of a zerolog.Logger.
type zerologLogger struct {
	zl zerolog.Logger
}

func newZerologLogger(zl zerolog.Logger) *zerologLogger {
	return &zerologLogger{zl: zl}
}

// NewZerologLogger wraps an existing zerolog.Logger in the Logger interface.
func NewZerologLogger(zl zerolog.Logger) Logger {
	return newZerologLogger(zl)
}

// Debug implements Logger.Debug.
func (l *zerologLogger) Debug(msg string, fields ...any) {
	if currentLevel() > LevelDebug {
		return
	}
	l.emit(l.zl.Debug(), msg, fields...)
}

// Info implements Logger.Info.
func (l *zerologLogger) Info(msg string, fields ...any) {
	if currentLevel() > LevelInfo {
		return
	}
	l.emit(l.zl.Info(), msg, fields...)
}

// Warn implements Logger.Warn.
func (l *zerologLogger) Warn(msg string, fields ...any) {
	if currentLevel() > LevelWarn {
		return
	}
	l.emit(l.zl.Warn(), msg, fields...)
}

// Error implements Logger.Error.
func (l *zerologLogger) Error(msg string, fields ...any) {
	if currentLevel() > LevelError {
		return
	}
	l.emit(l.zl.Error(), msg, fields...)
}

// With implements Logger.With.
func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return currentLevel() <= level
}

func (l *zerologLogger) emit(ev *zerolog.Event, msg string, fields ...any) {
	i := 0
	// A leading bare error gets the canonical "error" key.
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			i = 1
		}
	}
	for ; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		case zerolog.LogObjectMarshaler:
			ev = ev.Object(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
