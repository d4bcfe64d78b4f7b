// internal/utils/logger.go

// Package utils provides the small shared facilities of the pipeline:
// leveled logging and count/relative-time parsing helpers.
package utils

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger is the leveled logging interface used throughout the pipeline.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// ParseLogLevel maps a level name to its LogLevel, defaulting to info.
func ParseLogLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// stderrLogger writes timestamped lines to stderr.
type stderrLogger struct {
	level  LogLevel
	fields map[string]interface{}
	mu     sync.Mutex
}

// NewLogger creates a logger at info level.
func NewLogger() Logger {
	return NewLoggerWithLevel(InfoLevel)
}

// NewLoggerWithLevel creates a logger with the given minimum level.
func NewLoggerWithLevel(level LogLevel) Logger {
	return &stderrLogger{level: level, fields: map[string]interface{}{}}
}

// NopLogger discards everything. Used as a default in tests.
func NopLogger() Logger {
	return &stderrLogger{level: ErrorLevel + 1, fields: map[string]interface{}{}}
}

func (l *stderrLogger) Debug(msg string)                          { l.log(DebugLevel, msg) }
func (l *stderrLogger) Debugf(f string, args ...interface{})      { l.log(DebugLevel, fmt.Sprintf(f, args...)) }
func (l *stderrLogger) Info(msg string)                           { l.log(InfoLevel, msg) }
func (l *stderrLogger) Infof(f string, args ...interface{})       { l.log(InfoLevel, fmt.Sprintf(f, args...)) }
func (l *stderrLogger) Warn(msg string)                           { l.log(WarnLevel, msg) }
func (l *stderrLogger) Warnf(f string, args ...interface{})       { l.log(WarnLevel, fmt.Sprintf(f, args...)) }
func (l *stderrLogger) Error(msg string)                          { l.log(ErrorLevel, msg) }
func (l *stderrLogger) Errorf(f string, args ...interface{})      { l.log(ErrorLevel, fmt.Sprintf(f, args...)) }

func (l *stderrLogger) WithField(key string, value interface{}) Logger {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &stderrLogger{level: l.level, fields: fields}
}

func (l *stderrLogger) log(level LogLevel, msg string) {
	if level < l.level || level > ErrorLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] [%s] %s", time.Now().Format("2006-01-02 15:04:05"), levelNames[level], msg)
	if len(l.fields) > 0 {
		line += " " + formatFields(l.fields)
	}
	fmt.Fprintln(os.Stderr, line)
}

func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
