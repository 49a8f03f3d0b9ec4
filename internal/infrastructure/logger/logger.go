// Package logger provides structured JSON logging
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message
type Level string

const (
	DebugLevel Level = "DEBUG"
	InfoLevel  Level = "INFO"
	WarnLevel  Level = "WARN"
	ErrorLevel Level = "ERROR"
	FatalLevel Level = "FATAL"
)

var severity = map[Level]int{
	DebugLevel: 0,
	InfoLevel:  1,
	WarnLevel:  2,
	ErrorLevel: 3,
	FatalLevel: 4,
}

// ParseLevel maps a configuration value such as "debug" to a Level.
// Unknown values yield InfoLevel.
func ParseLevel(s string) Level {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := severity[level]; ok {
		return level
	}
	return InfoLevel
}

// Logger defines the interface for the application logger
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Fatal(msg string, fields map[string]interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// JSONLogger writes one JSON object per line
type JSONLogger struct {
	output io.Writer
	mu     *sync.Mutex
	level  Level
	fields map[string]interface{}
}

// NewJSONLogger creates a new JSON logger; a nil output means stdout
func NewJSONLogger(output io.Writer, level Level) *JSONLogger {
	if output == nil {
		output = os.Stdout
	}

	return &JSONLogger{
		output: output,
		mu:     &sync.Mutex{},
		level:  level,
		fields: make(map[string]interface{}),
	}
}

// NewNopLogger discards everything
func NewNopLogger() *JSONLogger {
	return NewJSONLogger(io.Discard, FatalLevel)
}

// WithField returns a child logger carrying one extra field
func (l *JSONLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a child logger carrying the union of both field sets
func (l *JSONLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &JSONLogger{
		output: l.output,
		mu:     l.mu,
		level:  l.level,
		fields: merged,
	}
}

// Debug logs at DEBUG level
func (l *JSONLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(DebugLevel, msg, fields)
}

// Info logs at INFO level
func (l *JSONLogger) Info(msg string, fields map[string]interface{}) {
	l.log(InfoLevel, msg, fields)
}

// Warn logs at WARN level
func (l *JSONLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(WarnLevel, msg, fields)
}

// Error logs at ERROR level
func (l *JSONLogger) Error(msg string, fields map[string]interface{}) {
	l.log(ErrorLevel, msg, fields)
}

// Fatal logs a message at fatal level and then terminates the program
func (l *JSONLogger) Fatal(msg string, fields map[string]interface{}) {
	l.log(FatalLevel, msg, fields)
	os.Exit(1)
}

func (l *JSONLogger) enabled(level Level) bool {
	min, ok := severity[l.level]
	if !ok {
		return true
	}
	return severity[level] >= min
}

func (l *JSONLogger) log(level Level, msg string, fields map[string]interface{}) {
	if !l.enabled(level) {
		return
	}

	// skip log and the exported level method
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	record := make(map[string]interface{}, len(l.fields)+len(fields)+5)
	for k, v := range l.fields {
		record[k] = v
	}
	for k, v := range fields {
		record[k] = v
	}
	record["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	record["level"] = level
	record["message"] = msg
	record["file"] = file
	record["line"] = line

	data, err := json.Marshal(record)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":"ERROR","message":"Failed to marshal log entry","error":%q}`, err.Error()))
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.output.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log entry: %s\n", err)
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewJSONLogger(os.Stdout, InfoLevel)
)

// GetDefaultLogger returns the process-wide fallback logger
func GetDefaultLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger replaces the fallback logger; nil is ignored
func SetDefaultLogger(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// OrDefault returns l, or the default logger when l is nil
func OrDefault(l Logger) Logger {
	if l == nil {
		return GetDefaultLogger()
	}
	return l
}
