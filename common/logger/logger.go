package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger provides a unified logging interface for the preprocessing
// pipeline. It is a thin leveled facade so tests can silence or capture
// output without pulling a logging framework into every package.

// LogLevel represents log severity levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu sync.Mutex

	// currentLevel is the current logging level (default: Info)
	currentLevel = LevelInfo

	// output is where log lines are written (default: stderr)
	output io.Writer = os.Stderr
)

// SetLevel sets the minimum log level.
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// SetOutput redirects log output (useful for tests).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		output = w
	}
}

// Silence discards all log output (useful for tests and benchmarks).
func Silence() {
	SetOutput(io.Discard)
}

// Debugf logs a debug message
func Debugf(format string, args ...interface{}) {
	logf(LevelDebug, format, args...)
}

// Infof logs an info message
func Infof(format string, args ...interface{}) {
	logf(LevelInfo, format, args...)
}

// Warnf logs a warning message
func Warnf(format string, args ...interface{}) {
	logf(LevelWarn, format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...interface{}) {
	logf(LevelError, format, args...)
}

// logf is the internal logging function
func logf(level LogLevel, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel {
		return
	}
	fmt.Fprintf(output, levelPrefix(level)+format+"\n", args...)
}

// levelPrefix returns the prefix for each log level
func levelPrefix(level LogLevel) string {
	switch level {
	case LevelDebug:
		return "[DEBUG] "
	case LevelInfo:
		return "[INFO] "
	case LevelWarn:
		return "[WARN] "
	case LevelError:
		return "[ERROR] "
	default:
		return "[LOG] "
	}
}
