// Package logger provides the global structured logger for the CLI.
package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default logger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	logger := charm.New(os.Stderr)
	logger.SetReportTimestamp(false)
	defaultLogger.Store(logger)
}

// Default returns the global default logger instance.
func Default() *charm.Logger {
	return defaultLogger.Load().(*charm.Logger)
}

// SetDefault sets a new global default logger instance.
func SetDefault(logger *charm.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// SetLevel sets the level of the global default logger.
func SetLevel(level charm.Level) {
	Default().SetLevel(level)
}

// ParseLevel converts a level name into a charm log level.
func ParseLevel(level string) (charm.Level, error) {
	return charm.ParseLevel(level)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}
