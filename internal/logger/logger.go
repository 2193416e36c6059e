// Package logger provides structured logging for groundchat.
// Debug messages are gated behind the --verbose flag so interactive
// commands stay quiet; the server can switch to JSON output for log
// collection.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	verbose bool
	log     = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(textFormatter())
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	}
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing and for silencing logs
// while a terminal UI owns the screen.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetFormat selects the output format: "json" for structured log
// collection, anything else for human-readable text.
func SetFormat(format string) {
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
		return
	}
	log.SetFormatter(textFormatter())
}

// Debug logs a message visible only in verbose mode.
func Debug(format string, args ...any) {
	log.Debugf(format, args...)
}

// Section logs a pipeline section header, visible only in verbose mode.
func Section(name string) {
	log.Debugf("=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	log.Infof(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	log.Errorf(format, args...)
}
