package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// LoggerOptions controls where and how much the Logger writes
type LoggerOptions struct {
	Level  string    // debug, info, warn, error
	File   string    // optional log file, mirrored alongside the console
	JSON   bool      // JSON formatter instead of text
	Output io.Writer // console writer, defaults to stderr
}

// Logger wraps charm's logger with console and optional file output
type Logger struct {
	console *charmlog.Logger
	file    *charmlog.Logger
	File    *os.File
	Path    string
}

// NewLogger initializes the console logger and, when opts.File is set, a file logger
func NewLogger(opts LoggerOptions) (*Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := parseLevel(opts.Level)

	l := &Logger{console: newCharmLogger(out, level, opts.JSON)}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		l.File = f
		l.Path = opts.File
		l.file = newCharmLogger(f, level, opts.JSON)
	}
	return l, nil
}

// NopLogger discards everything; handy in tests
func NopLogger() *Logger {
	return &Logger{console: newCharmLogger(io.Discard, charmlog.ErrorLevel, false)}
}

func newCharmLogger(w io.Writer, level charmlog.Level, json bool) *charmlog.Logger {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	if json {
		logger.SetFormatter(charmlog.JSONFormatter)
	}
	return logger
}

func parseLevel(s string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Debugf logs verbose diagnostics (console + file)
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(charmlog.DebugLevel, format, v...)
}

// Infof logs informational messages (console + file)
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(charmlog.InfoLevel, format, v...)
}

// Warnf logs recoverable problems (console + file)
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(charmlog.WarnLevel, format, v...)
}

// Errorf logs error messages (console + file)
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(charmlog.ErrorLevel, format, v...)
}

func (l *Logger) log(level charmlog.Level, format string, v ...interface{}) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, v...)
	l.console.Log(level, msg)
	if l.file != nil {
		l.file.Log(level, msg)
	}
}

// Close closes the log file when done
func (l *Logger) Close() {
	if l != nil && l.File != nil {
		l.File.Close()
	}
}
