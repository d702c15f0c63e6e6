// Package logger provides the levelled console logger used by the exporter.
//
// Lines are written as "[HH:MM:SS] [LEVEL] message". Levels below the
// configured one are dropped. The level tag is coloured when the writer is a
// terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes timestamped, levelled lines to a writer.
// It is safe for concurrent use.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// An empty or unknown logLevel defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: IsTerminal(writer),
	}
}

// IsTerminal reports whether w is a terminal that should receive colours.
// NO_COLOR and a non-TTY stdout disable colours through color.NoColor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	if color.NoColor {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}

	return "info"
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Trace logs a trace-level message.
func (cl *ConsoleLogger) Trace(msg string, args ...interface{}) {
	cl.logWithLevel("TRACE", msg, args...)
}

// Debug logs a debug-level message.
func (cl *ConsoleLogger) Debug(msg string, args ...interface{}) {
	cl.logWithLevel("DEBUG", msg, args...)
}

// Info logs an info-level message.
func (cl *ConsoleLogger) Info(msg string, args ...interface{}) {
	cl.logWithLevel("INFO", msg, args...)
}

// Warn logs a warning-level message.
func (cl *ConsoleLogger) Warn(msg string, args ...interface{}) {
	cl.logWithLevel("WARN", msg, args...)
}

// Error logs an error-level message.
func (cl *ConsoleLogger) Error(msg string, args ...interface{}) {
	cl.logWithLevel("ERROR", msg, args...)
}

func (cl *ConsoleLogger) logWithLevel(level, msg string, args ...interface{}) {
	if cl.writer == nil {
		return
	}

	if logLevelToInt(strings.ToLower(level)) < logLevelToInt(cl.logLevel) {
		return
	}

	message := msg
	if len(args) > 0 {
		message = fmt.Sprintf(msg, args...)
	}

	tag := level
	if cl.colorOutput {
		tag = levelColor(level).Sprint(level)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", time.Now().Format("15:04:05"), tag, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
