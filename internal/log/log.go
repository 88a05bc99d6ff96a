// Package log provides structured file logging for venom.
// Logging stays off unless the --debug flag or VENOM_DEBUG is set, since
// the terminal belongs to the TUI while it runs.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatStore   Category = "store"   // Record store mutations
	CatView    Category = "view"    // View derivation and filter cycling
	CatSession Category = "session" // Edit session transitions
	CatCodec   Category = "codec"   // Field decode fallbacks
	CatLabels  Category = "labels"  // Label text reconciliation
	CatStorage Category = "storage" // Load/save of the task document
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatUI      Category = "ui"      // UI component updates
	CatTrace   Category = "trace"   // Tracing provider lifecycle
	CatCache   Category = "cache"   // Cache operations
)

// Logger writes formatted entries to a single writer.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	mu            sync.Mutex
)

// Init opens path for appending and installs it as the global logger.
// The returned cleanup closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user supplied debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defaultLogger = &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
	}
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if defaultLogger != nil && defaultLogger.file == f {
			_ = f.Close()
			defaultLogger = nil
		}
	}, nil
}

// SetOutput installs w as the global log destination. Passing nil disables
// logging. Used by tests to capture entries.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		defaultLogger = nil
		return
	}
	defaultLogger = &Logger{writer: w, enabled: true, minLevel: LevelDebug}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		defaultLogger.enabled = enabled
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		defaultLogger.minLevel = level
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	_, _ = io.WriteString(l.writer, format(time.Now(), level, cat, msg, fields...))
}

// format renders one entry:
// 2025-12-06T10:45:00 [ERROR] [storage] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	// Orphan key with no value
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	return b.String()
}
