// Package logging provides file-based logging for salesdeck.
// Every logger writes to the global log file (.salesdeck/logs/salesdeck.log);
// card moves are additionally recorded by MoveAudit in .salesdeck/logs/moves.log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// sink is the log file shared by a logger and its scoped children.
type sink struct {
	file *os.File
	path string
	mu   sync.Mutex
}

// Logger writes leveled lines to the global log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	sink  *sink
	clock domain.Clock
	scope string
	level slog.Level
}

// DefaultScope is the scope of a logger that was not scoped explicitly.
const DefaultScope = "global"

// New creates a new Logger that writes under dataDir.
// If dataDir is empty, logging is disabled (returns a no-op logger).
func New(dataDir string, level slog.Level) *Logger {
	l := &Logger{
		clock: domain.RealClock{},
		scope: DefaultScope,
		level: level,
	}
	if dataDir != "" {
		l.sink = &sink{path: domain.GlobalLogPath(dataDir)}
	}
	return l
}

// WithScope returns a logger sharing the same file that tags entries with scope,
// e.g. "cli", "http" or "tui".
func (l *Logger) WithScope(scope string) *Logger {
	child := *l
	child.scope = scope
	return &child
}

// WithClock returns a logger that timestamps entries with clock.
func (l *Logger) WithClock(clock domain.Clock) *Logger {
	child := *l
	child.clock = clock
	return &child
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// open opens the log file if needed (caller must hold s.mu).
func (s *sink) open() (*os.File, error) {
	if s.file != nil {
		return s.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	s.file = f
	return f, nil
}

// Close closes the log file. Scoped children share the file, so closing any
// of them closes it for all.
func (l *Logger) Close() error {
	if l.sink == nil {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.file == nil {
		return nil
	}
	err := l.sink.file.Close()
	l.sink.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [cli] [category] message
func formatLog(t time.Time, level slog.Level, scope, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, category, msg string) {
	if l.sink == nil {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	entry := formatLog(l.clock.Now(), level, l.scope, category, msg)

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if f, err := l.sink.open(); err == nil {
		_, _ = io.WriteString(f, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(category, msg string) {
	l.log(slog.LevelInfo, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) {
	l.log(slog.LevelDebug, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) {
	l.log(slog.LevelWarn, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string) {
	l.log(slog.LevelError, category, msg)
}
