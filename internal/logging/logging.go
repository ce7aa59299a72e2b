// Package logging sets up the zerolog logger. The TUI owns the terminal, so
// log lines always go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config string onto a zerolog level. Unknown values fall
// back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds a timestamped logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "postcraft").
		Logger()
}

// Open appends to path, creating parent directories. An empty path yields a
// no-op logger. The returned close func is always safe to call.
func Open(path, level string) (zerolog.Logger, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" || ParseLevel(level) == zerolog.Disabled {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), func() error { return nil }, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}
