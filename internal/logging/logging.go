// Package logging builds the diagnostic logger.
//
// The interactive browser owns the terminal, so it logs to a file; the
// one-shot commands log to stderr.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const prefix = "todo"

// ErrLevel marks a level name the logger does not know.
var ErrLevel = errors.New("log level")

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// DefaultFile is where the interactive browser logs when no file is configured.
func DefaultFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("user cache dir: %w", err)
	}
	return filepath.Join(dir, "todo", "todo.log"), nil
}

// OpenFile appends to path, creating it and its directory as needed.
// The returned closer must be closed when the program exits.
func OpenFile(path, level string) (*log.Logger, io.Closer, error) {
	if _, err := log.ParseLevel(level); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrLevel, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
