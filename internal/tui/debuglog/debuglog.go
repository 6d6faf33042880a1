// ABOUTME: Diagnostic logger for the TUI that writes to a log file
// ABOUTME: Keeps slog output off the terminal while the UI owns the screen

package debuglog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	logFile *os.File
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	mu      sync.Mutex
)

// Init opens <configDir>/debug.log and routes Logger there.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

// SetOutput routes Logger to w. Tests use it to capture diagnostics.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Logger returns the current diagnostic logger
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error logs an error with context
func Error(context string, err error, args ...any) {
	if err == nil {
		return
	}
	Logger().Error(context, append([]any{"error", err}, args...)...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Info logs an informational message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}
