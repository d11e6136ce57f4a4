package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// A log file grown past this size is truncated on startup instead of
// rotated; the pipeline produces little log volume between runs.
const maxLogFileSize = 5 * 1024 * 1024

// Setup configures the process-wide slog default. With an empty path, logs
// go to stderr. With a path, logs are appended to that file.
func Setup(path string, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return err
		}
		w = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogFileSize {
		if err := os.Truncate(path, 0); err != nil {
			return nil, fmt.Errorf("failed to truncate oversized log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
