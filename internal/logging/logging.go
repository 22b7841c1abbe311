// Package logging builds the process logger. The TUI owns the terminal, so
// logs go to a JSON file when one is configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options configures New
type Options struct {
	// File receives JSON logs. Relative paths are resolved against BaseDir.
	File    string
	BaseDir string
	Debug   bool
	// Fallback receives text logs when File is empty. Nil discards them.
	Fallback io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger, installs it as the slog default and returns the
// closer for the underlying file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var (
		handler slog.Handler
		closer  io.Closer = nopCloser{}
	)
	switch {
	case opts.File != "":
		path := opts.File
		if !filepath.IsAbs(path) && opts.BaseDir != "" {
			path = filepath.Join(opts.BaseDir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handler = slog.NewJSONHandler(f, handlerOpts)
		closer = f
	case opts.Fallback != nil:
		if !opts.Debug {
			handlerOpts.Level = slog.LevelWarn
		}
		handler = slog.NewTextHandler(opts.Fallback, handlerOpts)
	default:
		handler = slog.NewTextHandler(io.Discard, handlerOpts)
	}

	logger := slog.New(handler).With("app", "empdesk")
	slog.SetDefault(logger)
	return logger, closer, nil
}
