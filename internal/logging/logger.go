// Package logging configures the structured diagnostics logger.
//
// Diagnostics never go to stdout, which is reserved for the report. By
// default they are written to stderr; with a log file configured they are
// written to a size-rotated file through lumberjack.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Level is a logrus level name ("warn", "info", "debug", ...).
	Level string

	// Verbose forces the debug level regardless of Level.
	Verbose bool

	// FilePath, when set, redirects output to a rotated log file.
	FilePath string

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int
}

// DefaultOptions returns warn-level logging to stderr.
func DefaultOptions() Options {
	return Options{Level: "warn", MaxSizeMB: 10, MaxBackups: 3}
}

// New builds a JSON logger from opts. If the log file directory cannot be
// created the logger falls back to stderr and records a warning.
func New(opts Options) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}

	output, outErr := buildOutput(opts)

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	if outErr != nil {
		logger.WithFields(logrus.Fields{
			"action": "logger_fallback",
			"path":   opts.FilePath,
		}).Warn(outErr.Error())
	}
	return logger, nil
}

// buildOutput returns the writer for opts, falling back to stderr.
func buildOutput(opts Options) (io.Writer, error) {
	if opts.FilePath == "" {
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return os.Stderr, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}, nil
}

// Close releases the log file, if the logger writes to one, and points the
// logger back at stderr so later entries are not lost.
func Close(logger *logrus.Logger) error {
	if logger == nil {
		return nil
	}
	c, ok := logger.Out.(io.Closer)
	if !ok || logger.Out == os.Stderr {
		return nil
	}
	logger.SetOutput(os.Stderr)
	return c.Close()
}

// LayoutFields describes a layout in log entries.
func LayoutFields(width, height, servers int, network string) logrus.Fields {
	return logrus.Fields{
		"width":   width,
		"height":  height,
		"servers": servers,
		"network": network,
	}
}
