package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewDefaultsToStderr(t *testing.T) {
	logger, err := New(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, os.Stderr, logger.Out, "diagnostics must never go to stdout")
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.NoError(t, Close(logger))
}

func TestNewVerboseForcesDebug(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "error"
	opts.Verbose = true

	logger, err := New(opts)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "loud"

	_, err := New(opts)
	assert.Error(t, err)
}

func TestNewCreatesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "screensplit.log")
	opts := DefaultOptions()
	opts.Level = "info"
	opts.FilePath = path

	logger, err := New(opts)
	require.NoError(t, err)
	_, ok := logger.Out.(*lumberjack.Logger)
	require.True(t, ok, "file output should rotate through lumberjack")

	logger.WithFields(LayoutFields(1920, 1080, 16, "2000:42::/64")).Info("test")
	require.NoError(t, Close(logger))
	assert.Equal(t, os.Stderr, logger.Out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"servers":16`)
}

func TestNewFallsBackWhenDirectoryIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	opts := DefaultOptions()
	opts.FilePath = filepath.Join(blocker, "sub", "screensplit.log")

	logger, err := New(opts)
	require.NoError(t, err, "fallback must not fail construction")
	assert.Equal(t, os.Stderr, logger.Out)
}
